package validator

// ArraySchema validates a multi-valued string field such as a checkbox group.
// An absent field parses as an empty list.
type ArraySchema struct {
	nonempty bool
	message  string
}

func StringArray() *ArraySchema {
	return &ArraySchema{}
}

// Nonempty requires at least one selected value.
func (s *ArraySchema) Nonempty(message ...string) *ArraySchema {
	s.nonempty = true
	s.message = first(message)
	return s
}

func (s *ArraySchema) Parse(values []string) (any, []Issue) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	if s.nonempty && len(out) == 0 {
		return out, []Issue{{Code: TooSmall, Message: s.message}}
	}
	return out, nil
}

func (s *ArraySchema) Constraint() Constraint {
	return Constraint{Required: s.nonempty, Multiple: true}
}

// LiteralSchema accepts exactly one value.
type LiteralSchema struct {
	value string
}

func Literal(value string) *LiteralSchema {
	return &LiteralSchema{value: value}
}

func (s *LiteralSchema) Parse(values []string) (any, []Issue) {
	v, ok := firstValue(values)
	if !ok {
		return nil, []Issue{{Code: InvalidType, Fatal: true}}
	}
	if v != s.value {
		return nil, []Issue{{Code: InvalidLiteral, Fatal: true}}
	}
	return v, nil
}

func (s *LiteralSchema) Constraint() Constraint {
	return Constraint{Required: true}
}

// EnumSchema accepts one of a fixed set of values.
type EnumSchema struct {
	options  []string
	optional bool
}

func Enum(options ...string) *EnumSchema {
	return &EnumSchema{options: options}
}

func (s *EnumSchema) Optional() *EnumSchema {
	s.optional = true
	return s
}

func (s *EnumSchema) Parse(values []string) (any, []Issue) {
	v, ok := firstValue(values)
	if !ok {
		if s.optional {
			return nil, nil
		}
		return nil, []Issue{{Code: InvalidType, Fatal: true}}
	}
	for _, o := range s.options {
		if o == v {
			return v, nil
		}
	}
	return nil, []Issue{{Code: InvalidEnumValue, Fatal: true}}
}

func (s *EnumSchema) Constraint() Constraint {
	return Constraint{Required: !s.optional}
}

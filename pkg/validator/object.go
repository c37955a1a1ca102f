package validator

import "net/url"

// RefineFunc inspects a parsed object and returns additional issues. Issues
// must carry their Path.
type RefineFunc func(value map[string]any) []Issue

type objectField struct {
	name   string
	schema Schema
}

// ObjectSchema validates a whole form submission field by field.
type ObjectSchema struct {
	fields      []objectField
	refinements []RefineFunc
	passthrough bool
}

func Object() *ObjectSchema {
	return &ObjectSchema{}
}

// Field adds a field. Adding a name twice replaces the earlier schema in place.
func (o *ObjectSchema) Field(name string, s Schema) *ObjectSchema {
	for i := range o.fields {
		if o.fields[i].name == name {
			o.fields[i].schema = s
			return o
		}
	}
	o.fields = append(o.fields, objectField{name: name, schema: s})
	return o
}

// Refine registers a whole-object check. Refinements run only when every
// field could be read.
func (o *ObjectSchema) Refine(fn RefineFunc) *ObjectSchema {
	o.refinements = append(o.refinements, fn)
	return o
}

// Passthrough keeps submitted keys that have no schema in the parsed value.
func (o *ObjectSchema) Passthrough() *ObjectSchema {
	o.passthrough = true
	return o
}

// Fields returns the field names in declaration order.
func (o *ObjectSchema) Fields() []string {
	names := make([]string, len(o.fields))
	for i, f := range o.fields {
		names[i] = f.name
	}
	return names
}

// Lookup returns the schema registered for name.
func (o *ObjectSchema) Lookup(name string) (Schema, bool) {
	for _, f := range o.fields {
		if f.name == name {
			return f.schema, true
		}
	}
	return nil, false
}

// Constraints returns the native constraints of every field.
func (o *ObjectSchema) Constraints() map[string]Constraint {
	out := make(map[string]Constraint, len(o.fields))
	for _, f := range o.fields {
		out[f.name] = f.schema.Constraint()
	}
	return out
}

// Result is the outcome of parsing a submission.
type Result struct {
	Value  map[string]any
	Issues []Issue
}

func (r Result) OK() bool {
	return len(r.Issues) == 0
}

func (o *ObjectSchema) Parse(values url.Values) Result {
	res := Result{Value: make(map[string]any, len(o.fields))}

	known := make(map[string]struct{}, len(o.fields))
	for _, f := range o.fields {
		known[f.name] = struct{}{}

		v, issues := f.schema.Parse(values[f.name])
		for _, is := range issues {
			is.Path = f.name
			res.Issues = append(res.Issues, is)
		}
		if v != nil {
			res.Value[f.name] = v
		}
	}

	if o.passthrough {
		for k, vs := range values {
			if _, ok := known[k]; ok || len(vs) == 0 {
				continue
			}
			if len(vs) == 1 {
				res.Value[k] = vs[0]
			} else {
				res.Value[k] = vs
			}
		}
	}

	if hasFatal(res.Issues) {
		return res
	}
	for _, fn := range o.refinements {
		res.Issues = append(res.Issues, fn(res.Value)...)
	}
	return res
}

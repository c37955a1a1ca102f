package validator

import (
	"math"
	"strconv"
	"strings"
)

// NumberSchema validates a numeric form value.
type NumberSchema struct {
	min      *float64
	max      *float64
	minMsg   string
	maxMsg   string
	optional bool
}

func Number() *NumberSchema {
	return &NumberSchema{}
}

// Min requires a value greater than or equal to n.
func (s *NumberSchema) Min(n float64, message ...string) *NumberSchema {
	s.min = &n
	s.minMsg = first(message)
	return s
}

// Max requires a value less than or equal to n.
func (s *NumberSchema) Max(n float64, message ...string) *NumberSchema {
	s.max = &n
	s.maxMsg = first(message)
	return s
}

func (s *NumberSchema) Optional() *NumberSchema {
	s.optional = true
	return s
}

func (s *NumberSchema) Parse(values []string) (any, []Issue) {
	raw, ok := firstValue(values)
	if !ok {
		if s.optional {
			return nil, nil
		}
		return nil, []Issue{{Code: InvalidType, Fatal: true}}
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, []Issue{{Code: InvalidType, Fatal: true}}
	}

	var issues []Issue
	if s.min != nil && n < *s.min {
		issues = append(issues, Issue{Code: TooSmall, Message: s.minMsg})
	}
	if s.max != nil && n > *s.max {
		issues = append(issues, Issue{Code: TooBig, Message: s.maxMsg})
	}
	return n, issues
}

func (s *NumberSchema) Constraint() Constraint {
	return Constraint{Required: !s.optional, Min: s.min, Max: s.max}
}

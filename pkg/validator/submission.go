package validator

import "net/url"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// FormErrorKey is the error key for messages that belong to the whole form.
const FormErrorKey = ""

// Submission is a parsed form post with its translated errors.
type Submission struct {
	Status  string
	Payload url.Values
	Value   map[string]any
	Error   map[string][]string
}

// SubmissionResult is what the client receives back for a submission. It is
// enough to re-render the form with its values and errors.
type SubmissionResult struct {
	Status       string              `json:"status,omitempty"`
	InitialValue map[string]any      `json:"initialValue,omitempty"`
	Error        map[string][]string `json:"error,omitempty"`
}

// ParseWithTranslatedErrors validates values against schema and resolves
// each issue to a message through ErrorMap.
func ParseWithTranslatedErrors(values url.Values, schema *ObjectSchema, translations ErrorTranslationMap) *Submission {
	res := schema.Parse(values)
	sub := &Submission{
		Status:  StatusSuccess,
		Payload: values,
		Value:   res.Value,
	}
	if res.OK() {
		return sub
	}

	errorMap := ErrorMap(translations)
	sub.Status = StatusError
	sub.Error = make(map[string][]string)
	for _, is := range res.Issues {
		sub.Error[is.Path] = append(sub.Error[is.Path], errorMap(is))
	}
	return sub
}

func (s *Submission) OK() bool {
	return s.Status == StatusSuccess
}

// String returns the parsed string value of name, or "".
func (s *Submission) String(name string) string {
	v, _ := s.Value[name].(string)
	return v
}

// Float returns the parsed numeric value of name, or 0.
func (s *Submission) Float(name string) float64 {
	v, _ := s.Value[name].(float64)
	return v
}

// Strings returns the parsed list value of name.
func (s *Submission) Strings(name string) []string {
	switch v := s.Value[name].(type) {
	case []string:
		return v
	case string:
		return []string{v}
	}
	return nil
}

type replyOptions struct {
	formErrors  []string
	fieldErrors map[string][]string
	hide        []string
	reset       bool
}

type ReplyOption func(*replyOptions)

// WithFormErrors attaches form level errors and marks the reply as failed.
func WithFormErrors(messages ...string) ReplyOption {
	return func(o *replyOptions) { o.formErrors = append(o.formErrors, messages...) }
}

// WithFieldErrors attaches errors for individual fields.
func WithFieldErrors(errs map[string][]string) ReplyOption {
	return func(o *replyOptions) { o.fieldErrors = errs }
}

// HideFields drops fields from the echoed values, e.g. passwords.
func HideFields(names ...string) ReplyOption {
	return func(o *replyOptions) { o.hide = append(o.hide, names...) }
}

// ResetForm clears the echoed values.
func ResetForm() ReplyOption {
	return func(o *replyOptions) { o.reset = true }
}

// Reply builds the client result for the submission.
func (s *Submission) Reply(opts ...ReplyOption) *SubmissionResult {
	var o replyOptions
	for _, opt := range opts {
		opt(&o)
	}

	res := &SubmissionResult{Status: s.Status}

	if len(s.Error) > 0 || len(o.formErrors) > 0 || len(o.fieldErrors) > 0 {
		res.Status = StatusError
		res.Error = make(map[string][]string, len(s.Error)+1)
		for k, v := range s.Error {
			res.Error[k] = append([]string(nil), v...)
		}
		for k, v := range o.fieldErrors {
			res.Error[k] = append(res.Error[k], v...)
		}
		if len(o.formErrors) > 0 {
			res.Error[FormErrorKey] = append(res.Error[FormErrorKey], o.formErrors...)
		}
	}

	if o.reset {
		return res
	}

	res.InitialValue = make(map[string]any, len(s.Payload))
	for k, vs := range s.Payload {
		switch len(vs) {
		case 0:
		case 1:
			res.InitialValue[k] = vs[0]
		default:
			res.InitialValue[k] = append([]string(nil), vs...)
		}
	}
	for _, name := range o.hide {
		delete(res.InitialValue, name)
	}
	return res
}

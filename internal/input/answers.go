package input

// Answers maps prompt names to their answers.
type Answers map[string]any

// Has reports whether the named prompt was answered.
func (a Answers) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns a string answer, or "" when absent or of another type.
func (a Answers) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Bool returns a boolean answer, or false when absent or of another type.
func (a Answers) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Strings returns a multi-select answer.
func (a Answers) Strings(name string) []string {
	switch v := a[name].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Clone returns a shallow copy with multi-select answers copied.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		if values, ok := v.([]string); ok {
			cp := make([]string, len(values))
			copy(cp, values)
			v = cp
		}
		out[k] = v
	}
	return out
}

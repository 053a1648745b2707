package components

import "learnhub/internal/form"

type InputProps struct {
	Field       form.Field
	Placeholder string
	// Type overrides the input type derived from the field kind.
	Type string
}

func (p InputProps) inputType() string {
	switch {
	case p.Field.Masked():
		return "password"
	case p.Type != "":
		return p.Type
	default:
		return "text"
	}
}

func (p InputProps) value() string {
	if p.Field.Masked() {
		return ""
	}
	return p.Field.Value
}

package login

import (
	"learnhub/components"
	"learnhub/internal/form"
	"learnhub/internal/validation"
)

var placeholders = map[string]string{
	validation.FieldName:     "First and last name",
	validation.FieldEmail:    "E-mail",
	validation.FieldPassword: "Password",
}

// textFields are the fields rendered as inputs; checkboxes get their own row.
func textFields(c *form.Controller) []form.Field {
	var fields []form.Field
	for _, f := range c.Fields() {
		if f.Kind != form.Checkbox {
			fields = append(fields, f)
		}
	}
	return fields
}

func inputProps(f form.Field) components.InputProps {
	props := components.InputProps{Field: f, Placeholder: placeholders[f.Name]}
	if f.Name == validation.FieldEmail {
		props.Type = "email"
	}
	return props
}

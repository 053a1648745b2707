package validation

import "fmt"

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRemember = "remember"
)

// MinPasswordLength is counted in characters (runes), not bytes.
const MinPasswordLength = 8

var (
	MsgNameRequired   = "Name is required"
	MsgNameTwoWords   = "full name must contain at least two words"
	MsgInvalidEmail   = "Invalid email format"
	MsgPasswordLength = fmt.Sprintf("Minimum password length is %d", MinPasswordLength)
)

var (
	nameRule = Rule{
		Field: FieldName,
		Checks: []Check{
			{Tag: "required", Message: MsgNameRequired, Bail: true},
			{Tag: FullNameTag, Message: MsgNameTwoWords},
		},
	}
	emailRule = Rule{
		Field:  FieldEmail,
		Checks: []Check{{Tag: "email", Message: MsgInvalidEmail}},
	}
	passwordRule = Rule{
		Field:  FieldPassword,
		Checks: []Check{{Tag: fmt.Sprintf("min=%d", MinPasswordLength), Message: MsgPasswordLength}},
	}
)

// RegistrationSchema validates the sign-up form.
func RegistrationSchema() *Schema {
	return NewSchema(nameRule, emailRule, passwordRule)
}

// LoginSchema validates the credentials login form.
func LoginSchema() *Schema {
	return NewSchema(emailRule, passwordRule)
}

func ForgotPasswordSchema() *Schema {
	return NewSchema(emailRule)
}

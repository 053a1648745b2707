package login

import "learnhub/internal/validation"

type RegistrationForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Remember string `form:"remember"`
}

func (f RegistrationForm) Values() map[string]string {
	return map[string]string{
		validation.FieldName:     f.Name,
		validation.FieldEmail:    f.Email,
		validation.FieldPassword: f.Password,
		validation.FieldRemember: f.Remember,
	}
}

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Remember string `form:"remember"`
}

func (f LoginForm) Values() map[string]string {
	return map[string]string{
		validation.FieldEmail:    f.Email,
		validation.FieldPassword: f.Password,
		validation.FieldRemember: f.Remember,
	}
}

type ForgotPasswordForm struct {
	Email string `form:"email"`
}

func (f ForgotPasswordForm) Values() map[string]string {
	return map[string]string{
		validation.FieldEmail: f.Email,
	}
}

package form

import "learnhub/internal/validation"

func NewLogin(forward Forwarder, opts ...Option) *Controller {
	return New(validation.LoginSchema(), forward, []Field{
		{Name: validation.FieldEmail},
		{Name: validation.FieldPassword, Kind: Password},
		{Name: validation.FieldRemember, Kind: Checkbox},
	}, opts...)
}

func NewRegistration(forward Forwarder, opts ...Option) *Controller {
	return New(validation.RegistrationSchema(), forward, []Field{
		{Name: validation.FieldName},
		{Name: validation.FieldEmail},
		{Name: validation.FieldPassword, Kind: Password},
		{Name: validation.FieldRemember, Kind: Checkbox},
	}, opts...)
}

func NewForgotPassword(forward Forwarder, opts ...Option) *Controller {
	return New(validation.ForgotPasswordSchema(), forward, []Field{
		{Name: validation.FieldEmail},
	}, opts...)
}

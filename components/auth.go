package components

type AuthTab int

const (
	TabSignUp AuthTab = iota
	TabLogin
)

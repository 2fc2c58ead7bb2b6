package dto

type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

type SignInInput struct {
	Email    string
	Password string
}

type SessionOutput struct {
	Authenticated bool
	Name          string
	Email         string
}

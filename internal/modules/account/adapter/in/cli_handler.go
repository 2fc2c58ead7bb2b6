package in

import (
	"context"

	"unitrack/internal/modules/account/dto"
	"unitrack/internal/modules/account/port/in"
)

// CLIHandler adapts command-line invocations to the account usecase.
type CLIHandler struct {
	usecase in.Usecase
}

func NewCLIHandler(usecase in.Usecase) *CLIHandler {
	return &CLIHandler{usecase: usecase}
}

func (h *CLIHandler) SignUp(ctx context.Context, name, email, password string) (dto.SessionOutput, error) {
	return h.usecase.SignUp(ctx, dto.SignUpInput{Name: name, Email: email, Password: password})
}

func (h *CLIHandler) SignIn(ctx context.Context, email, password string) (dto.SessionOutput, error) {
	return h.usecase.SignIn(ctx, dto.SignInInput{Email: email, Password: password})
}

func (h *CLIHandler) SignOut(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.SignOut(ctx)
}

func (h *CLIHandler) Current(ctx context.Context) (dto.SessionOutput, error) {
	return h.usecase.Current(ctx)
}

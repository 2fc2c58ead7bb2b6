package in

import (
	"context"

	"unitrack/internal/modules/account/dto"
)

type Usecase interface {
	SignUp(ctx context.Context, input dto.SignUpInput) (dto.SessionOutput, error)
	SignIn(ctx context.Context, input dto.SignInInput) (dto.SessionOutput, error)
	SignOut(ctx context.Context) (dto.SessionOutput, error)
	Current(ctx context.Context) (dto.SessionOutput, error)
}

package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "unitrack/internal/platform/errors"

	"unitrack/internal/modules/account/domain"
	"unitrack/internal/modules/account/dto"
	"unitrack/internal/modules/account/port/in"
	"unitrack/internal/modules/account/port/out"
	"unitrack/internal/modules/account/service"
)

// Interactor keeps the active session in memory, mirrored to the session
// store on every change. Sign-in and sign-up share a single in-flight slot:
// while one attempt is pending, further attempts fail with ErrSignInPending
// instead of queueing.
type Interactor struct {
	svc      *service.AccountService
	sessions out.SessionStore
	delay    time.Duration

	mu      sync.Mutex
	pending bool
	loaded  bool
	current domain.Session
}

func NewInteractor(svc *service.AccountService, sessions out.SessionStore, delay time.Duration) in.Usecase {
	return &Interactor{svc: svc, sessions: sessions, delay: delay}
}

func (i *Interactor) SignUp(ctx context.Context, input dto.SignUpInput) (dto.SessionOutput, error) {
	release, err := i.acquire(ctx)
	if err != nil {
		return i.snapshot(), err
	}
	defer release()

	i.simulateLatency(ctx)
	account, err := i.svc.Register(ctx, domain.Account{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return i.snapshot(), err
	}
	return i.replaceSession(ctx, domain.ForAccount(account))
}

func (i *Interactor) SignIn(ctx context.Context, input dto.SignInInput) (dto.SessionOutput, error) {
	release, err := i.acquire(ctx)
	if err != nil {
		return i.snapshot(), err
	}
	defer release()

	i.simulateLatency(ctx)
	account, err := i.svc.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return i.snapshot(), err
	}
	return i.replaceSession(ctx, domain.ForAccount(account))
}

func (i *Interactor) SignOut(ctx context.Context) (dto.SessionOutput, error) {
	return i.replaceSession(ctx, domain.Anonymous())
}

func (i *Interactor) Current(ctx context.Context) (dto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.ensureLoadedLocked(ctx); err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(i.current), nil
}

// acquire claims the single in-flight authentication slot.
func (i *Interactor) acquire(ctx context.Context) (func(), error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.pending {
		return nil, apperrors.ErrSignInPending
	}
	if err := i.ensureLoadedLocked(ctx); err != nil {
		return nil, err
	}
	i.pending = true
	return func() {
		i.mu.Lock()
		i.pending = false
		i.mu.Unlock()
	}, nil
}

// simulateLatency adds the mock round-trip delay so the UI's pending state is
// visible. Purely cosmetic.
func (i *Interactor) simulateLatency(ctx context.Context) {
	if i.delay <= 0 {
		return
	}
	select {
	case <-time.After(i.delay):
	case <-ctx.Done():
	}
}

func (i *Interactor) replaceSession(ctx context.Context, session domain.Session) (dto.SessionOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.sessions.Save(ctx, session); err != nil {
		return toOutput(i.current), fmt.Errorf("save session: %w", err)
	}
	i.current = session
	i.loaded = true
	return toOutput(session), nil
}

// snapshot returns the session as last seen, without touching the store. A
// failed attempt must leave the active session exactly as it was.
func (i *Interactor) snapshot() dto.SessionOutput {
	i.mu.Lock()
	defer i.mu.Unlock()
	return toOutput(i.current)
}

func (i *Interactor) ensureLoadedLocked(ctx context.Context) error {
	if i.loaded {
		return nil
	}
	session, err := i.sessions.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	i.current = session
	i.loaded = true
	return nil
}

func toOutput(session domain.Session) dto.SessionOutput {
	return dto.SessionOutput{
		Authenticated: session.Authenticated,
		Name:          session.Name,
		Email:         session.Email,
	}
}

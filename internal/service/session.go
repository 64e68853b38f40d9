package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/paintgrid-backend/internal/apperror"
	"github.com/rocketscienceinc/paintgrid-backend/internal/entity"
)

type SessionService interface {
	Create(ctx context.Context, name string) (*entity.Session, error)
	GetByToken(ctx context.Context, token string) (*entity.Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

type sessionRepo interface {
	Save(ctx context.Context, session *entity.Session, ttl time.Duration) error
	GetByToken(ctx context.Context, token string) (*entity.Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

type sessionService struct {
	sessionRepo sessionRepo
	ttl         time.Duration
}

func NewSessionService(sessionRepo sessionRepo, ttl time.Duration) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		ttl:         ttl,
	}
}

// Create - issues a token for a display name. The name stays opaque from here
// on: nothing checks it for uniqueness.
func (that *sessionService) Create(ctx context.Context, name string) (*entity.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.ErrNameRequired
	}

	session := &entity.Session{
		Token: uuid.NewString(),
		Name:  name,
	}

	if err := that.sessionRepo.Save(ctx, session, that.ttl); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return session, nil
}

// GetByToken - resolves a token back to its session. Unknown or expired
// tokens surface as apperror.ErrSessionNotFound.
func (that *sessionService) GetByToken(ctx context.Context, token string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get session by token: %w", err)
	}

	return session, nil
}

// DeleteByToken - revokes a token so later handshakes with it fail.
// Idempotent: revoking an unknown token is a no-op.
func (that *sessionService) DeleteByToken(ctx context.Context, token string) error {
	if err := that.sessionRepo.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session by token: %w", err)
	}

	return nil
}

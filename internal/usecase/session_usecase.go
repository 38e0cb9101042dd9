package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/google/uuid"
	"github.com/minhtran-ct/collab-view/internal/config"
	"github.com/minhtran-ct/collab-view/internal/models"
	"github.com/minhtran-ct/collab-view/internal/repo/mongodb"
)

// Session is the opaque handle a successful authentication yields. It is
// held server-side; clients only ever see the token. This replaces the
// original design's ambient store handle with explicit creation on
// authenticate and teardown on logout or expiry.
type Session struct {
	Token     string
	Tenant    string
	Store     mongodb.TenantStore
	CreatedAt time.Time
	ExpiresAt time.Time
}

type SessionUsecase interface {
	Authenticate(ctx context.Context, tenant, credential string) (*Session, error)
	Get(token string) (*Session, error)
	Logout(token string)
}

type sessionUsecase struct {
	directory mongodb.TenantDirectory
	ttl       time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionUsecase(conf *config.Config, directory mongodb.TenantDirectory) SessionUsecase {
	return &sessionUsecase{
		directory: directory,
		ttl:       conf.Session.TTL,
		sessions:  make(map[string]*Session),
	}
}

func (uc *sessionUsecase) Authenticate(ctx context.Context, tenant, credential string) (*Session, error) {
	ok, err := uc.directory.Exists(ctx, tenant)
	if err != nil {
		return nil, fmt.Errorf("failed to check tenant: %w", err)
	}
	if !ok {
		return nil, models.ErrTenantNotFound
	}

	secret, err := uc.directory.Secret(ctx, tenant)
	if errors.Is(err, models.ErrNotFound) {
		// a tenant without an Authenticator record is an operator
		// mistake, never a wrong credential
		return nil, models.ErrAuthNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tenant secret: %w", err)
	}
	if secret != credential {
		return nil, models.ErrWrongCredential
	}

	now := time.Now()
	session := &Session{
		Token:     uuid.NewString(),
		Tenant:    tenant,
		Store:     uc.directory.Open(tenant),
		CreatedAt: now,
		ExpiresAt: now.Add(uc.ttl),
	}

	uc.mu.Lock()
	uc.sessions[session.Token] = session
	uc.mu.Unlock()

	log.Infow(ctx, "session created", "tenant", tenant)
	return session, nil
}

func (uc *sessionUsecase) Get(token string) (*Session, error) {
	uc.mu.RLock()
	session, ok := uc.sessions[token]
	uc.mu.RUnlock()

	if !ok {
		return nil, models.ErrSessionExpired
	}
	if time.Now().After(session.ExpiresAt) {
		uc.Logout(token)
		return nil, models.ErrSessionExpired
	}
	return session, nil
}

func (uc *sessionUsecase) Logout(token string) {
	uc.mu.Lock()
	delete(uc.sessions, token)
	uc.mu.Unlock()
}

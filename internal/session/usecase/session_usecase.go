package usecase

import (
	"context"
	"strings"
	"time"

	"ev-storefront/internal/session/config"
	"ev-storefront/internal/session/domain/model"
	"ev-storefront/internal/session/domain/repository"
	"ev-storefront/internal/shared/errors"
	"ev-storefront/internal/shared/eventbus"
	"ev-storefront/internal/shared/logger"

	"github.com/google/uuid"
)

// AuthAPI is the slice of the backend client the session module needs:
// credential checks happen upstream, the gateway only keeps the session.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
}

// AuthResult is returned from Login/Register: the user, the signed session
// token for the browser, and the role-based landing path.
type AuthResult struct {
	User         *model.User `json:"user"`
	SessionToken string      `json:"session_token"`
	RedirectTo   string      `json:"redirect_to"`
}

// SessionUsecaseInterface defines the session service contract
type SessionUsecaseInterface interface {
	Register(ctx context.Context, name, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, sessionToken string) error

	GetSession(ctx context.Context, sessionToken string) *model.Session
	CurrentUser(ctx context.Context, sessionToken string) *model.User
	AuthToken(ctx context.Context, sessionToken string) string
	ClearSession(ctx context.Context, sessionToken string)

	RememberSearch(ctx context.Context, sessionID, term string) error
	RecentSearches(ctx context.Context, sessionID string) []string
}

// SessionUsecase owns the session lifecycle: created on login/register, read
// on every authenticated action, destroyed on logout or expiry detection.
type SessionUsecase struct {
	store       repository.SessionStore
	tokens      repository.TokenService
	authAPI     AuthAPI
	bus         eventbus.EventBusInterface
	log         logger.Logger
	ttl         time.Duration
	searchLimit int
	now         func() time.Time
}

// NewSessionUsecase creates a new session usecase
func NewSessionUsecase(
	store repository.SessionStore,
	tokens repository.TokenService,
	authAPI AuthAPI,
	bus eventbus.EventBusInterface,
	cfg *config.Config,
	log logger.Logger,
) *SessionUsecase {
	return &SessionUsecase{
		store:       store,
		tokens:      tokens,
		authAPI:     authAPI,
		bus:         bus,
		log:         log.WithComponent("session"),
		ttl:         cfg.SessionTTL,
		searchLimit: cfg.RecentSearchLimit,
		now:         time.Now,
	}
}

// Register creates a backend account and opens a session for it.
func (u *SessionUsecase) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	user, backendToken, err := u.authAPI.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	return u.openSession(ctx, user, backendToken)
}

// Login authenticates against the backend and opens a session.
func (u *SessionUsecase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, backendToken, err := u.authAPI.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return u.openSession(ctx, user, backendToken)
}

func (u *SessionUsecase) openSession(ctx context.Context, user *model.User, backendToken string) (*AuthResult, error) {
	now := u.now()
	session := &model.Session{
		ID:        uuid.NewString(),
		User:      *user,
		Token:     backendToken,
		ExpiresAt: now.Add(u.ttl),
		CreatedAt: now,
	}

	if err := u.store.Save(ctx, session); err != nil {
		return nil, errors.NewInternalError("failed to persist session").WithCause(err)
	}

	signed, err := u.tokens.GenerateToken(ctx, session.ID, user.ID, user.Role)
	if err != nil {
		return nil, errors.NewInternalError("failed to sign session token").WithCause(err)
	}

	if u.bus != nil {
		u.bus.PublishAndForget(ctx, eventbus.NewBasicEventWithSource(
			eventbus.EventTypeUserAuthenticated, nil, "session"))
	}

	return &AuthResult{
		User:         user,
		SessionToken: signed,
		RedirectTo:   user.RedirectTarget(),
	}, nil
}

// Logout revokes the backend token (best effort) and always clears the
// session, mirroring the storefront's logout-then-clear behavior.
func (u *SessionUsecase) Logout(ctx context.Context, sessionToken string) error {
	if session := u.GetSession(ctx, sessionToken); session != nil {
		if err := u.authAPI.Logout(ctx, session.Token); err != nil {
			u.log.WithContext(ctx).Warnf("Backend logout failed: %v", err)
		}
	}

	u.ClearSession(ctx, sessionToken)

	if u.bus != nil {
		u.bus.PublishAndForget(ctx, eventbus.NewBasicEventWithSource(
			eventbus.EventTypeUserLoggedOut, nil, "session"))
	}
	return nil
}

// GetSession resolves a session token to its stored record. It returns nil
// when the token is absent, malformed, or the record is missing or expired;
// an expired record is deleted on read. Reads never error: callers render the
// logged-out state instead.
func (u *SessionUsecase) GetSession(ctx context.Context, sessionToken string) *model.Session {
	if sessionToken == "" {
		return nil
	}

	claims, err := u.tokens.ValidateToken(ctx, sessionToken)
	if err != nil {
		// An expired token can still identify its record; remove it so the
		// store does not accumulate dead sessions.
		if claims, extractErr := u.tokens.ExtractClaims(sessionToken); extractErr == nil {
			_ = u.store.Delete(ctx, claims.SessionID)
		}
		return nil
	}

	session, err := u.store.Get(ctx, claims.SessionID)
	if err != nil {
		if err != model.ErrSessionNotFound {
			u.log.WithContext(ctx).Warnf("Session read failed: %v", err)
		}
		return nil
	}

	if session.Expired(u.now()) {
		_ = u.store.Delete(ctx, session.ID)
		return nil
	}

	return session
}

// CurrentUser is a read-only projection of GetSession.
func (u *SessionUsecase) CurrentUser(ctx context.Context, sessionToken string) *model.User {
	session := u.GetSession(ctx, sessionToken)
	if session == nil {
		return nil
	}
	user := session.User
	return &user
}

// AuthToken returns the backend bearer token for the session, or "" when no
// valid session exists.
func (u *SessionUsecase) AuthToken(ctx context.Context, sessionToken string) string {
	session := u.GetSession(ctx, sessionToken)
	if session == nil {
		return ""
	}
	return session.Token
}

// ClearSession deletes the stored session; idempotent.
func (u *SessionUsecase) ClearSession(ctx context.Context, sessionToken string) {
	if sessionToken == "" {
		return
	}
	claims, err := u.tokens.ExtractClaims(sessionToken)
	if err != nil {
		return
	}
	if err := u.store.Delete(ctx, claims.SessionID); err != nil {
		u.log.WithContext(ctx).Warnf("Session delete failed: %v", err)
	}
}

// RememberSearch prepends a search term to the session's recent-search list,
// deduplicating and capping it at the configured limit.
func (u *SessionUsecase) RememberSearch(ctx context.Context, sessionID, term string) error {
	term = strings.TrimSpace(term)
	if term == "" || sessionID == "" {
		return nil
	}

	existing, err := u.store.RecentSearches(ctx, sessionID)
	if err != nil {
		return err
	}

	searches := make([]string, 0, u.searchLimit)
	searches = append(searches, term)
	for _, s := range existing {
		if strings.EqualFold(s, term) {
			continue
		}
		searches = append(searches, s)
		if len(searches) == u.searchLimit {
			break
		}
	}

	return u.store.SaveSearches(ctx, sessionID, searches)
}

// RecentSearches returns the session's recent searches, most recent first.
// Failures degrade to an empty list.
func (u *SessionUsecase) RecentSearches(ctx context.Context, sessionID string) []string {
	if sessionID == "" {
		return []string{}
	}
	searches, err := u.store.RecentSearches(ctx, sessionID)
	if err != nil {
		u.log.WithContext(ctx).Warnf("Recent searches read failed: %v", err)
		return []string{}
	}
	return searches
}

// WithClock overrides the usecase clock; used by tests to force expiry.
func (u *SessionUsecase) WithClock(now func() time.Time) *SessionUsecase {
	u.now = now
	return u
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/feel-write/feelwrite-backend/internal/models"
	"github.com/feel-write/feelwrite-backend/pkg/utils"
)

// ErrInvalidCredentials is returned when the email/password pair does not
// match any demo account. The auth state is left unchanged.
var ErrInvalidCredentials = errors.New("invalid email or password")

// demoSeed is one preview-mode account. Passwords are argon2id-hashed at
// construction so the credential check path matches a real deployment.
type demoSeed struct {
	Email    string
	Password string
	Name     string
}

var defaultDemoSeeds = []demoSeed{
	{Email: "demo@example.com", Password: "password123", Name: "Demo User"},
	{Email: "test@example.com", Password: "test123", Name: "Test User"},
}

type demoAccount struct {
	Email        string
	PasswordHash string
	Name         string
}

// AuthEvent describes a session state change delivered to OnChange subscribers.
type AuthEvent string

const (
	AuthEventSignedIn  AuthEvent = "SIGNED_IN"
	AuthEventSignedOut AuthEvent = "SIGNED_OUT"
)

// AuthListener receives the current session (nil when signed out) on every
// state change, and once immediately upon subscription.
type AuthListener func(event AuthEvent, sess *models.Session)

// DemoAuth simulates credential and OAuth sign-in against a fixed account
// directory, without a real identity provider. Sessions are persisted through
// a SessionStore and expire lazily: a stale session is treated as signed out
// and cleared on the next GetSession.
type DemoAuth struct {
	store SessionStore
	now   func() time.Time

	accounts []demoAccount

	mu        sync.Mutex
	listeners map[int]AuthListener
	nextSubID int
	lastToken string
}

// NewDemoAuth builds the service with the default demo directory.
func NewDemoAuth(store SessionStore) (*DemoAuth, error) {
	accounts := make([]demoAccount, 0, len(defaultDemoSeeds))
	for _, seed := range defaultDemoSeeds {
		hash, err := utils.HashPassword(seed.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash demo password: %w", err)
		}
		accounts = append(accounts, demoAccount{
			Email:        seed.Email,
			PasswordHash: hash,
			Name:         seed.Name,
		})
	}
	return &DemoAuth{
		store:     store,
		now:       time.Now,
		accounts:  accounts,
		listeners: make(map[int]AuthListener),
	}, nil
}

// SetClock overrides the time source. Test hook.
func (a *DemoAuth) SetClock(now func() time.Time) {
	a.now = now
}

// SignInWithPassword checks the email/password pair against the demo
// directory. On match it creates a fresh identity and a 7-day session and
// returns the opaque token; on mismatch it returns ErrInvalidCredentials.
func (a *DemoAuth) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, string, error) {
	var account *demoAccount
	for i := range a.accounts {
		if strings.EqualFold(a.accounts[i].Email, email) {
			account = &a.accounts[i]
			break
		}
	}
	if account == nil {
		return nil, "", ErrInvalidCredentials
	}
	ok, err := utils.VerifyPassword(password, account.PasswordHash)
	if err != nil || !ok {
		return nil, "", ErrInvalidCredentials
	}

	sess := &models.Session{
		User: models.Identity{
			ID:        uuid.NewString(),
			Email:     account.Email,
			Name:      account.Name,
			AvatarURL: avatarURL(account.Email),
			Provider:  "password",
		},
		ExpiresAt: a.now().Add(SessionDuration).Unix(),
	}
	token, err := a.persist(ctx, sess)
	if err != nil {
		return nil, "", err
	}
	return sess, token, nil
}

// SignInWithOAuth signs in unconditionally with a synthesized identity tagged
// by the provider name. No real OAuth handshake happens.
func (a *DemoAuth) SignInWithOAuth(ctx context.Context, provider string) (*models.Session, string, error) {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		provider = "oauth"
	}
	first, size := utf8.DecodeRuneInString(provider)
	name := string(unicode.ToUpper(first)) + provider[size:] + " User"

	sess := &models.Session{
		User: models.Identity{
			ID:        uuid.NewString(),
			Email:     "oauth@example.com",
			Name:      name,
			AvatarURL: avatarURL(provider),
			Provider:  provider,
		},
		ExpiresAt: a.now().Add(SessionDuration).Unix(),
	}
	token, err := a.persist(ctx, sess)
	if err != nil {
		return nil, "", err
	}
	return sess, token, nil
}

// SignOut clears the persisted session for the token.
func (a *DemoAuth) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := a.store.Delete(ctx, token); err != nil {
		return err
	}
	a.notify(AuthEventSignedOut, nil)
	return nil
}

// GetSession returns the session for the token, or nil when signed out.
// A persisted session whose expiry is in the past is cleared as a side effect
// and reported as signed out (lazy expiry).
func (a *DemoAuth) GetSession(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, nil
	}
	sess, err := a.store.Load(ctx, token)
	if err != nil || sess == nil {
		return nil, err
	}
	if sess.Expired(a.now()) {
		_ = a.store.Delete(ctx, token)
		a.notify(AuthEventSignedOut, nil)
		return nil, nil
	}
	return sess, nil
}

// OnChange registers a listener, invokes it immediately with the current
// state, and returns an unsubscribe func.
func (a *DemoAuth) OnChange(ctx context.Context, fn AuthListener) func() {
	a.mu.Lock()
	id := a.nextSubID
	a.nextSubID++
	a.listeners[id] = fn
	token := a.lastToken
	a.mu.Unlock()

	sess, _ := a.GetSession(ctx, token)
	if sess != nil {
		fn(AuthEventSignedIn, sess)
	} else {
		fn(AuthEventSignedOut, nil)
	}

	return func() {
		a.mu.Lock()
		delete(a.listeners, id)
		a.mu.Unlock()
	}
}

func (a *DemoAuth) persist(ctx context.Context, sess *models.Session) (string, error) {
	token, err := NewSessionToken()
	if err != nil {
		return "", err
	}
	ttl := time.Unix(sess.ExpiresAt, 0).Sub(a.now())
	if err := a.store.Save(ctx, token, sess, ttl); err != nil {
		return "", err
	}
	a.mu.Lock()
	a.lastToken = token
	a.mu.Unlock()
	a.notify(AuthEventSignedIn, sess)
	return token, nil
}

func (a *DemoAuth) notify(event AuthEvent, sess *models.Session) {
	a.mu.Lock()
	fns := make([]AuthListener, 0, len(a.listeners))
	for _, fn := range a.listeners {
		fns = append(fns, fn)
	}
	a.mu.Unlock()
	for _, fn := range fns {
		fn(event, sess)
	}
}

func avatarURL(seed string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + seed
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"coolschool/internal/models"
)

const (
	sessionName   = "coolschool-session"
	sessionUserID = "user_id"
)

// ErrInvalidCredentials is returned when the username or password do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// NewCookieStore builds the session store. An empty key yields a random one,
// which invalidates sessions on every restart.
func NewCookieStore(sessionKey string) (*sessions.CookieStore, error) {
	key := []byte(sessionKey)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, errors.New("could not generate a session key")
		}
	}
	if len(key) < 32 {
		return nil, errors.New("session key must be at least 32 characters long")
	}
	store := sessions.NewCookieStore(key)
	store.Options.HttpOnly = true
	store.Options.Path = "/"
	store.Options.SameSite = http.SameSiteLaxMode // Protect against CSRF
	return store, nil
}

// Service provides authentication-related services.
type Service struct {
	Repo       *Repository
	Store      sessions.Store
	BcryptCost int
}

// NewService creates a new authentication service.
func NewService(repo *Repository, store sessions.Store) *Service {
	return &Service{Repo: repo, Store: store, BcryptCost: bcrypt.DefaultCost}
}

// HashPassword hashes a plain text password with bcrypt.
func (s *Service) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// SaveUser creates the user, or resets the password and superuser flag of an
// existing one.
func (s *Service) SaveUser(ctx context.Context, username, password string, superuser bool) (*models.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.Repo.FindUserByUsername(ctx, username)
	switch {
	case errors.Is(err, ErrUserNotFound):
		user = &models.User{Username: username, PasswordHash: hash, IsSuperuser: superuser}
		if err := s.Repo.CreateUser(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	case err != nil:
		return nil, err
	}

	user.PasswordHash = hash
	user.IsSuperuser = user.IsSuperuser || superuser
	if err := s.Repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser adds a new user. An existing username yields ErrUserExists.
func (s *Service) CreateUser(ctx context.Context, username, password string, superuser bool) (*models.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{Username: username, PasswordHash: hash, IsSuperuser: superuser}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword changes the password of an existing user.
func (s *Service) ResetPassword(ctx context.Context, username, password string) error {
	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	hash, err := s.HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.Repo.UpdateUser(ctx, user)
}

// Authenticate checks a username and password pair.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates a user and creates a session.
func (s *Service) Login(w http.ResponseWriter, r *http.Request, username, password string) (*models.User, error) {
	user, err := s.Authenticate(r.Context(), username, password)
	if err != nil {
		return nil, err
	}

	session, _ := s.Store.Get(r, sessionName)
	session.Values[sessionUserID] = user.ID

	// Secure follows the request scheme, including X-Forwarded-Proto.
	session.Options.Secure = isSecure(r)

	if err := session.Save(r, w); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return user, nil
}

// Logout destroys a user's session.
func (s *Service) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.Store.Get(r, sessionName)
	delete(session.Values, sessionUserID)
	session.Options.Secure = isSecure(r)
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// GetCurrentUser returns the currently logged-in user, or nil.
func (s *Service) GetCurrentUser(r *http.Request) *models.User {
	session, err := s.Store.Get(r, sessionName)
	if err != nil {
		return nil
	}
	id, ok := session.Values[sessionUserID].(int64)
	if !ok {
		return nil
	}
	user, err := s.Repo.FindUserByID(r.Context(), id)
	if err != nil {
		return nil
	}
	return user
}

func isSecure(r *http.Request) bool {
	return r.TLS != nil || r.URL.Scheme == "https" || r.Header.Get("X-Forwarded-Proto") == "https"
}

// Package session holds the client's single source of truth for the
// current identity: the bearer token and the logged-in user record.
//
// The store persists every change to the local metadata repository, so a
// session survives process restarts, and exposes Token as the per-request
// token source for the API client. Consumers that need to react to
// login/logout (the idle monitor, the REPL prompt) subscribe with OnChange.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/tempestapp/tempest-cli/internal/client/api"
	"github.com/tempestapp/tempest-cli/internal/client/models"
	"github.com/tempestapp/tempest-cli/internal/client/repositories/metadata"
	"github.com/tempestapp/tempest-cli/internal/common"
	"github.com/tempestapp/tempest-cli/internal/logging"
)

// Session is the current authenticated identity. Token and User are set
// and cleared together: either both are present or both are absent.
type Session struct {
	Token string
	User  *models.User
}

func (s Session) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Store owns the session and its persistence. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sess     Session
	siteName string

	repo     metadata.Repository
	log      logging.Logger
	onChange []func(Session)
}

func NewStore(repo metadata.Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log}
}

// OnChange registers fn to run after every session transition (login,
// logout, restore). Callbacks run synchronously outside the store lock.
func (s *Store) OnChange(fn func(Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Token returns the current bearer token or "". It satisfies
// api.TokenSource: the API client calls it on every request.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess.Token
}

func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess
}

func (s *Store) Authenticated() bool {
	return s.Current().Authenticated()
}

// Login installs the token/user pair and persists both.
func (s *Store) Login(ctx context.Context, token string, user models.User) error {
	userData, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.repo.Set(ctx, common.StorageKeyToken, []byte(token)); err != nil {
		return err
	}
	if err := s.repo.Set(ctx, common.StorageKeyUser, userData); err != nil {
		return err
	}

	s.set(Session{Token: token, User: &user})
	s.log.Info(ctx, "session established", "user", user.Username)
	return nil
}

// Logout clears the session and removes the persisted values.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.StorageKeyToken); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, common.StorageKeyUser); err != nil {
		return err
	}

	s.set(Session{})
	s.log.Info(ctx, "session cleared")
	return nil
}

// Restore seeds the session from durable storage at startup. It reports
// why nothing was restored: common.ErrNoSession when storage holds no
// usable session, common.ErrSessionExpired when the persisted token had
// already expired. Both discard the stored data so the user simply starts
// logged out. Storage failures are returned as-is.
func (s *Store) Restore(ctx context.Context) error {
	tokenData, err := s.repo.Get(ctx, common.StorageKeyToken)
	if err != nil {
		return err
	}
	userData, err := s.repo.Get(ctx, common.StorageKeyUser)
	if err != nil {
		return err
	}
	if len(tokenData) == 0 || len(userData) == 0 {
		return common.ErrNoSession
	}

	token := string(tokenData)
	if expired, err := TokenExpired(token); err != nil || expired {
		s.log.Warn(ctx, "discarding persisted session", "expired", expired, "error", err)
		if err := s.Logout(ctx); err != nil {
			return err
		}
		return common.ErrSessionExpired
	}

	var user models.User
	if err := json.Unmarshal(userData, &user); err != nil {
		s.log.Warn(ctx, "discarding persisted session: corrupt user record", "error", err)
		if err := s.Logout(ctx); err != nil {
			return err
		}
		return common.ErrNoSession
	}

	s.set(Session{Token: token, User: &user})
	s.log.Info(ctx, "session restored", "user", user.Username)
	return nil
}

func (s *Store) set(sess Session) {
	s.mu.Lock()
	s.sess = sess
	callbacks := make([]func(Session), len(s.onChange))
	copy(callbacks, s.onChange)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(sess)
	}
}

// SiteName returns the backend's display name. The first call fetches it
// from the website metadata endpoint; a failure is logged and the constant
// default is used. The result is cached and read-only afterwards.
func (s *Store) SiteName(ctx context.Context, client api.Client) string {
	s.mu.RLock()
	cached := s.siteName
	s.mu.RUnlock()
	if cached != "" {
		return cached
	}

	name := common.DefaultSiteName
	if site, err := client.WebsiteInfo(ctx); err != nil {
		s.log.Warn(ctx, "could not fetch website metadata", "error", err)
	} else if site.Name != "" {
		name = site.Name
	}

	s.mu.Lock()
	s.siteName = name
	s.mu.Unlock()
	return name
}

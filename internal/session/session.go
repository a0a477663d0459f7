// Package session is the authentication collaborator surface. Only two
// pieces of client state survive a reload: the opaque session (user id +
// token) and the preferred language. Everything else is re-fetched.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Gide-1400/fast-shipment-world/internal/models"
	"github.com/Gide-1400/fast-shipment-world/internal/remote"
)

// State is the persisted client state, the local-storage equivalent.
type State struct {
	UserID   string `json:"userId"`
	Token    string `json:"token"`
	Language string `json:"language"`
}

// FileStore persists State as a small JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the saved state. A missing file is a signed-out state, not an
// error.
func (s *FileStore) Load() (State, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, err
	}
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return State{}, fmt.Errorf("corrupt session file: %w", err)
	}
	return st, nil
}

func (s *FileStore) Save(st State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// Auth resolves the current user from the persisted session and notifies
// listeners on sign-in/sign-out. The heavy lifting (credentials, tokens) is
// the backend's job; this layer only consumes the resulting identity.
type Auth struct {
	client remote.Client
	store  *FileStore

	mu        sync.Mutex
	user      *models.User
	listeners []func(*models.User)
}

func NewAuth(client remote.Client, store *FileStore) *Auth {
	return &Auth{client: client, store: store}
}

// Restore loads the persisted session and fetches the matching user record.
// Returns nil without error when no session is stored. A stored session whose
// user record vanished counts as signed out as well; the stale session is
// cleared rather than surfaced as a crash.
func (a *Auth) Restore(ctx context.Context) (*models.User, error) {
	st, err := a.store.Load()
	if err != nil {
		return nil, err
	}
	if st.UserID == "" {
		return nil, nil
	}
	docs, err := a.client.GetAll(ctx, remote.Query{
		Collection: models.CollectionUsers,
		Predicates: []remote.Predicate{remote.Eq("uid", st.UserID)},
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		_ = a.store.Save(State{Language: st.Language})
		return nil, nil
	}
	user := models.UserFromDoc(docs[0])
	a.setUser(&user)
	return a.CurrentUser(), nil
}

// SignIn records an authenticated identity. The token is opaque; it is
// persisted verbatim and never inspected.
func (a *Auth) SignIn(user models.User, token string) error {
	st, err := a.store.Load()
	if err != nil {
		return err
	}
	st.UserID = user.ID
	st.Token = token
	if err := a.store.Save(st); err != nil {
		return err
	}
	a.setUser(&user)
	return nil
}

func (a *Auth) SignOut() error {
	st, err := a.store.Load()
	if err != nil {
		return err
	}
	if err := a.store.Save(State{Language: st.Language}); err != nil {
		return err
	}
	a.setUser(nil)
	return nil
}

func (a *Auth) CurrentUser() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return nil
	}
	copied := *a.user
	return &copied
}

// OnAuthChange registers a listener called with the new user (nil on sign
// out) after every identity change.
func (a *Auth) OnAuthChange(fn func(*models.User)) {
	a.mu.Lock()
	a.listeners = append(a.listeners, fn)
	a.mu.Unlock()
}

func (a *Auth) setUser(u *models.User) {
	a.mu.Lock()
	a.user = u
	listeners := append([]func(*models.User){}, a.listeners...)
	a.mu.Unlock()
	for _, fn := range listeners {
		fn(u)
	}
}

// SaveLanguage persists the preferred display language.
func (a *Auth) SaveLanguage(lang string) error {
	st, err := a.store.Load()
	if err != nil {
		return err
	}
	st.Language = lang
	return a.store.Save(st)
}

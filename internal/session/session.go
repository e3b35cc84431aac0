package session

import (
	"sync"

	"go-pos-client/internal/auth"
	"go-pos-client/internal/models"
	"go-pos-client/internal/storage"
)

// Status is the resolved authentication state. There is no "maybe": a session
// is loading until the store has been read once, then either a user exists or
// it doesn't.
type Status int

const (
	StatusLoading Status = iota
	StatusAnonymous
	StatusAuthenticated
)

// State is the tagged session value handed to views. User is only set when
// Status is StatusAuthenticated.
type State struct {
	Status Status
	User   *models.User
}

const (
	keyToken    = "token"
	keyUserData = "userData"
)

// Repository persists the session identity. Views never touch the storage
// medium directly, so swapping SQLite for anything else stays local to this
// package.
type Repository interface {
	Load() State
	Save(user models.User, token string) error
	Clear() error
}

// StoreRepository keeps the session in the local key-value store under the
// same keys the views have always used: "token" and "userData".
type StoreRepository struct {
	store *storage.Store
}

func NewRepository(store *storage.Store) *StoreRepository {
	return &StoreRepository{store: store}
}

// Load resolves the stored identity. A missing, corrupt or tampered entry
// clears both keys and resolves to anonymous; re-login is the only recovery.
func (r *StoreRepository) Load() State {
	token, ok := r.store.Get(keyToken)
	if !ok {
		return State{Status: StatusAnonymous}
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		r.Clear()
		return State{Status: StatusAnonymous}
	}

	var user models.User
	if err := r.store.GetJSON(keyUserData, &user); err != nil || user.ID <= 0 || user.ID != claims.UserID {
		r.Clear()
		return State{Status: StatusAnonymous}
	}

	return State{Status: StatusAuthenticated, User: &user}
}

func (r *StoreRepository) Save(user models.User, token string) error {
	if err := r.store.SetJSON(keyUserData, user); err != nil {
		return err
	}
	return r.store.Set(keyToken, token)
}

func (r *StoreRepository) Clear() error {
	if err := r.store.Delete(keyToken); err != nil {
		return err
	}
	return r.store.Delete(keyUserData)
}

// Manager is the single source of truth for "who is logged in". It caches the
// repository's answer so every request doesn't hit the store, and funnels all
// identity mutations back through it.
type Manager struct {
	repo Repository

	mu       sync.Mutex
	state    State
	resolved bool
}

func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo, state: State{Status: StatusLoading}}
}

// Current resolves the session, reading the store on first use.
func (m *Manager) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.resolved {
		m.state = m.repo.Load()
		m.resolved = true
	}
	return m.state
}

// UserID is 0 when nobody is logged in. Passed to the gateway so every remote
// call carries the operator's id.
func (m *Manager) UserID() int {
	state := m.Current()
	if state.Status != StatusAuthenticated {
		return 0
	}
	return state.User.ID
}

// Establish mints a fresh local token for the user and persists both.
func (m *Manager) Establish(user models.User) error {
	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return err
	}
	if err := m.repo.Save(user, token); err != nil {
		return err
	}

	m.mu.Lock()
	m.state = State{Status: StatusAuthenticated, User: &user}
	m.resolved = true
	m.mu.Unlock()
	return nil
}

// Logout drops the persisted identity and reverts to anonymous.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.state = State{Status: StatusAnonymous}
	m.resolved = true
	m.mu.Unlock()
	return m.repo.Clear()
}

// UpdateProfile rewrites the cached identity after a successful remote update.
func (m *Manager) UpdateProfile(name, email, role string) error {
	return m.mutate(func(u *models.User) {
		u.Name = name
		u.Email = email
		u.Role = role
	})
}

// SetAvatar stores the freshly uploaded avatar URL on the identity.
func (m *Manager) SetAvatar(avatarURL string) error {
	return m.mutate(func(u *models.User) {
		u.AvatarURL = avatarURL
	})
}

func (m *Manager) mutate(apply func(*models.User)) error {
	state := m.Current()
	if state.Status != StatusAuthenticated {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user := *m.state.User
	apply(&user)

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return err
	}
	if err := m.repo.Save(user, token); err != nil {
		return err
	}
	m.state = State{Status: StatusAuthenticated, User: &user}
	return nil
}

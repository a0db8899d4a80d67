// Package auth is the journal's credential collaborator. It is deliberately
// a toy: passwords are compared in plain text against locally stored
// records, matching the single-user, local-only trust model of the app. The
// ledger core never touches it.
package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fxtae/journal/pkg/id"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNotLoggedIn        = errors.New("not logged in")
)

// User is a stored account record, password included.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
}

// CurrentUser is the persisted session identity. The password is stripped
// before it ever reaches this type.
type CurrentUser struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists user records and the active session.
type Store interface {
	LoadUsers() ([]User, error)
	SaveUsers([]User) error
	LoadCurrentUser() (CurrentUser, error)
	SaveCurrentUser(CurrentUser) error
	ClearCurrentUser() error
}

// Service wraps a Store with signup/login/logout semantics.
type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// SignUp registers a new user and logs them in. Email must look like an
// address; passwords need at least 8 characters with a letter and a digit.
func (s *Service) SignUp(name, email, password string) (CurrentUser, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return CurrentUser{}, fmt.Errorf("name is required")
	}
	if !emailRe.MatchString(email) {
		return CurrentUser{}, fmt.Errorf("invalid email %q", email)
	}
	if !validPassword(password) {
		return CurrentUser{}, fmt.Errorf("password must be 8+ characters with letters and numbers")
	}

	users, err := s.store.LoadUsers()
	if err != nil {
		users = nil
	}
	for _, u := range users {
		if u.Email == email {
			return CurrentUser{}, ErrEmailTaken
		}
	}

	user := User{
		ID:        id.New(),
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SaveUsers(append(users, user)); err != nil {
		return CurrentUser{}, fmt.Errorf("persist users: %w", err)
	}
	return s.startSession(user)
}

// LogIn matches email and password against the stored records.
func (s *Service) LogIn(email, password string) (CurrentUser, error) {
	users, err := s.store.LoadUsers()
	if err != nil {
		return CurrentUser{}, ErrInvalidCredentials
	}
	for _, u := range users {
		if u.Email == strings.TrimSpace(email) && u.Password == password {
			return s.startSession(u)
		}
	}
	return CurrentUser{}, ErrInvalidCredentials
}

// LogOut clears the active session. Logging out twice is fine.
func (s *Service) LogOut() error {
	return s.store.ClearCurrentUser()
}

// Current returns the active session identity, or ErrNotLoggedIn.
func (s *Service) Current() (CurrentUser, error) {
	cu, err := s.store.LoadCurrentUser()
	if err != nil || cu.Email == "" {
		return CurrentUser{}, ErrNotLoggedIn
	}
	return cu, nil
}

func (s *Service) startSession(u User) (CurrentUser, error) {
	cu := CurrentUser{Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
	if err := s.store.SaveCurrentUser(cu); err != nil {
		return CurrentUser{}, fmt.Errorf("persist session: %w", err)
	}
	return cu, nil
}

func validPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var letter, digit bool
	for _, r := range pw {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			letter = true
		}
	}
	return letter && digit
}

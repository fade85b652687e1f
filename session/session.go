// Package session holds the logged-in user for the lifetime of a portal
// session. It is an explicit dependency handed to consumers, not ambient
// global state: the transport reads the token through Session.Token, and
// navigation derives from the user's role.
package session

import (
	"errors"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// Roles the portal routes on.
const (
	RoleAdmin     = "admin"
	RoleMember    = "member"
	RoleFranchise = "franchise"
)

// ErrNoSession is returned when a caller needs a user but none is logged in.
var ErrNoSession = errors.New("session: no active session")

// User is the authenticated identity extracted from the access token.
type User struct {
	ID    string
	Name  string
	Email string
	Role  string
}

// Session is a goroutine-safe holder for the current user and access token.
// The zero value is a logged-out session ready for use.
type Session struct {
	mu    sync.RWMutex
	user  *User
	token string
}

// New returns an empty (logged-out) session.
func New() *Session {
	return &Session{}
}

// Start installs the access token and derives the current user from its
// claims. The token is not verified here — signature checks are the
// server's job; the client only routes on what the token says.
func (s *Session) Start(token string) (*User, error) {
	user, err := userFromToken(token)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()
	return user, nil
}

// Set installs an explicit user/token pair, for callers that receive the
// profile alongside the token at login.
func (s *Session) Set(user User, token string) {
	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()
}

// Current returns the logged-in user, or ErrNoSession.
func (s *Session) Current() (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, ErrNoSession
	}
	u := *s.user
	return &u, nil
}

// Token returns the raw access token; empty when logged out. Matches the
// transport.TokenSource signature.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Active reports whether a user is logged in.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Clear logs the session out. The caller owns clearing user-scoped caches
// alongside (see the di container's Logout).
func (s *Session) Clear() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
}

func userFromToken(token string) (*User, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	user := &User{Role: RoleMember}
	if sub, err := claims.GetSubject(); err == nil {
		user.ID = sub
	}
	if v, ok := claims["name"].(string); ok {
		user.Name = v
	}
	if v, ok := claims["email"].(string); ok {
		user.Email = v
	}
	if v, ok := claims["role"].(string); ok && v != "" {
		user.Role = v
	}
	return user, nil
}

// Section is one entry of the role-scoped navigation tree.
type Section struct {
	Title string
	Path  string
}

// NavigationFor returns the ordered navigation sections for a role. Unknown
// roles get the member navigation.
func NavigationFor(role string) []Section {
	switch role {
	case RoleAdmin:
		return []Section{
			{Title: "Members", Path: "/admin/members"},
			{Title: "Tickets", Path: "/admin/tickets"},
			{Title: "E-Pins", Path: "/admin/epins"},
			{Title: "Reward Loans", Path: "/admin/reward-loans"},
			{Title: "News", Path: "/admin/news"},
			{Title: "Holidays", Path: "/admin/holidays"},
		}
	case RoleFranchise:
		return []Section{
			{Title: "Members", Path: "/franchise/members"},
			{Title: "E-Pins", Path: "/franchise/epins"},
			{Title: "Receipts", Path: "/franchise/receipts"},
		}
	default:
		return []Section{
			{Title: "Wallet", Path: "/wallet"},
			{Title: "Transactions", Path: "/transactions"},
			{Title: "Loans", Path: "/loans"},
			{Title: "Support", Path: "/support"},
		}
	}
}

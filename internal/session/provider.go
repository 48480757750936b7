package session

import (
	"errors"

	"transactions-api/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrNoSession is returned when a request presents no session identity.
var ErrNoSession = errors.New("no session identity presented")

// Provider binds anonymous callers to an opaque bearer identity carried
// in a cookie. There is no server-side session table: possession of the
// cookie value is the whole trust model, so presented tokens are never
// checked against the store.
type Provider struct {
	cookieName string
	maxAge     int // seconds
	secure     bool
}

func NewProvider(cfg config.SessionConfig) *Provider {
	name := cfg.CookieName
	if name == "" {
		name = "sessionId"
	}
	days := cfg.MaxAgeDays
	if days <= 0 {
		days = 30
	}
	return &Provider{
		cookieName: name,
		maxAge:     days * 24 * 60 * 60,
		secure:     cfg.Secure,
	}
}

// ResolveOrIssue returns the presented token unchanged, or mints a fresh
// identity when none was presented. Callers receiving isNew=true must
// hand the identity back to the client via Issue.
func (p *Provider) ResolveOrIssue(presented string) (id string, isNew bool) {
	if presented != "" {
		return presented, false
	}
	return uuid.NewString(), true
}

// Require fails with ErrNoSession when no token is presented. A non-empty
// token succeeds as-is (trust-by-possession).
func (p *Provider) Require(presented string) (string, error) {
	if presented == "" {
		return "", ErrNoSession
	}
	return presented, nil
}

// FromRequest reads the session cookie, returning "" when absent.
func (p *Provider) FromRequest(c *gin.Context) string {
	id, err := c.Cookie(p.cookieName)
	if err != nil {
		return ""
	}
	return id
}

// Issue sets the session cookie on the response: path "/" so it covers
// the whole API, 30-day expiry by default.
func (p *Provider) Issue(c *gin.Context, id string) {
	c.SetCookie(p.cookieName, id, p.maxAge, "/", "", p.secure, true)
}

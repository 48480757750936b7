package middleware

import (
	"net/http"

	"transactions-api/internal/session"
	"transactions-api/internal/util"

	"github.com/gin-gonic/gin"
)

// SessionKey is the context key the guard stores the session id under.
const SessionKey = "sessionID"

// SessionGuard rejects requests that present no session cookie. Guarded
// handlers read the identity from the context and never see a request
// without one.
func SessionGuard(p *session.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := p.Require(p.FromRequest(c))
		if err != nil {
			util.Error(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		c.Set(SessionKey, id)
		c.Next()
	}
}

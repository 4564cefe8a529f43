package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// TokenCookieName is the cookie read by the access guard when no Authorization header is sent
const TokenCookieName = "jwt"

// SessionCookie writes the access token cookie handed out on register and login.
type SessionCookie struct {
	Name   string
	Domain string
	Secure bool
}

func NewSessionCookie(domain string, secure bool) *SessionCookie {
	return &SessionCookie{Name: TokenCookieName, Domain: domain, Secure: secure}
}

// Set stores token in an HttpOnly cookie that expires with it.
func (s *SessionCookie) Set(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, token, maxAgeFrom(exp), "/", s.Domain, s.Secure, true)
}

func (s *SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, "", -1, "/", s.Domain, s.Secure, true)
}

// ReadToken returns the token cookie sent with the request, or "".
func ReadToken(c *gin.Context) string {
	v, err := c.Cookie(TokenCookieName)
	if err != nil {
		return ""
	}
	return v
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}

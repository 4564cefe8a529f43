package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/orgauth-service/internal/domain/entity"
	"github.com/oksasatya/orgauth-service/pkg/helpers"
)

const (
	CtxUserKey   = "currentUser"
	CtxUserIDKey = "userID"
)

// IdentityResolver turns an access token into the user it was issued for.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) (*entity.User, error)
}

// Auth guards a route group. The token comes from "Authorization: Bearer"
// or, failing that, the jwt cookie. The resolved user is stored under
// CtxUserKey and its id under CtxUserIDKey.
func Auth(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := resolver.ResolveIdentity(c.Request.Context(), tokenFrom(c))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}
		c.Set(CtxUserKey, u)
		c.Set(CtxUserIDKey, u.ID.String())
		c.Next()
	}
}

func tokenFrom(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			if token = strings.TrimSpace(token); token != "" {
				return token
			}
		}
	}
	return helpers.ReadToken(c)
}

// CurrentUser returns the user stored by Auth.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(CtxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*entity.User)
	return u, ok && u != nil
}

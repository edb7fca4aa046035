package middleware

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	repo "github.com/oksasatya/discount-catalog/internal/domain/repository"
	"github.com/oksasatya/discount-catalog/internal/store"
	"github.com/oksasatya/discount-catalog/pkg/helpers"
	"github.com/oksasatya/discount-catalog/pkg/response"
)

// Gin context keys set by Session.
const (
	CtxSessionKey = "session"
	CtxStoreKey   = "store"
	CtxUserIDKey  = "userID"
)

// Session resolves the session cookie. A valid cookie puts the session, its
// user id and its store into the context. A stale or forged cookie is cleared
// and the request continues anonymously with a throwaway store.
func Session(jwt *helpers.JWTManager, sessions repo.SessionRepository, stores *store.Registry, cookies *helpers.Manager, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookie)
		if err != nil || token == "" {
			c.Set(CtxStoreKey, stores.For(""))
			c.Next()
			return
		}

		claims, err := jwt.ParseSessionToken(token)
		if err != nil {
			cookies.Clear(c)
			c.Set(CtxStoreKey, stores.For(""))
			c.Next()
			return
		}

		sess, err := sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil {
			if errors.Is(err, repo.ErrSessionNotFound) {
				cookies.Clear(c)
				stores.Drop(claims.SessionID)
			} else if logger != nil {
				logger.WithError(err).Warn("session lookup failed")
			}
			c.Set(CtxStoreKey, stores.For(""))
			c.Next()
			return
		}

		c.Set(CtxSessionKey, sess)
		c.Set(CtxUserIDKey, sess.User.ID)
		c.Set(CtxStoreKey, stores.ForSession(sess.ID, sess.ExpiresAt))
		c.Next()
	}
}

// CurrentSession returns the signed-in session or nil.
func CurrentSession(c *gin.Context) *entity.Session {
	if v, ok := c.Get(CtxSessionKey); ok {
		if s, ok := v.(*entity.Session); ok {
			return s
		}
	}
	return nil
}

// CurrentStore returns the request's store. Without the Session middleware a
// fresh store is returned.
func CurrentStore(c *gin.Context) *store.Store {
	if v, ok := c.Get(CtxStoreKey); ok {
		if st, ok := v.(*store.Store); ok {
			return st
		}
	}
	st := store.New(nil)
	c.Set(CtxStoreKey, st)
	return st
}

// LoginURL is the login screen with a return path for anything but the catalog.
func LoginURL(path string) string {
	if path == "" || path == "/" {
		return "/login"
	}
	return "/login?redirect=" + url.QueryEscape(path)
}

// RequireAuth redirects anonymous visitors to the login screen.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) == nil {
			c.Redirect(http.StatusFound, LoginURL(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin redirects anyone who is not a signed-in administrator to the login screen.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil || !sess.User.IsAdmin {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAPIAuth answers 401 JSON for JSON endpoints without a session.
func RequireAPIAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) == nil {
			response.Abort(c, response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil))
			return
		}
		c.Next()
	}
}

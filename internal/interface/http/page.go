package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	"github.com/oksasatya/discount-catalog/internal/interface/middleware"
)

// Page is the data every screen template receives.
type Page struct {
	Title   string
	User    *entity.UserInfo
	Error   string
	Message string
	Data    any
}

// Renderer executes a named screen template.
type Renderer interface {
	Render(w io.Writer, page string, data any) error
}

// Base carries what every screen handler needs to render.
type Base struct {
	View   Renderer
	Logger logrus.FieldLogger
}

func (b *Base) render(c *gin.Context, status int, page string, p Page) {
	if sess := middleware.CurrentSession(c); sess != nil && p.User == nil {
		u := sess.User
		p.User = &u
	}
	var buf bytes.Buffer
	if err := b.View.Render(&buf, page, p); err != nil {
		if b.Logger != nil {
			b.Logger.WithError(err).WithField("page", page).Error("render failed")
		}
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// NotFound renders the 404 screen.
func (b *Base) NotFound(c *gin.Context) {
	b.render(c, http.StatusNotFound, "not_found", Page{Title: "Not found"})
}

// token returns the API bearer token of the signed-in session, if any.
func token(c *gin.Context) string {
	if sess := middleware.CurrentSession(c); sess != nil {
		return sess.Token
	}
	return ""
}

// safeRedirect keeps redirects on this site.
func safeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}

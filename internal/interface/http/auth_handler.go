package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/discount-catalog/internal/application"
	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	"github.com/oksasatya/discount-catalog/internal/interface/middleware"
	"github.com/oksasatya/discount-catalog/pkg/helpers"
	"github.com/oksasatya/discount-catalog/pkg/validation"
)

type AuthHandler struct {
	Base
	Users   *application.UserService
	JWT     *helpers.JWTManager
	Cookies *helpers.Manager
}

func NewAuthHandler(base Base, users *application.UserService, jwt *helpers.JWTManager, cookies *helpers.Manager) *AuthHandler {
	return &AuthHandler{Base: base, Users: users, JWT: jwt, Cookies: cookies}
}

type loginRequest struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

type registerRequest struct {
	Name            string `form:"name" binding:"required"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required,pwd"`
	ConfirmPassword string `form:"confirmPassword"`
}

type loginData struct {
	Email    string
	Redirect string
}

type registerData struct {
	Name     string
	Email    string
	Redirect string
}

func redirectParam(c *gin.Context) string {
	if r := c.Query("redirect"); r != "" {
		return safeRedirect(r)
	}
	return ""
}

// LoginPage GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if middleware.CurrentSession(c) != nil {
		c.Redirect(http.StatusFound, safeRedirect(redirectParam(c)))
		return
	}
	h.render(c, http.StatusOK, "login", Page{Title: "Log in", Data: loginData{Redirect: redirectParam(c)}})
}

// Login POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	redirect := redirectParam(c)
	if err := c.ShouldBind(&req); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "login", Page{Title: "Log in", Error: validation.Message(err), Data: loginData{Email: req.Email, Redirect: redirect}})
		return
	}

	st := middleware.CurrentStore(c)
	sess, state := h.Users.Login(c.Request.Context(), st, entity.Credentials{Email: req.Email, Password: req.Password})
	if sess == nil {
		h.render(c, http.StatusUnprocessableEntity, "login", Page{Title: "Log in", Error: state.Error, Data: loginData{Email: req.Email, Redirect: redirect}})
		return
	}
	if !h.issueCookie(c, sess) {
		return
	}
	c.Redirect(http.StatusSeeOther, safeRedirect(redirect))
}

// RegisterPage GET /register
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if middleware.CurrentSession(c) != nil {
		c.Redirect(http.StatusFound, safeRedirect(redirectParam(c)))
		return
	}
	h.render(c, http.StatusOK, "register", Page{Title: "Sign up", Data: registerData{Redirect: redirectParam(c)}})
}

// Register POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	redirect := redirectParam(c)
	fail := func(msg string) {
		h.render(c, http.StatusUnprocessableEntity, "register", Page{
			Title: "Sign up",
			Error: msg,
			Data:  registerData{Name: req.Name, Email: req.Email, Redirect: redirect},
		})
	}
	if err := c.ShouldBind(&req); err != nil {
		fail(validation.Message(err))
		return
	}

	st := middleware.CurrentStore(c)
	u := entity.User{Name: req.Name, Email: req.Email, Password: req.Password}
	sess, state, err := h.Users.Register(c.Request.Context(), st, u, req.ConfirmPassword)
	if errors.Is(err, application.ErrPasswordMismatch) {
		fail(err.Error())
		return
	}
	if sess == nil {
		fail(state.Error)
		return
	}
	if !h.issueCookie(c, sess) {
		return
	}
	c.Redirect(http.StatusSeeOther, safeRedirect(redirect))
}

// Logout POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess := middleware.CurrentSession(c); sess != nil {
		h.Users.Logout(c.Request.Context(), sess.ID)
	}
	h.Cookies.Clear(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

func (h *AuthHandler) issueCookie(c *gin.Context, sess *entity.Session) bool {
	tok, exp, err := h.JWT.GenerateSessionToken(sess.ID)
	if err != nil {
		helpers.LogError(h.Logger, "sign session token failed", err, nil)
		h.Users.Logout(c.Request.Context(), sess.ID)
		h.render(c, http.StatusInternalServerError, "login", Page{Title: "Log in", Error: "Could not start a session"})
		return false
	}
	if exp.After(sess.ExpiresAt) {
		exp = sess.ExpiresAt
	}
	h.Cookies.SetSession(c, tok, exp)
	return true
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/discount-catalog/internal/application"
	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	"github.com/oksasatya/discount-catalog/internal/interface/middleware"
	"github.com/oksasatya/discount-catalog/pkg/validation"
)

type ProfileHandler struct {
	Base
	Users *application.UserService
}

func NewProfileHandler(base Base, users *application.UserService) *ProfileHandler {
	return &ProfileHandler{Base: base, Users: users}
}

type updateProfileRequest struct {
	Name            string `form:"name" binding:"required"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"omitempty,pwd"`
	ConfirmPassword string `form:"confirmPassword"`
}

type profileData struct {
	Name    string
	Email   string
	IsAdmin bool
}

// Show GET /profile
func (h *ProfileHandler) Show(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	st := middleware.CurrentStore(c)
	state := h.Users.Profile(c.Request.Context(), st, sess)

	data := profileData{Name: sess.User.Name, Email: sess.User.Email, IsAdmin: sess.User.IsAdmin}
	if state.Success {
		data.Name, data.Email = state.Data.Name, state.Data.Email
	}
	h.render(c, http.StatusOK, "profile", Page{Title: "Profile", Error: state.Error, Data: data})
}

// Update POST /profile
func (h *ProfileHandler) Update(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	st := middleware.CurrentStore(c)

	var req updateProfileRequest
	fail := func(msg string) {
		h.render(c, http.StatusUnprocessableEntity, "profile", Page{
			Title: "Profile",
			Error: msg,
			Data:  profileData{Name: req.Name, Email: req.Email, IsAdmin: sess.User.IsAdmin},
		})
	}
	if err := c.ShouldBind(&req); err != nil {
		fail(validation.Message(err))
		return
	}

	u := entity.User{Name: req.Name, Email: req.Email, Password: req.Password}
	state, err := h.Users.UpdateProfile(c.Request.Context(), st, sess, u, req.ConfirmPassword)
	if errors.Is(err, application.ErrPasswordMismatch) {
		fail(err.Error())
		return
	}
	if !state.Success {
		fail(state.Error)
		return
	}
	h.Users.ResetUpdateProfile(st)
	info := sess.User
	h.render(c, http.StatusOK, "profile", Page{
		Title:   "Profile",
		User:    &info,
		Message: "Profile updated",
		Data:    profileData{Name: info.Name, Email: info.Email, IsAdmin: info.IsAdmin},
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/discount-catalog/internal/application"
	"github.com/oksasatya/discount-catalog/internal/domain/catalog"
	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	"github.com/oksasatya/discount-catalog/internal/interface/middleware"
	"github.com/oksasatya/discount-catalog/pkg/helpers"
	"github.com/oksasatya/discount-catalog/pkg/validation"
)

type AdminUserHandler struct {
	Base
	Users *application.UserService
}

func NewAdminUserHandler(base Base, users *application.UserService) *AdminUserHandler {
	return &AdminUserHandler{Base: base, Users: users}
}

type userRequest struct {
	Name    string `form:"name" binding:"required"`
	Email   string `form:"email" binding:"required,email"`
	IsAdmin bool   `form:"isAdmin"`
}

type deleteUserRequest struct {
	ConfirmText string `form:"confirmText"`
}

type userListData struct {
	Users         []entity.User
	Term          string
	CurrentUserID string
	ConfirmPhrase string
}

type userEditData struct {
	User entity.User
}

// List GET /admin/userlist
func (h *AdminUserHandler) List(c *gin.Context) {
	st := middleware.CurrentStore(c)
	p := Page{Title: "Users"}

	del := st.UserDelete.State()
	switch {
	case del.Error != "":
		p.Error = del.Error
	case del.Success:
		p.Message = "User deleted"
	}
	st.UserDelete.Reset()

	h.list(c, http.StatusOK, p)
}

func (h *AdminUserHandler) list(c *gin.Context, status int, p Page) {
	st := middleware.CurrentStore(c)
	state := h.Users.List(c.Request.Context(), st, token(c))
	if state.Error != "" {
		p.Error = state.Error
	}
	term := c.Query("q")
	p.Data = userListData{
		Users:         catalog.FilterUsers(state.Data, term),
		Term:          term,
		CurrentUserID: c.GetString(middleware.CtxUserIDKey),
		ConfirmPhrase: h.Users.ConfirmPhrase,
	}
	h.render(c, status, "admin_users", p)
}

// Delete POST /admin/user/:id/delete. A wrong confirmation re-renders the list
// without calling the API.
func (h *AdminUserHandler) Delete(c *gin.Context) {
	st := middleware.CurrentStore(c)
	var req deleteUserRequest
	if err := c.ShouldBind(&req); err != nil {
		helpers.LogError(h.Logger, "unreadable delete form", err, nil)
		h.list(c, http.StatusUnprocessableEntity, Page{Title: "Users", Error: application.ErrConfirmMismatch.Error()})
		return
	}

	_, err := h.Users.Delete(c.Request.Context(), st, token(c), c.GetString(middleware.CtxUserIDKey), c.Param("id"), req.ConfirmText)
	if err != nil {
		h.list(c, http.StatusUnprocessableEntity, Page{Title: "Users", Error: err.Error()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/userlist")
}

// EditPage GET /admin/user/:id/edit
func (h *AdminUserHandler) EditPage(c *gin.Context) {
	st := middleware.CurrentStore(c)
	h.Users.ResetUpdate(st)
	state := h.Users.Details(c.Request.Context(), st, token(c), c.Param("id"))
	h.render(c, http.StatusOK, "user_edit", Page{Title: "Edit user", Error: state.Error, Data: userEditData{User: state.Data}})
}

// Edit POST /admin/user/:id/edit. Success stays on the page with a message.
func (h *AdminUserHandler) Edit(c *gin.Context) {
	st := middleware.CurrentStore(c)
	var req userRequest
	bindErr := c.ShouldBind(&req)
	u := entity.User{ID: c.Param("id"), Name: req.Name, Email: req.Email, IsAdmin: req.IsAdmin}
	if bindErr != nil {
		h.render(c, http.StatusUnprocessableEntity, "user_edit", Page{Title: "Edit user", Error: validation.Message(bindErr), Data: userEditData{User: u}})
		return
	}

	state := h.Users.Update(c.Request.Context(), st, token(c), u)
	if !state.Success {
		h.render(c, http.StatusUnprocessableEntity, "user_edit", Page{Title: "Edit user", Error: state.Error, Data: userEditData{User: u}})
		return
	}
	h.Users.ResetUpdate(st)
	updated := state.Data
	if updated.ID == "" {
		updated.ID = u.ID
	}
	h.render(c, http.StatusOK, "user_edit", Page{Title: "Edit user", Message: "User updated", Data: userEditData{User: updated}})
}

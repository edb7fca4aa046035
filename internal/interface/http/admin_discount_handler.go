package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/discount-catalog/internal/application"
	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	"github.com/oksasatya/discount-catalog/internal/interface/middleware"
	"github.com/oksasatya/discount-catalog/pkg/validation"
)

// ImageUploader stores an uploaded discount image and returns its URL.
type ImageUploader interface {
	Enabled() bool
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}

type AdminDiscountHandler struct {
	Base
	Discounts *application.DiscountService
	Images    ImageUploader
}

func NewAdminDiscountHandler(base Base, discounts *application.DiscountService, images ImageUploader) *AdminDiscountHandler {
	return &AdminDiscountHandler{Base: base, Discounts: discounts, Images: images}
}

type discountRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required"`
	Code        string `form:"code" binding:"required"`
	PercentOff  int    `form:"percentOff" binding:"required,percent"`
	ValidUntil  string `form:"validUntil" binding:"required,date"`
	Category    string `form:"category" binding:"required"`
	ImageURL    string `form:"imageUrl" binding:"omitempty,url"`
}

func (r discountRequest) toEntity() entity.Discount {
	return entity.Discount{
		Title:       r.Title,
		Description: r.Description,
		Code:        r.Code,
		PercentOff:  r.PercentOff,
		ValidUntil:  r.ValidUntil,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
	}
}

type discountListData struct {
	Discounts []entity.Discount
}

type discountFormData struct {
	Action        string
	Heading       string
	Submit        string
	Discount      entity.Discount
	UploadEnabled bool
	Ready         bool
}

func (h *AdminDiscountHandler) uploadEnabled() bool {
	return h.Images != nil && h.Images.Enabled()
}

func (h *AdminDiscountHandler) createForm(d entity.Discount) discountFormData {
	return discountFormData{
		Action:        "/admin/discount/create",
		Heading:       "Create discount",
		Submit:        "Create",
		Discount:      d,
		UploadEnabled: h.uploadEnabled(),
		Ready:         true,
	}
}

func (h *AdminDiscountHandler) editForm(d entity.Discount, ready bool) discountFormData {
	return discountFormData{
		Action:        "/admin/discount/" + d.ID + "/edit",
		Heading:       "Edit discount",
		Submit:        "Update",
		Discount:      d,
		UploadEnabled: h.uploadEnabled(),
		Ready:         ready,
	}
}

// List GET /admin/discounts. A pending delete result is shown once, then reset.
func (h *AdminDiscountHandler) List(c *gin.Context) {
	st := middleware.CurrentStore(c)
	p := Page{Title: "Discounts"}

	del := st.DiscountDelete.State()
	switch {
	case del.Error != "":
		p.Error = del.Error
	case del.Success:
		p.Message = "Discount deleted"
	}
	h.Discounts.ResetDelete(st)

	state := h.Discounts.List(c.Request.Context(), st, token(c))
	if state.Error != "" {
		p.Error = state.Error
	}
	p.Data = discountListData{Discounts: state.Data}
	h.render(c, http.StatusOK, "admin_discounts", p)
}

// Delete POST /admin/discount/:id/delete
func (h *AdminDiscountHandler) Delete(c *gin.Context) {
	st := middleware.CurrentStore(c)
	h.Discounts.Delete(c.Request.Context(), st, token(c), c.Param("id"))
	c.Redirect(http.StatusSeeOther, "/admin/discounts")
}

// CreatePage GET /admin/discount/create
func (h *AdminDiscountHandler) CreatePage(c *gin.Context) {
	h.Discounts.ResetCreate(middleware.CurrentStore(c))
	h.render(c, http.StatusOK, "discount_form", Page{Title: "Create discount", Data: h.createForm(entity.Discount{})})
}

// Create POST /admin/discount/create
func (h *AdminDiscountHandler) Create(c *gin.Context) {
	st := middleware.CurrentStore(c)
	var req discountRequest
	if err := c.ShouldBind(&req); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "discount_form", Page{Title: "Create discount", Error: validation.Message(err), Data: h.createForm(req.toEntity())})
		return
	}
	d := req.toEntity()
	if err := h.attachImage(c, &d); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "discount_form", Page{Title: "Create discount", Error: application.ErrorMessage(err), Data: h.createForm(d)})
		return
	}

	state := h.Discounts.Create(c.Request.Context(), st, token(c), d)
	if !state.Success {
		h.render(c, http.StatusUnprocessableEntity, "discount_form", Page{Title: "Create discount", Error: state.Error, Data: h.createForm(d)})
		return
	}
	h.Discounts.ResetCreate(st)
	c.Redirect(http.StatusSeeOther, "/admin/discounts")
}

// EditPage GET /admin/discount/:id/edit
func (h *AdminDiscountHandler) EditPage(c *gin.Context) {
	st := middleware.CurrentStore(c)
	h.Discounts.ResetUpdate(st)
	state := h.Discounts.Details(c.Request.Context(), st, token(c), c.Param("id"))
	d := state.Data
	d.ID = c.Param("id")
	h.render(c, http.StatusOK, "discount_form", Page{Title: "Edit discount", Error: state.Error, Data: h.editForm(d, state.Success)})
}

// Edit POST /admin/discount/:id/edit
func (h *AdminDiscountHandler) Edit(c *gin.Context) {
	st := middleware.CurrentStore(c)
	var req discountRequest
	bindErr := c.ShouldBind(&req)
	d := req.toEntity()
	d.ID = c.Param("id")
	if bindErr != nil {
		h.render(c, http.StatusUnprocessableEntity, "discount_form", Page{Title: "Edit discount", Error: validation.Message(bindErr), Data: h.editForm(d, true)})
		return
	}
	if err := h.attachImage(c, &d); err != nil {
		h.render(c, http.StatusUnprocessableEntity, "discount_form", Page{Title: "Edit discount", Error: application.ErrorMessage(err), Data: h.editForm(d, true)})
		return
	}

	state := h.Discounts.Update(c.Request.Context(), st, token(c), d)
	if !state.Success {
		h.render(c, http.StatusUnprocessableEntity, "discount_form", Page{Title: "Edit discount", Error: state.Error, Data: h.editForm(d, true)})
		return
	}
	h.Discounts.ResetUpdate(st)
	c.Redirect(http.StatusSeeOther, "/admin/discounts")
}

// attachImage uploads the optional "image" file and points d at it.
func (h *AdminDiscountHandler) attachImage(c *gin.Context, d *entity.Discount) error {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	if err != nil {
		return err
	}
	if !h.uploadEnabled() {
		return application.ErrUploadDisabled
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	url, err := h.Images.Upload(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		return err
	}
	d.ImageURL = url
	return nil
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/discount-catalog/internal/application"
	"github.com/oksasatya/discount-catalog/internal/domain/catalog"
	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	"github.com/oksasatya/discount-catalog/internal/interface/middleware"
	"github.com/oksasatya/discount-catalog/pkg/response"
	"github.com/oksasatya/discount-catalog/pkg/validation"
)

type CatalogHandler struct {
	Base
	Discounts *application.DiscountService
	Share     *application.ShareService
	Now       func() time.Time
}

func NewCatalogHandler(base Base, discounts *application.DiscountService, share *application.ShareService) *CatalogHandler {
	return &CatalogHandler{Base: base, Discounts: discounts, Share: share, Now: time.Now}
}

type homeData struct {
	Discounts  []entity.Discount
	Categories []string
	Query      catalog.Query
	Total      int
}

type detailsData struct {
	Discount      entity.Discount
	DaysRemaining int
	ExpiringSoon  bool
	Expired       bool
	ShareEnabled  bool
	ShareEmail    string
}

type shareRequest struct {
	Email string `form:"email" binding:"required,email"`
}

func queryFrom(c *gin.Context) catalog.Query {
	return catalog.Query{
		Category: c.Query("category"),
		Term:     c.Query("q"),
		Sort:     catalog.ParseSortKey(c.Query("sort")),
	}
}

// Home GET /
func (h *CatalogHandler) Home(c *gin.Context) {
	st := middleware.CurrentStore(c)
	state := h.Discounts.List(c.Request.Context(), st, token(c))
	q := queryFrom(c)
	list := catalog.Derive(state.Data, q)

	h.render(c, http.StatusOK, "home", Page{
		Title: "Catalog",
		Error: state.Error,
		Data: homeData{
			Discounts:  list,
			Categories: catalog.Categories(state.Data),
			Query:      q,
			Total:      len(list),
		},
	})
}

// Catalog GET /api/catalog returns the derived list for live search.
func (h *CatalogHandler) Catalog(c *gin.Context) {
	st := middleware.CurrentStore(c)
	state := h.Discounts.List(c.Request.Context(), st, token(c))
	if state.Error != "" {
		response.Send(c, response.Error[any](c, http.StatusBadGateway, state.Error, nil))
		return
	}
	list := catalog.Derive(state.Data, queryFrom(c))
	meta := gin.H{
		"total":      len(list),
		"categories": catalog.Categories(state.Data),
	}

	// the tag covers everything the client caches, meta included
	body, err := json.Marshal(gin.H{"data": list, "meta": meta})
	if err != nil {
		response.Send(c, response.Error[any](c, http.StatusInternalServerError, "encode failed", nil))
		return
	}
	etag := `"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
	c.Header("ETag", etag)
	c.Header("Cache-Control", "private, no-cache")
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	response.Send(c, response.Success(c, http.StatusOK, list, "ok", meta))
}

func (h *CatalogHandler) details(c *gin.Context, status int, d entity.Discount, p Page) {
	e := catalog.ExpiryAt(d.ValidUntil, h.Now())
	data, _ := p.Data.(detailsData)
	data.Discount = d
	data.DaysRemaining = e.DaysRemaining
	data.ExpiringSoon = e.ExpiringSoon
	data.Expired = e.Expired
	data.ShareEnabled = h.Share.Enabled()
	p.Data = data
	if p.Title == "" {
		p.Title = d.Title
	}
	h.render(c, status, "discount", p)
}

// Details GET /discount/:id
func (h *CatalogHandler) Details(c *gin.Context) {
	st := middleware.CurrentStore(c)
	state := h.Discounts.Details(c.Request.Context(), st, token(c), c.Param("id"))
	p := Page{Title: "Discount", Error: state.Error}
	if c.Query("shared") == "1" && state.Error == "" {
		p.Message = "Discount shared"
	}
	h.details(c, http.StatusOK, state.Data, p)
}

// ShareByEmail POST /discount/:id/share
func (h *CatalogHandler) ShareByEmail(c *gin.Context) {
	st := middleware.CurrentStore(c)
	id := c.Param("id")
	state := h.Discounts.Details(c.Request.Context(), st, token(c), id)
	if state.Error != "" {
		h.details(c, http.StatusOK, state.Data, Page{Title: "Discount", Error: state.Error})
		return
	}

	var req shareRequest
	if err := c.ShouldBind(&req); err != nil {
		h.details(c, http.StatusUnprocessableEntity, state.Data, Page{Error: validation.Message(err), Data: detailsData{ShareEmail: req.Email}})
		return
	}
	sess := middleware.CurrentSession(c)
	if err := h.Share.Share(c.Request.Context(), sess.User, req.Email, state.Data); err != nil {
		h.details(c, http.StatusUnprocessableEntity, state.Data, Page{Error: application.ErrorMessage(err), Data: detailsData{ShareEmail: req.Email}})
		return
	}
	c.Redirect(http.StatusSeeOther, "/discount/"+id+"?shared=1")
}

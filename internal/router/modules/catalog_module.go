package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/discount-catalog/internal/interface/http"
	"github.com/oksasatya/discount-catalog/internal/interface/middleware"
)

// CatalogModule serves the catalog, discount details, sharing and the live-search endpoint.
type CatalogModule struct {
	Handler *handlers.CatalogHandler
	Redis   *redis.Client
}

func NewCatalogModule(h *handlers.CatalogHandler, rdb *redis.Client) *CatalogModule {
	return &CatalogModule{Handler: h, Redis: rdb}
}

func (m *CatalogModule) Register(web, api *gin.RouterGroup) {
	auth := web.Group("/")
	auth.Use(middleware.RequireAuth())
	{
		auth.GET("/", m.Handler.Home)
		auth.GET("/discount/:id", m.Handler.Details)
		auth.POST("/discount/:id/share",
			middleware.RateLimit(m.Redis, 10, time.Hour, middleware.KeyByUserID(), nil),
			m.Handler.ShareByEmail)
	}

	authAPI := api.Group("/")
	authAPI.Use(middleware.RequireAPIAuth())
	authAPI.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		authAPI.GET("/catalog", m.Handler.Catalog)
	}
}

package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/discount-catalog/internal/interface/http"
	"github.com/oksasatya/discount-catalog/internal/interface/middleware"
)

type ProfileModule struct {
	Handler *handlers.ProfileHandler
}

func NewProfileModule(h *handlers.ProfileHandler) *ProfileModule {
	return &ProfileModule{Handler: h}
}

func (m *ProfileModule) Register(web, _ *gin.RouterGroup) {
	auth := web.Group("/profile")
	auth.Use(middleware.RequireAuth())
	{
		auth.GET("", m.Handler.Show)
		auth.POST("", m.Handler.Update)
	}
}

package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/discount-catalog/internal/interface/http"
	"github.com/oksasatya/discount-catalog/internal/interface/middleware"
)

// AdminModule serves the discount and user management screens.
type AdminModule struct {
	Discounts *handlers.AdminDiscountHandler
	Users     *handlers.AdminUserHandler
}

func NewAdminModule(d *handlers.AdminDiscountHandler, u *handlers.AdminUserHandler) *AdminModule {
	return &AdminModule{Discounts: d, Users: u}
}

func (m *AdminModule) Register(web, _ *gin.RouterGroup) {
	admin := web.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/discounts", m.Discounts.List)
		admin.GET("/discount/create", m.Discounts.CreatePage)
		admin.POST("/discount/create", m.Discounts.Create)
		admin.POST("/discount/:id/delete", m.Discounts.Delete)
		admin.GET("/discount/:id/edit", m.Discounts.EditPage)
		admin.POST("/discount/:id/edit", m.Discounts.Edit)

		admin.GET("/userlist", m.Users.List)
		admin.POST("/user/:id/delete", m.Users.Delete)
		admin.GET("/user/:id/edit", m.Users.EditPage)
		admin.POST("/user/:id/edit", m.Users.Edit)
	}
}

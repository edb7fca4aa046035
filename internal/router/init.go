package router

import (
	"github.com/oksasatya/discount-catalog/internal/application"
	"github.com/oksasatya/discount-catalog/internal/container"
	"github.com/oksasatya/discount-catalog/internal/infrastructure/restapi"
	handlers "github.com/oksasatya/discount-catalog/internal/interface/http"
	"github.com/oksasatya/discount-catalog/internal/interface/middleware"
	"github.com/oksasatya/discount-catalog/internal/router/modules"
)

// Services are the action creators shared by the handlers.
type Services struct {
	Discounts *application.DiscountService
	Users     *application.UserService
	Share     *application.ShareService
	Images    *application.ImageService
}

// BuildServices wires the application layer from the container.
func BuildServices(c *container.Container) Services {
	cfg := c.Config
	return Services{
		Discounts: application.NewDiscountService(restapi.NewDiscountRepository(c.API), c.Logger),
		Users: application.NewUserService(
			restapi.NewUserRepository(c.API),
			c.Sessions,
			c.Stores,
			cfg.SessionTTL,
			cfg.DeleteConfirmPhrase,
			c.Logger,
		),
		Share:  application.NewShareService(c.Publisher(), cfg, c.Logger),
		Images: application.NewImageService(c.GCS, cfg.GCSBucket, c.Logger),
	}
}

// InitModules installs the session middleware and every feature module.
// This function should be called once during application startup.
func InitModules(r *Registry, c *container.Container, svc Services) {
	r.Use(middleware.Session(c.JWT, c.Sessions, c.Stores, c.Cookies, c.Logger))

	base := handlers.Base{View: c.View, Logger: c.Logger}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(base, svc.Users, c.JWT, c.Cookies), c.Redis))
	r.Add(modules.NewCatalogModule(handlers.NewCatalogHandler(base, svc.Discounts, svc.Share), c.Redis))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(base, svc.Users)))
	r.Add(modules.NewAdminModule(
		handlers.NewAdminDiscountHandler(base, svc.Discounts, svc.Images),
		handlers.NewAdminUserHandler(base, svc.Users),
	))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}

	r.Engine.NoRoute(base.NotFound)
}

package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that registers its screens on web and
// its JSON endpoints on api (mounted at /api).
type Module interface {
	Register(web, api *gin.RouterGroup)
}

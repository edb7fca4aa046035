package router

import "github.com/gin-gonic/gin"

type Registry struct {
	Engine      *gin.Engine
	Web         *gin.RouterGroup
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	apiMW       []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, Web: &engine.RouterGroup, API: engine.Group("/api")}
}

// Use adds middleware in front of every route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

// UseAPI adds middleware in front of /api routes only.
func (r *Registry) UseAPI(mw ...gin.HandlerFunc) {
	r.apiMW = append(r.apiMW, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.Engine.Use(r.middlewares...)
	}
	if len(r.apiMW) > 0 {
		r.API.Use(r.apiMW...)
	}
	for _, m := range r.modules {
		m.Register(r.Web, r.API)
	}
}

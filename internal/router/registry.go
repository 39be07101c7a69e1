package router

import "github.com/gin-gonic/gin"

// Module is a feature module that registers its routes on a RouterGroup.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry collects modules and mounts them all under /api. Dependencies are
// handed to each module at construction; the registry holds no singletons.
type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.API)
	}
}

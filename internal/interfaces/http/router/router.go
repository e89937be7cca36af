package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RegistrarFunc adapts a plain function to the RouteRegistrar interface
type RegistrarFunc func(rg *gin.RouterGroup)

// RegisterRoutes implements RouteRegistrar
func (f RegistrarFunc) RegisterRoutes(rg *gin.RouterGroup) {
	f(rg)
}

// Router manages HTTP route registration. Registrars are split into a
// public set and a protected set; the protected set runs behind the
// middleware configured with WithProtectedMiddleware.
type Router struct {
	engine      *gin.Engine
	apiVersion  string
	public      []RouteRegistrar
	protected   []RouteRegistrar
	protectedMW []gin.HandlerFunc
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithProtectedMiddleware sets the middleware chain applied to protected routes
func WithProtectedMiddleware(middleware ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.protectedMW = middleware
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		public:     make([]RouteRegistrar, 0),
		protected:  make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar to the public route set
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.public = append(r.public, registrar)
	return r
}

// RegisterProtected adds a RouteRegistrar behind the protected middleware
func (r *Router) RegisterProtected(registrar RouteRegistrar) *Router {
	r.protected = append(r.protected, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.public {
		registrar.RegisterRoutes(api)
	}

	guarded := api.Group("")
	if len(r.protectedMW) > 0 {
		guarded.Use(r.protectedMW...)
	}
	for _, registrar := range r.protected {
		registrar.RegisterRoutes(guarded)
	}
}

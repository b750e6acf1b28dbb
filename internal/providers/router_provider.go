package providers

import (
	"net/http"
	"scopewatch/internal/structures"

	"github.com/go-chi/chi/v5"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	GetRoutes() []structures.Route
	Mount(r chi.Router)
}

type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Method:  http.MethodGet,
		Url:     url,
		Handler: handler,
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

// Mount registers every route on r. chi answers 405 for a known path with
// the wrong method.
func (rp *RouterProvider) Mount(r chi.Router) {
	for _, route := range rp.GetRoutes() {
		r.Method(route.Method, route.Url, route.Handler)
	}
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

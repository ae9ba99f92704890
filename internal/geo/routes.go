package geo

import (
	"github.com/go-chi/chi/v5"

	"georef/internal/registry"
)

// APIPrefix is the path every geographic resource is mounted under.
const APIPrefix = "/api/v1"

// Mounter is implemented by every controller.
type Mounter interface {
	Register(r chi.Router)
}

var mounts = []struct {
	path  string
	token registry.Token
}{
	{"/countries", TokenCountryController},
	{"/departments", TokenDepartmentController},
	{"/cities", TokenCityController},
	{"/neighborhoods", TokenNeighborhoodController},
}

// Routes resolves every controller and mounts it under APIPrefix. All
// singletons are built here, so a wiring fault is reported before the server
// accepts traffic and nothing is mounted.
func Routes(r registry.Resolver, router chi.Router) error {
	controllers := make([]Mounter, len(mounts))
	for i, m := range mounts {
		ctrl, err := registry.Resolve[Mounter](r, m.token)
		if err != nil {
			return err
		}
		controllers[i] = ctrl
	}

	router.Route(APIPrefix, func(api chi.Router) {
		for i, m := range mounts {
			api.Route(m.path, controllers[i].Register)
		}
	})
	return nil
}

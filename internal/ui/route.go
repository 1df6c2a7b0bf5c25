package ui

import "sort"

// Route binds a path to the view shown there.
type Route struct {
	Path     string
	Template string
	New      func(state *UiState) View
}

// Router maps paths to routes.
type Router struct {
	routes map[string]Route
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{routes: make(map[string]Route)}
}

// When registers route under path, replacing any earlier registration.
func (r *Router) When(path string, route Route) *Router {
	route.Path = path
	r.routes[path] = route
	return r
}

// Lookup returns the route registered for path.
func (r *Router) Lookup(path string) (Route, bool) {
	route, ok := r.routes[path]
	return route, ok
}

// Paths returns every registered path, sorted.
func (r *Router) Paths() []string {
	out := make([]string, 0, len(r.routes))
	for p := range r.routes {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

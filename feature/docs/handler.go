package docs

import (
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Endpoint is one registered route.
type Endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Catalogue describes the API to clients without Swagger.
type Catalogue struct {
	Name      string     `json:"name"`
	Version   string     `json:"version"`
	Swagger   string     `json:"swagger"`
	Sources   []string   `json:"sources"`
	Endpoints []Endpoint `json:"endpoints"`
}

// Handler serves the endpoint catalogue.
type Handler struct {
	name    string
	version string
	sources []string
}

// NewHandler creates a new HTTP handler.
func NewHandler(name, version string, sources []string) *Handler {
	return &Handler{name: name, version: version, sources: sources}
}

// RegisterRoutes registers the catalogue route.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/api/v1/docs", h.HandleCatalogue)
}

// HandleCatalogue lists every route registered on the app.
// @Summary Endpoint Catalogue
// @Description Lists the panel sources and every registered route.
// @Tags docs
// @Produce json
// @Success 200 {object} docs.Catalogue "Catalogue"
// @Router /api/v1/docs [get]
func (h *Handler) HandleCatalogue(c *fiber.Ctx) error {
	return c.JSON(Catalogue{
		Name:      h.name,
		Version:   h.version,
		Swagger:   "/swagger/index.html",
		Sources:   h.sources,
		Endpoints: endpoints(c.App().GetRoutes(true)),
	})
}

// endpoints drops the implicit HEAD routes and orders by path, then method.
func endpoints(routes []fiber.Route) []Endpoint {
	seen := make(map[Endpoint]struct{}, len(routes))
	out := make([]Endpoint, 0, len(routes))
	for _, r := range routes {
		if r.Method == fiber.MethodHead || strings.HasSuffix(r.Path, "*") {
			continue
		}
		e := Endpoint{Method: r.Method, Path: r.Path}
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

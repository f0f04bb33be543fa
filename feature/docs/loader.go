package docs

import "github.com/gofiber/fiber/v2"

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the catalogue feature.
func NewFeature(name, version string, sources []string) *Feature {
	return &Feature{handler: NewHandler(name, version, sources)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "docs"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

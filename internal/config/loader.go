package config

import "github.com/occ2swift/occ/internal/transform"

// LoadTransformRegistry builds the invocation-transformer registry a
// driver run should use: transform.Builtins() first (so a project's own
// TOML additions can only extend, never shadow, the built-in table's
// first-match-wins order), followed by c.TransformRegistry's contents
// if set.
func (c *Config) LoadTransformRegistry() (*transform.Registry, error) {
	r := transform.NewRegistry()
	for _, t := range transform.Builtins() {
		r.Register(t)
	}
	if c.TransformRegistry == "" {
		return r, nil
	}
	if err := r.Load(c.TransformRegistry); err != nil {
		return nil, err
	}
	return r, nil
}

// Package config holds the driver's own settings, generalizing the
// teacher's internal/config (a flat table of interpreter constants) into
// a real YAML-backed driver config.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the driver's top-level settings document, loaded once per
// run from the file named by the driver's --config flag (or Default() if
// none is given).
type Config struct {
	// Nullability records the default optionality setting for a
	// declaration outside an NS_ASSUME_NONNULL region that carries no
	// explicit _Nullable/_Nonnull qualifier, as reported by
	// ImplicitlyNonnull. Intention collection does not read it, so it does
	// not change §4.1's Optional/ImplicitUnwrappedOptional split.
	Nullability NullabilityConfig `yaml:"nullability"`

	// OutputExtension maps an input file's extension to the extension
	// its emitted Swift file is written with. ".m" and ".h" both
	// default to ".swift" when absent from this map.
	OutputExtension map[string]string `yaml:"output_extensions"`

	// MaxFixpointIterations bounds internal/passes.Pipeline's per-body
	// iteration count (§5). Zero means "use the pipeline's own default."
	MaxFixpointIterations int `yaml:"max_fixpoint_iterations"`

	// TransformRegistry, if set, is a path to a TOML file of additional
	// invocation transformers loaded on top of transform.Builtins().
	TransformRegistry string `yaml:"transform_registry"`
}

// NullabilityConfig records the default Swift optionality setting for an
// unannotated, unqualified pointer declaration (see Config.Nullability).
type NullabilityConfig struct {
	// Default is "optional" or "nonnull". Objective-C's own historical
	// default (no annotation means nullable) makes "optional" the
	// out-of-the-box choice; a project fully inside NS_ASSUME_NONNULL
	// regions can flip this to "nonnull" to match its own house style.
	Default string `yaml:"default"`
}

const DefaultMaxFixpointIterations = 20

// DefaultOutputExtension is used for a source extension absent from the
// config's OutputExtension map.
const DefaultOutputExtension = ".swift"

// Default returns the driver's out-of-the-box configuration, used when
// no config file is given.
func Default() *Config {
	return &Config{
		Nullability:           NullabilityConfig{Default: "optional"},
		OutputExtension:       map[string]string{".m": ".swift", ".h": ".swift"},
		MaxFixpointIterations: DefaultMaxFixpointIterations,
	}
}

// Load reads and parses a YAML driver config from path, filling in any
// field the file leaves zero with Default()'s value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Nullability.Default == "" {
		c.Nullability.Default = "optional"
	}
	if c.OutputExtension == nil {
		c.OutputExtension = map[string]string{}
	}
	if _, ok := c.OutputExtension[".m"]; !ok {
		c.OutputExtension[".m"] = DefaultOutputExtension
	}
	if _, ok := c.OutputExtension[".h"]; !ok {
		c.OutputExtension[".h"] = DefaultOutputExtension
	}
	if c.MaxFixpointIterations == 0 {
		c.MaxFixpointIterations = DefaultMaxFixpointIterations
	}
}

// ExtensionFor returns the output extension for a source file extension
// (including the leading dot), falling back to DefaultOutputExtension.
func (c *Config) ExtensionFor(sourceExt string) string {
	if ext, ok := c.OutputExtension[sourceExt]; ok {
		return ext
	}
	return DefaultOutputExtension
}

// ImplicitlyNonnull reports whether an unannotated pointer declaration
// should be treated as non-optional by default, per Nullability.Default.
func (c *Config) ImplicitlyNonnull() bool {
	return c.Nullability.Default == "nonnull"
}

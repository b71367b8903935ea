package diagnostics

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Suppression tells the post-map filter how a diagnostic code is handled.
// Codes absent from the table always pass; the lists are closed and
// allow-by-default.
type Suppression int

const (
	// SuppressAlways drops the code unconditionally.
	SuppressAlways Suppression = iota + 1
	// SuppressInPassthrough drops the code only when it starts inside an
	// opaque pass-through region.
	SuppressInPassthrough
)

// Config drives the filter pipeline and the enhancer.
type Config struct {
	// Source tags emitted diagnostics for the editor.
	Source string
	// Suppressions maps engine codes to their filtering rule.
	Suppressions map[int]Suppression
	// Enhancements maps engine codes to guidance text appended to the message.
	Enhancements map[int]string
}

// Guidance text appended by the enhancer for known-confusing engine messages.
const (
	componentTypingGuidance   = " The component likely misses a props type definition; declare `interface Props` or `type Props` in its setup block so the checker can validate its usage."
	untypedAttributesGuidance = " The component is untyped, so attributes on it cannot be validated; add a props type to the component to restore attribute checking."
	declarePlacementGuidance  = " Declarations in the setup block run in module scope; move `declare` statements into a dedicated declaration file instead."
)

// DefaultConfig returns the built-in suppression and enhancement tables.
func DefaultConfig() *Config {
	return &Config{
		Source: "htsx",
		Suppressions: map[int]Suppression{
			17001: SuppressAlways, // duplicate JSX attribute; the source language allows repeats
			2792:  SuppressAlways, // jsx-runtime module resolution
			7016:  SuppressAlways, // jsx-runtime declaration file
			2657:  SuppressAlways, // JSX expressions must have one parent; virtual view is multi-root
			17004: SuppressAlways, // JSX not allowed without flag
			6142:  SuppressAlways, // module resolved but jsx is not set
			2691:  SuppressAlways, // import path may not end with reserved extension
			1005:  SuppressAlways, // token expected; attribute-spread rewriting artifact
			2732:  SuppressAlways, // JSON module resolution artifact of the virtual path
			1382:  SuppressInPassthrough, // unexpected ">" token; prose legitimately contains it
		},
		Enhancements: map[int]string{
			2786: componentTypingGuidance,
			2607: untypedAttributesGuidance,
			1046: declarePlacementGuidance,
		},
	}
}

// configFile is the YAML overlay shape for the suppression tables.
type configFile struct {
	Source                string `yaml:"source"`
	Suppress              []int  `yaml:"suppress"`
	SuppressInPassthrough []int  `yaml:"suppressInPassthrough"`
}

// LoadConfig overlays YAML data on top of the defaults. Listed codes replace
// the built-in suppression table; enhancements are not overridable.
func LoadConfig(data []byte) (*Config, error) {
	file := &configFile{}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("failed to parse diagnostics config: %w", err)
	}
	config := DefaultConfig()
	if file.Source != "" {
		config.Source = file.Source
	}
	if len(file.Suppress) > 0 || len(file.SuppressInPassthrough) > 0 {
		config.Suppressions = map[int]Suppression{}
		for _, code := range file.Suppress {
			config.Suppressions[code] = SuppressAlways
		}
		for _, code := range file.SuppressInPassthrough {
			config.Suppressions[code] = SuppressInPassthrough
		}
	}
	return config, nil
}

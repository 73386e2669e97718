// Package naftah is Naftah's embedding API: the surface a host program
// links against to parse-free-evaluate an already-built AST, configure
// display tokens and recursion limits, and register host-reflected
// functions.
//
// Grounded on github.com/cwbudde/go-dws cmd/dwscript's Options-struct-plus-
// constructor shape, generalized to load from YAML per SPEC_FULL.md §10.
package naftah

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/naftah-lang/naftah/internal/context"
	"github.com/naftah-lang/naftah/internal/value"
)

// Options configures an Interpreter (SPEC_FULL.md §10's "Configuration").
type Options struct {
	// NoneToken and NaNToken override the default rendering of None/NaN in
	// print output and string interpolation (spec.md §4.6 "Formatting").
	NoneToken string `yaml:"none_token"`
	NaNToken  string `yaml:"nan_token"`

	// MaxCallDepth bounds recursion (spec.md §4.3's call stack); 0 selects
	// context.DefaultMaxDepth.
	MaxCallDepth int `yaml:"max_call_depth"`

	// Aliases makes built-in function surface names reachable under extra
	// names (spec.md §6: "may be aliased to a localized name"). Each key is
	// an alias and its value the canonical name; the canonical name stays
	// registered.
	Aliases map[string]string `yaml:"aliases"`
}

// DefaultOptions returns the zero-configuration defaults.
func DefaultOptions() Options {
	return Options{
		NoneToken:    value.DefaultTokens.None,
		NaNToken:     value.DefaultTokens.NaN,
		MaxCallDepth: context.DefaultMaxDepth,
	}
}

// LoadOptions reads and unmarshals a YAML options file. A missing field
// keeps its DefaultOptions value.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, err
	}
	if opts.NoneToken == "" {
		opts.NoneToken = value.DefaultTokens.None
	}
	if opts.NaNToken == "" {
		opts.NaNToken = value.DefaultTokens.NaN
	}
	if opts.MaxCallDepth <= 0 {
		opts.MaxCallDepth = context.DefaultMaxDepth
	}
	return opts, nil
}

func (o Options) tokens() value.Tokens {
	return value.Tokens{None: o.NoneToken, NaN: o.NaNToken}
}

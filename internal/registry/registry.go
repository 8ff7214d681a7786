// Package registry wires every strategy implementation into the
// strategy.Registry the CLI's `-g` flag and the results table select
// from by name. It is the one place allowed to import every strategy
// package, so the strategies themselves stay free of cross-imports.
package registry

import (
	"github.com/vctt94/hanasim/internal/strategy"
	"github.com/vctt94/hanasim/internal/strategy/cheat"
	"github.com/vctt94/hanasim/internal/strategy/info"
	"github.com/vctt94/hanasim/internal/strategy/random"
)

// Default returns the registry of every built-in strategy: "random",
// "cheat", and "info".
func Default() strategy.Registry {
	return strategy.Registry{
		"random": func() strategy.Config { return random.DefaultConfig() },
		"cheat":  func() strategy.Config { return cheat.Config{} },
		"info":   func() strategy.Config { return info.Config{} },
	}
}

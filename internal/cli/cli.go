// Package cli holds the setup shared by the command line tools.
package cli

import (
	"fmt"

	"github.com/faanross/stegokey/internal/config"
	"github.com/faanross/stegokey/internal/engine"
	"github.com/faanross/stegokey/internal/keyx"
	"github.com/faanross/stegokey/internal/logging"
	"github.com/faanross/stegokey/internal/scrypto"
)

// Env is everything a tool needs after flag parsing
type Env struct {
	Config *config.Config
	Logger logging.Logger
	Group  keyx.Group
	Engine *engine.Engine
}

// Setup loads the config file, builds the logger and the engine.
// verbose forces debug logging; compress overrides the config when non-nil.
func Setup(configPath string, verbose bool, compress *bool) (*Env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if compress != nil {
		cfg.Compress = *compress
	}

	logger, err := logging.NewCLI(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	group, err := cfg.KeyGroup()
	if err != nil {
		return nil, err
	}

	eng := engine.New(
		engine.WithGroup(group),
		engine.WithLogger(logger),
		engine.WithCompression(cfg.Compress),
		engine.WithSweepWorkers(cfg.SweepWorkers),
	)

	return &Env{Config: cfg, Logger: logger, Group: group, Engine: eng}, nil
}

// KeyPair turns the -private/-public flags into a pair. A private key of 0
// prompts with hidden input; a negative public key is derived from the
// private one.
func (env *Env) KeyPair(private, public int) (keyx.KeyPair, error) {
	if private == 0 {
		var err error
		prompt := fmt.Sprintf("\n🔑 Enter private key (1-%d): ", env.Group.MaxPrivate())
		private, err = scrypto.GetSecureKey(prompt)
		if err != nil {
			return keyx.KeyPair{}, err
		}
	}

	if public < 0 {
		return env.Group.NewKeyPair(private)
	}
	return keyx.KeyPair{Private: private, Public: public}, nil
}

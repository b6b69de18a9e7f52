package opts

import (
	"context"
	"os"

	"github.com/walteh/tokenremap/pkg/config"
	"github.com/walteh/tokenremap/pkg/remap"
	"github.com/walteh/tokenremap/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// Flags
	ConfigFile string
	Strategy   string
	Debug      bool

	// Config is loaded in the root PersistentPreRunE
	Config *config.Config
}

// LoadConfig loads ConfigFile, or discovers one in the working directory.
// Discovery is skipped when args already name the target. A missing
// discovered config is not an error.
func (o *RootOpts) LoadConfig(ctx context.Context, args []string) error {
	path := o.ConfigFile
	if path == "" && !hasTarget(args) {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Errorf("getting working directory: %w", err)
		}
		path, err = config.Discover(wd)
		if err != nil {
			return errors.Errorf("discovering config: %w", err)
		}
	}

	if path == "" {
		o.Config = &config.Config{}
		if err := o.Config.Validate(); err != nil {
			return errors.Errorf("validating default config: %w", err)
		}
		return nil
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	o.Config = cfg
	return nil
}

// EffectiveStrategy is the --strategy flag, falling back to the config
func (o *RootOpts) EffectiveStrategy() string {
	if o.Strategy != "" {
		return o.Strategy
	}
	if o.Config != nil {
		return o.Config.Strategy
	}
	return ""
}

// Target resolves the file to rewrite from args or the config
func (o *RootOpts) Target(args []string) (string, error) {
	if hasTarget(args) {
		return args[0], nil
	}
	if o.Config != nil && o.Config.Target != "" {
		return o.Config.Target, nil
	}
	return "", errors.New("no target file: pass a path or set target in the config")
}

// NewRemapper builds a remapper for the effective strategy
func (o *RootOpts) NewRemapper() (*remap.Remapper, error) {
	strategy := o.EffectiveStrategy()
	replacer, err := text.NewReplacer(strategy)
	if err != nil {
		return nil, errors.Errorf("creating replacer: %w", err)
	}
	r, err := remap.New(remap.Options{
		Replacer: replacer,
		Rules:    text.RulesFor(strategy),
		Strategy: strategy,
	})
	if err != nil {
		return nil, errors.Errorf("creating remapper: %w", err)
	}
	return r, nil
}

func hasTarget(args []string) bool {
	return len(args) > 0 && args[0] != ""
}

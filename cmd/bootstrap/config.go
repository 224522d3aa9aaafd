package bootstrap

import (
	"icms/internal/pkg/config"
	"icms/internal/pkg/errs"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		NewConfig,
	),
)

// NewConfig loads the environment and fails startup on an inconsistent setup.
func NewConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, errs.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

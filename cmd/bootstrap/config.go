package bootstrap

import (
	"time"

	"lessonbook/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.BookingConfig {
			return cfg.Booking
		},
		func(cfg config.Config) *time.Location {
			return cfg.Booking.Location()
		},
	),
)

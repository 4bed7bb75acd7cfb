package i18n

import (
	"github.com/smallbiznis/portal/internal/config"
	"go.uber.org/fx"
)

func NewFromConfig(cfg config.Config) *Translator {
	return New(cfg.DefaultLocale)
}

// Module provides the string catalog translator.
var Module = fx.Module("i18n",
	fx.Provide(NewFromConfig),
)

package logging

import (
	"context"
	"strings"

	"github.com/agriconnect/agriconnect/pkg/interfaces"
)

const (
	rootModule        = "agriconnect"
	localeModule      = "agriconnect.locale"
	languagesModule   = "agriconnect.languages"
	profilesModule    = "agriconnect.profiles"
	httpModule        = "agriconnect.http"
	webhooksModule    = "agriconnect.webhooks"
	marketplaceModule = "agriconnect.marketplace"
	transportModule   = "agriconnect.transport"
	feedbackModule    = "agriconnect.feedback"
	pricesModule      = "agriconnect.prices"
	advisoryModule    = "agriconnect.advisory"
)

const (
	fieldIdentity = "identity"
	fieldLocale   = "locale"
	fieldTrigger  = "trigger"
)

// ModuleLogger returns a logger scoped to module, falling back to a no-op
// logger when provider is nil. The module name is attached as the "module"
// field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// LocaleLogger returns the logger used by the locale resolver.
func LocaleLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, localeModule)
}

// LanguagesLogger returns the logger used by the language catalog.
func LanguagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, languagesModule)
}

// ProfilesLogger returns the logger used by the preference store.
func ProfilesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, profilesModule)
}

func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

func WebhooksLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, webhooksModule)
}

func MarketplaceLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, marketplaceModule)
}

func TransportLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, transportModule)
}

func FeedbackLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, feedbackModule)
}

func PricesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pricesModule)
}

// AdvisoryLogger returns the logger used by advisory and post-harvest content.
func AdvisoryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, advisoryModule)
}

// WithLocaleContext annotates logger with the identity, locale and trigger of
// a resolution pass. Empty values are skipped.
func WithLocaleContext(logger interfaces.Logger, identity, locale, trigger string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(identity); trimmed != "" {
		fields[fieldIdentity] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldLocale] = trimmed
	}
	if trimmed := strings.TrimSpace(trigger); trimmed != "" {
		fields[fieldTrigger] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}

package commands

import (
	"strings"

	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/pkg/interfaces"
)

// CommandLogger scopes a logger to "agriconnect.commands.<domain>" and tags
// entries with component=command and the domain name. A blank domain is
// logged as "core".
func CommandLogger(provider interfaces.LoggerProvider, domain string) interfaces.Logger {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		domain = "core"
	}
	return logging.WithFields(logging.ModuleLogger(provider, "agriconnect.commands."+domain), map[string]any{
		"component":      "command",
		"command_domain": domain,
	})
}

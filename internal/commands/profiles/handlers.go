package profilescmd

import (
	"context"

	"github.com/agriconnect/agriconnect/internal/commands"
	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/internal/profiles"
	"github.com/agriconnect/agriconnect/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const syncOperation = "profiles.sync"

var _ command.Commander[SyncProfileCommand] = (*SyncProfileHandler)(nil)

// ProfileEnsurer is the profiles.Service subset used by the handler.
type ProfileEnsurer interface {
	EnsureProfile(ctx context.Context, input profiles.EnsureProfileInput) (*profiles.Profile, bool, error)
}

// SyncProfileHandler runs SyncProfileCommand through the shared handler.
type SyncProfileHandler struct {
	inner *commands.Handler[SyncProfileCommand]
}

func NewSyncProfileHandler(service ProfileEnsurer, logger interfaces.Logger, opts ...commands.HandlerOption[SyncProfileCommand]) *SyncProfileHandler {
	if logger == nil {
		logger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SyncProfileCommand) error {
		profile, created, err := service.EnsureProfile(ctx, profiles.EnsureProfileInput{
			IdentityKey: msg.IdentityKey,
			Name:        msg.DisplayName(),
		})
		if err != nil {
			return err
		}
		logging.WithFields(logger, map[string]any{
			"identity": msg.IdentityKey,
			"created":  created,
			"locale":   profile.PreferredLanguageCode,
		}).Info("profiles.command.sync.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncProfileCommand]{
		commands.WithLogger[SyncProfileCommand](logger),
		commands.WithOperation[SyncProfileCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncProfileCommand) map[string]any {
			return map[string]any{"identity": msg.IdentityKey}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncProfileHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[SyncProfileCommand].
func (h *SyncProfileHandler) Execute(ctx context.Context, msg SyncProfileCommand) error {
	return h.inner.Execute(ctx, msg)
}

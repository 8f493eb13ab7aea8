package advisorycmd

import (
	"context"
	"io/fs"
	"os"

	"github.com/agriconnect/agriconnect/internal/advisory"
	"github.com/agriconnect/agriconnect/internal/commands"
	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/internal/markdown"
	"github.com/agriconnect/agriconnect/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const importOperation = "advisory.import_directory"

var _ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)

// Importer is the advisory.Service subset used by the handler.
type Importer interface {
	Import(ctx context.Context, kind advisory.Kind, docs []*markdown.Document) (advisory.ImportResult, error)
}

// ImportDirectoryHandler runs ImportDirectoryCommand through the shared handler.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand]
	last  advisory.ImportResult
}

// HandlerOption customises the handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	openFS  func(dir string) fs.FS
	locales []string
	opts    []commands.HandlerOption[ImportDirectoryCommand]
}

// WithFS replaces os.DirFS, mainly for tests.
func WithFS(open func(dir string) fs.FS) HandlerOption {
	return func(cfg *handlerConfig) {
		if open != nil {
			cfg.openFS = open
		}
	}
}

// WithLocales sets the locale directory names recognised by the loader.
func WithLocales(locales ...string) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.locales = append([]string(nil), locales...)
	}
}

// WithHandlerOptions forwards options to the shared command handler.
func WithHandlerOptions(opts ...commands.HandlerOption[ImportDirectoryCommand]) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.opts = append(cfg.opts, opts...)
	}
}

func NewImportDirectoryHandler(service Importer, logger interfaces.Logger, options ...HandlerOption) *ImportDirectoryHandler {
	if logger == nil {
		logger = logging.NoOp()
	}
	cfg := handlerConfig{openFS: os.DirFS}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	h := &ImportDirectoryHandler{}
	exec := func(ctx context.Context, msg ImportDirectoryCommand) error {
		kind, err := advisory.ParseKind(msg.Kind)
		if err != nil {
			return err
		}
		docs, err := markdown.NewLoader(cfg.openFS(msg.Directory), cfg.locales...).LoadDirectory(ctx, ".")
		if err != nil {
			return err
		}
		result, err := service.Import(ctx, kind, docs)
		h.last = result
		if err != nil {
			return err
		}
		logging.WithFields(logger, map[string]any{
			"imported_count": result.Imported,
			"skipped_count":  len(result.Skipped),
		}).Info("advisory.command.import_directory.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](logger),
		commands.WithOperation[ImportDirectoryCommand](importOperation),
		commands.WithMessageFields(func(msg ImportDirectoryCommand) map[string]any {
			return map[string]any{
				"kind":      msg.Kind,
				"directory": msg.Directory,
			}
		}),
	}
	handlerOpts = append(handlerOpts, cfg.opts...)
	h.inner = commands.NewHandler(exec, handlerOpts...)
	return h
}

// Execute satisfies command.Commander[ImportDirectoryCommand].
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// LastResult returns the summary of the most recent run. It is meant for
// single-shot callers such as the CLI.
func (h *ImportDirectoryHandler) LastResult() advisory.ImportResult {
	return h.last
}

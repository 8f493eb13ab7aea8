package advisorycmd

import (
	"strings"

	"github.com/agriconnect/agriconnect/internal/advisory"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const importDirectoryMessageType = "agriconnect.advisory.import_directory"

// ImportDirectoryCommand loads Markdown articles from Directory into the
// table selected by Kind.
type ImportDirectoryCommand struct {
	Kind      string `json:"kind"`
	Directory string `json:"directory"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures the kind is known and a directory is supplied.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Kind, validation.Required, validation.By(func(value any) error {
			if _, err := advisory.ParseKind(value.(string)); err != nil {
				return validation.NewError("agriconnect.advisory.import.kind_unknown", "kind must be crop-advisory or post-harvest")
			}
			return nil
		})),
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("agriconnect.advisory.import.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

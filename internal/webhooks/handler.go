package webhooks

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	profilescmd "github.com/agriconnect/agriconnect/internal/commands/profiles"
	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/internal/validation"
	"github.com/agriconnect/agriconnect/pkg/interfaces"
	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
)

const maxPayloadBytes = 1 << 20

var requiredHeaders = []string{"svix-id", "svix-timestamp", "svix-signature"}

type response struct {
	Error   string                       `json:"error,omitempty"`
	Message string                       `json:"message,omitempty"`
	Status  string                       `json:"status,omitempty"`
	Issues  []validation.ValidationIssue `json:"issues,omitempty"`
}

// Handler receives identity provider deliveries. user.created events create
// the user's profile; other events are acknowledged and ignored.
type Handler struct {
	verifier Verifier
	sync     command.Commander[profilescmd.SyncProfileCommand]
	logger   interfaces.Logger
}

type HandlerOption func(*Handler)

func WithLogger(logger interfaces.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler builds the webhook endpoint. A nil verifier makes every
// delivery fail with 500, matching an unset secret.
func NewHandler(verifier Verifier, sync command.Commander[profilescmd.SyncProfileCommand], opts ...HandlerOption) *Handler {
	h := &Handler{
		verifier: verifier,
		sync:     sync,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.verifier == nil {
		h.logger.Error("webhooks.secret_missing")
		writeJSON(w, http.StatusInternalServerError, response{Error: "misconfigured", Message: "webhook secret not configured"})
		return
	}

	for _, header := range requiredHeaders {
		if strings.TrimSpace(r.Header.Get(header)) == "" {
			writeJSON(w, http.StatusBadRequest, response{Error: "bad_request", Message: "missing svix headers"})
			return
		}
	}
	logger := logging.WithFields(h.logger, map[string]any{"delivery_id": r.Header.Get("svix-id")})

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Error: "bad_request", Message: "unreadable body"})
		return
	}
	if err := h.verifier.Verify(payload, r.Header); err != nil {
		logger.Warn("webhooks.signature_invalid", "error", err)
		writeJSON(w, http.StatusBadRequest, response{Error: "bad_request", Message: "invalid signature"})
		return
	}

	event, err := ParseEvent(payload)
	if err != nil {
		logger.Warn("webhooks.payload_invalid", "error", err)
		writeJSON(w, http.StatusBadRequest, response{Error: "validation_failed", Message: "invalid event payload", Issues: validation.Issues(err)})
		return
	}
	logger = logging.WithFields(logger, map[string]any{"event": event.Type})

	if event.Type != EventUserCreated {
		logger.Info("webhooks.event_ignored")
		writeJSON(w, http.StatusOK, response{Status: "ignored"})
		return
	}

	user, err := event.User()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{Error: "bad_request", Message: err.Error()})
		return
	}
	err = h.sync.Execute(r.Context(), profilescmd.SyncProfileCommand{
		IdentityKey: user.ID,
		FirstName:   stringValue(user.FirstName),
		LastName:    stringValue(user.LastName),
	})
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, response{Status: "ok"})
	case goerrors.IsCategory(err, goerrors.CategoryValidation):
		writeJSON(w, http.StatusBadRequest, response{Error: "validation_failed", Message: err.Error(), Issues: validation.Issues(err)})
	default:
		logger.Error("webhooks.profile_sync_failed", "identity", user.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, response{Error: "internal_error", Message: "could not create user profile"})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

package http

import (
	"net/http"

	"github.com/agriconnect/agriconnect/internal/feedback"
)

func (api *API) registerFeedbackRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "feedback")
	mux.HandleFunc("POST "+root, api.handleFeedbackSubmit)
	mux.HandleFunc("GET "+root, api.handleFeedbackList)
}

// handleFeedbackSubmit accepts feedback from signed-in and signed-out users.
func (api *API) handleFeedbackSubmit(w http.ResponseWriter, r *http.Request) {
	if api.feedback == nil {
		unavailable(w)
		return
	}
	var payload feedback.SubmitInput
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid json payload")
		return
	}
	entry, err := api.feedback.Submit(r.Context(), api.identityKey(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (api *API) handleFeedbackList(w http.ResponseWriter, r *http.Request) {
	if api.feedback == nil {
		unavailable(w)
		return
	}
	entries, err := api.feedback.ListByUser(r.Context(), api.identityKey(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/agriconnect/agriconnect/internal/locale"
	"github.com/agriconnect/agriconnect/internal/marketplace"
)

func (api *API) identityKey(r *http.Request) string {
	state := api.identity(r)
	if state.Kind != locale.IdentityPresent {
		return ""
	}
	return state.Key
}

func (api *API) registerListingRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "marketplace/listings")
	mux.HandleFunc("GET "+root, api.handleListingList)
	mux.HandleFunc("POST "+root, api.handleListingCreate)
	mux.HandleFunc("GET "+root+"/{id}", api.handleListingGet)
	mux.HandleFunc("PATCH "+root+"/{id}", api.handleListingUpdate)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleListingDelete)
}

// handleListingList returns available listings, or the caller's own listings
// when ?mine=true.
func (api *API) handleListingList(w http.ResponseWriter, r *http.Request) {
	if api.listings == nil {
		unavailable(w)
		return
	}
	mine, _ := strconv.ParseBool(strings.TrimSpace(r.URL.Query().Get("mine")))

	var (
		records []*marketplace.Listing
		err     error
	)
	if mine {
		records, err = api.listings.ListBySeller(r.Context(), api.identityKey(r))
	} else {
		records, err = api.listings.ListAvailable(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *API) handleListingCreate(w http.ResponseWriter, r *http.Request) {
	if api.listings == nil {
		unavailable(w)
		return
	}
	var payload marketplace.CreateListingInput
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid json payload")
		return
	}
	record, err := api.listings.Create(r.Context(), api.identityKey(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *API) handleListingGet(w http.ResponseWriter, r *http.Request) {
	if api.listings == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid listing id")
		return
	}
	record, err := api.listings.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleListingUpdate(w http.ResponseWriter, r *http.Request) {
	if api.listings == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid listing id")
		return
	}
	var payload marketplace.UpdateListingInput
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid json payload")
		return
	}
	payload.ID = id
	record, err := api.listings.Update(r.Context(), api.identityKey(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleListingDelete(w http.ResponseWriter, r *http.Request) {
	if api.listings == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid listing id")
		return
	}
	if err := api.listings.Delete(r.Context(), api.identityKey(r), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

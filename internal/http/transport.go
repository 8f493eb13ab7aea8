package http

import (
	"net/http"

	"github.com/agriconnect/agriconnect/internal/transport"
)

type statusPayload struct {
	Status transport.RequestStatus `json:"status"`
}

func (api *API) registerTransportRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "transport/requests")
	mux.HandleFunc("GET "+root, api.handleTransportRequestList)
	mux.HandleFunc("POST "+root, api.handleTransportRequestCreate)
	mux.HandleFunc("PATCH "+root+"/{id}/status", api.handleTransportRequestStatus)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleTransportRequestDelete)
	mux.HandleFunc("GET "+joinPath(base, "transporters"), api.handleTransporterList)
}

func (api *API) handleTransportRequestList(w http.ResponseWriter, r *http.Request) {
	if api.transport == nil {
		unavailable(w)
		return
	}
	records, err := api.transport.ListByFarmer(r.Context(), api.identityKey(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *API) handleTransportRequestCreate(w http.ResponseWriter, r *http.Request) {
	if api.transport == nil {
		unavailable(w)
		return
	}
	var payload transport.CreateRequestInput
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid json payload")
		return
	}
	record, err := api.transport.CreateRequest(r.Context(), api.identityKey(r), payload)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *API) handleTransportRequestStatus(w http.ResponseWriter, r *http.Request) {
	if api.transport == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid request id")
		return
	}
	var payload statusPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid json payload")
		return
	}
	record, err := api.transport.UpdateStatus(r.Context(), id, payload.Status, api.identityKey(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleTransportRequestDelete(w http.ResponseWriter, r *http.Request) {
	if api.transport == nil {
		unavailable(w)
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeBadRequest(w, "invalid request id")
		return
	}
	if err := api.transport.DeleteRequest(r.Context(), id, api.identityKey(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (api *API) handleTransporterList(w http.ResponseWriter, r *http.Request) {
	if api.transport == nil {
		unavailable(w)
		return
	}
	records, err := api.transport.ListTransporters(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

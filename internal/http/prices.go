package http

import (
	"net/http"
	"strings"

	"github.com/agriconnect/agriconnect/internal/prices"
)

func (api *API) registerPriceRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET "+joinPath(base, "market-prices"), api.handlePriceList)
}

func (api *API) handlePriceList(w http.ResponseWriter, r *http.Request) {
	if api.prices == nil {
		unavailable(w)
		return
	}
	query := r.URL.Query()
	records, err := api.prices.List(r.Context(), prices.Filter{
		Crop:   strings.TrimSpace(query.Get("crop")),
		Market: strings.TrimSpace(query.Get("market")),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

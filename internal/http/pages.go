package http

import (
	"net/http"
	"strings"

	"github.com/agriconnect/agriconnect/internal/advisory"
	"github.com/agriconnect/agriconnect/internal/marketplace"
	"github.com/agriconnect/agriconnect/internal/prices"
	"github.com/agriconnect/agriconnect/internal/transport"
)

type pageLink struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

type homePage struct {
	Locale    string         `json:"locale"`
	Languages []languageView `json:"languages"`
	Links     []pageLink     `json:"links"`
}

type marketplacePage struct {
	Locale   string                 `json:"locale"`
	Listings []*marketplace.Listing `json:"listings"`
}

type listingPage struct {
	Locale  string               `json:"locale"`
	Listing *marketplace.Listing `json:"listing"`
}

type pricesPage struct {
	Locale  string                `json:"locale"`
	Crops   []string              `json:"crops"`
	Markets []string              `json:"markets"`
	Latest  *prices.MarketPrice   `json:"latest,omitempty"`
	Prices  []*prices.MarketPrice `json:"prices"`
}

type advisoryIndexPage struct {
	Locale     string           `json:"locale"`
	Kind       advisory.Kind    `json:"kind"`
	Categories []string         `json:"categories"`
	Topics     []advisory.Topic `json:"topics"`
}

type advisoryTopicPage struct {
	Locale  string            `json:"locale"`
	Kind    advisory.Kind     `json:"kind"`
	Content *advisory.Content `json:"content"`
}

type transportersPage struct {
	Locale       string                   `json:"locale"`
	Transporters []*transport.Transporter `json:"transporters"`
}

type requestTransportPage struct {
	Locale   string               `json:"locale"`
	SignedIn bool                 `json:"signed_in"`
	Requests []*transport.Request `json:"requests"`
}

var homeSections = []pageLink{
	{Name: "marketplace", Href: "marketplace"},
	{Name: "market-prices", Href: "market-prices"},
	{Name: "crop-advisory", Href: "crop-advisory"},
	{Name: "post-harvest-guidance", Href: "post-harvest-guidance"},
	{Name: "browse-transporters", Href: "browse-transporters"},
	{Name: "request-transportation", Href: "request-transportation"},
}

func (api *API) registerPageRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{locale}/{$}", api.withLocale(api.handleHomePage))
	mux.HandleFunc("GET /{locale}/marketplace", api.withLocale(api.handleMarketplacePage))
	mux.HandleFunc("GET /{locale}/marketplace/{id}", api.withLocale(api.handleListingPage))
	mux.HandleFunc("GET /{locale}/market-prices", api.withLocale(api.handlePricesPage))
	mux.HandleFunc("GET /{locale}/crop-advisory", api.withLocale(api.advisoryIndex(advisory.KindCropAdvisory)))
	mux.HandleFunc("GET /{locale}/crop-advisory/{topic}", api.withLocale(api.advisoryTopic(advisory.KindCropAdvisory)))
	mux.HandleFunc("GET /{locale}/post-harvest-guidance", api.withLocale(api.advisoryIndex(advisory.KindPostHarvest)))
	mux.HandleFunc("GET /{locale}/post-harvest-guidance/{topic}", api.withLocale(api.advisoryTopic(advisory.KindPostHarvest)))
	mux.HandleFunc("GET /{locale}/browse-transporters", api.withLocale(api.handleTransportersPage))
	mux.HandleFunc("GET /{locale}/request-transportation", api.withLocale(api.handleRequestTransportPage))
}

func activeLocale(r *http.Request) string {
	code, _ := LocaleFrom(r.Context())
	return code
}

func (api *API) handleHomePage(w http.ResponseWriter, r *http.Request) {
	code := activeLocale(r)
	catalog := api.catalog.Load(r.Context())
	views := make([]languageView, 0, catalog.Len())
	for _, lang := range catalog.Languages() {
		views = append(views, languageView{Code: lang.Code, Name: lang.Name, NativeName: lang.NativeName})
	}
	links := make([]pageLink, 0, len(homeSections))
	for _, section := range homeSections {
		links = append(links, pageLink{Name: section.Name, Href: joinPath(code, section.Href)})
	}
	writeJSON(w, http.StatusOK, homePage{Locale: code, Languages: views, Links: links})
}

func (api *API) handleMarketplacePage(w http.ResponseWriter, r *http.Request) {
	if api.listings == nil {
		unavailable(w)
		return
	}
	records, err := api.listings.ListAvailable(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, marketplacePage{Locale: activeLocale(r), Listings: records})
}

func (api *API) handleListingPage(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, listingPage{Locale: activeLocale(r), Listing: record})
}

func (api *API) handlePricesPage(w http.ResponseWriter, r *http.Request) {
	if api.prices == nil {
		unavailable(w)
		return
	}
	ctx := r.Context()
	query := r.URL.Query()
	crop := strings.TrimSpace(query.Get("crop"))
	market := strings.TrimSpace(query.Get("market"))

	crops, err := api.prices.CropKeys(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	markets, err := api.prices.MarketKeys(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	records, err := api.prices.List(ctx, prices.Filter{Crop: crop, Market: market})
	if err != nil {
		writeError(w, err)
		return
	}
	page := pricesPage{Locale: activeLocale(r), Crops: crops, Markets: markets, Prices: records}
	if crop != "" && market != "" {
		latest, err := api.prices.Latest(ctx, crop, market)
		if err != nil {
			writeError(w, err)
			return
		}
		page.Latest = latest
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *API) advisoryIndex(kind advisory.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api.advisory == nil {
			unavailable(w)
			return
		}
		code := activeLocale(r)
		topics, err := api.advisory.Topics(r.Context(), kind, code)
		if err != nil {
			writeError(w, err)
			return
		}
		categories, err := api.advisory.Categories(r.Context(), kind)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, advisoryIndexPage{Locale: code, Kind: kind, Categories: categories, Topics: topics})
	}
}

func (api *API) advisoryTopic(kind advisory.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api.advisory == nil {
			unavailable(w)
			return
		}
		code := activeLocale(r)
		content, err := api.advisory.Content(r.Context(), kind, r.PathValue("topic"), code)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, advisoryTopicPage{Locale: code, Kind: kind, Content: content})
	}
}

func (api *API) handleTransportersPage(w http.ResponseWriter, r *http.Request) {
	if api.transport == nil {
		unavailable(w)
		return
	}
	records, err := api.transport.ListTransporters(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transportersPage{Locale: activeLocale(r), Transporters: records})
}

// handleRequestTransportPage lists the caller's own requests. Signed-out
// visitors get the empty form state.
func (api *API) handleRequestTransportPage(w http.ResponseWriter, r *http.Request) {
	if api.transport == nil {
		unavailable(w)
		return
	}
	page := requestTransportPage{Locale: activeLocale(r), Requests: []*transport.Request{}}
	if key := api.identityKey(r); key != "" {
		records, err := api.transport.ListByFarmer(r.Context(), key)
		if err != nil {
			writeError(w, err)
			return
		}
		page.SignedIn = true
		page.Requests = records
	}
	writeJSON(w, http.StatusOK, page)
}

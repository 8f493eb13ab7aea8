package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/agriconnect/agriconnect/internal/fallbackstore"
	"github.com/agriconnect/agriconnect/internal/languages"
	"github.com/agriconnect/agriconnect/internal/locale"
	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/internal/navigation"
)

// DefaultIdentityHeader carries the identity key set by the authenticating
// proxy in front of the server.
const DefaultIdentityHeader = "X-Identity-Key"

// IdentitySource reports the identity-session state of a request.
type IdentitySource func(r *http.Request) locale.IdentityState

// HeaderIdentity trusts header as the identity key. A missing or blank
// header means signed out.
func HeaderIdentity(header string) IdentitySource {
	if strings.TrimSpace(header) == "" {
		header = DefaultIdentityHeader
	}
	return func(r *http.Request) locale.IdentityState {
		return locale.SignedIn(r.Header.Get(header))
	}
}

type localeContextKey struct{}

// WithLocale stores the active locale on ctx.
func WithLocale(ctx context.Context, code string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, code)
}

// LocaleFrom returns the active locale stored by the locale middleware.
func LocaleFrom(ctx context.Context) (string, bool) {
	code, ok := ctx.Value(localeContextKey{}).(string)
	return code, ok && code != ""
}

type languageView struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	NativeName *string `json:"native_name,omitempty"`
}

type languagesResponse struct {
	Default   string         `json:"default"`
	Languages []languageView `json:"languages"`
}

type changeLanguagePayload struct {
	Language string `json:"language"`
	Path     string `json:"path,omitempty"`
}

type changeLanguageResponse struct {
	Locale    string `json:"locale"`
	Location  string `json:"location"`
	Persisted bool   `json:"persisted"`
}

func (api *API) registerLocaleRoutes(mux *http.ServeMux, base string) {
	mux.HandleFunc("GET /{$}", api.handleRootRedirect)
	mux.HandleFunc("GET "+joinPath(base, "languages"), api.handleLanguages)
	mux.HandleFunc("POST "+joinPath(base, "user/language"), api.handleChangeLanguage)
}

// session builds a resolver for one request. Navigation is recorded by the
// returned router so the caller can answer with a redirect.
func (api *API) session(w http.ResponseWriter, r *http.Request, catalog languages.Catalog, route, current string, opts ...locale.Option) (*locale.Resolver, *navigation.RedirectRouter) {
	router := navigation.NewRedirectRouter(current)
	isLocale := func(segment string) bool {
		return strings.EqualFold(segment, route) || catalog.Contains(segment)
	}
	resolver := locale.NewResolver(locale.Dependencies{
		Catalog:     api.catalog,
		Preferences: api.preferences,
		Navigator:   navigation.NewAdapter(router, isLocale),
		Fallback:    fallbackstore.NewCookieStore(w, r, api.cookieName),
	}, route, append([]locale.Option{
		locale.WithCatalog(catalog),
		locale.WithLogger(logging.WithFields(api.logger, map[string]any{"path": r.URL.Path})),
	}, opts...)...)
	return resolver, router
}

// withLocale resolves the active locale for a page route. A decision that
// differs from the URL locale answers with a redirect to the same page under
// the resolved locale.
func (api *API) withLocale(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog := api.catalog.Load(r.Context())
		resolver, router := api.session(w, r, catalog, r.PathValue("locale"), r.URL.RequestURI())

		out := resolver.IdentitySettled(r.Context(), api.identity(r))
		if location, ok := router.Location(); ok && out.Navigated {
			http.Redirect(w, r, location, http.StatusFound)
			return
		}

		active := resolver.Active().Get()
		if !catalog.Contains(active) {
			active = catalog.Default()
		}
		w.Header().Set("Content-Language", active)
		ctx := logging.ContextWithFields(WithLocale(r.Context(), active), map[string]any{"locale": active})
		next(w, r.WithContext(ctx))
	}
}

// handleRootRedirect sends "/" to the best locale: the fallback cookie, then
// Accept-Language, then the catalog default. The locale middleware applies a
// stored preference on the next request.
func (api *API) handleRootRedirect(w http.ResponseWriter, r *http.Request) {
	catalog := api.catalog.Load(r.Context())
	target := catalog.Default()
	if stored, ok := fallbackstore.NewCookieStore(w, r, api.cookieName).Read(r.Context()); ok && catalog.Contains(stored) {
		target = languages.NormalizeCode(stored)
	} else if matched, ok := catalog.Match(r.Header.Get("Accept-Language")); ok {
		target = matched
	}
	http.Redirect(w, r, "/"+target+"/", http.StatusFound)
}

func (api *API) handleLanguages(w http.ResponseWriter, r *http.Request) {
	catalog := api.catalog.Load(r.Context())
	langs := catalog.Languages()
	views := make([]languageView, 0, len(langs))
	for _, lang := range langs {
		views = append(views, languageView{Code: lang.Code, Name: lang.Name, NativeName: lang.NativeName})
	}
	writeJSON(w, http.StatusOK, languagesResponse{Default: catalog.Default(), Languages: views})
}

// handleChangeLanguage applies an explicit language choice. Signed-in users
// have it stored on their profile; signed-out users get the fallback cookie.
func (api *API) handleChangeLanguage(w http.ResponseWriter, r *http.Request) {
	var payload changeLanguagePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeBadRequest(w, "invalid json payload")
		return
	}
	if strings.TrimSpace(payload.Language) == "" {
		writeBadRequest(w, "language is required")
		return
	}

	current := strings.TrimSpace(payload.Path)
	if current == "" || !strings.HasPrefix(current, "/") {
		current = "/"
	}
	catalog := api.catalog.Load(r.Context())
	route := navigation.FirstSegment(current)
	if !catalog.Contains(route) {
		route = ""
	}
	resolver, router := api.session(w, r, catalog, route, current, locale.WithIdentity(api.identity(r)))

	out := resolver.ChangeLanguage(r.Context(), payload.Language)
	if out.Rejected {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "unsupported_locale",
			Message: "language " + payload.Language + " is not supported",
		})
		return
	}

	location, _ := router.Location()
	writeJSON(w, http.StatusOK, changeLanguageResponse{
		Locale:    out.Target,
		Location:  location,
		Persisted: out.Persisted,
	})
}

package locale

import (
	"context"
	"errors"
	"sync"

	"github.com/agriconnect/agriconnect/internal/languages"
	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/pkg/interfaces"
)

// Dependencies are the collaborators consulted by a Resolver. Navigator and
// Fallback default to no-ops when nil.
type Dependencies struct {
	Catalog     CatalogLoader
	Preferences PreferenceStore
	Navigator   Navigator
	Fallback    FallbackStore
}

// Option configures a Resolver.
type Option func(*Resolver)

func WithLogger(logger interfaces.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithActiveLocale makes the resolver write to an existing container instead
// of creating its own.
func WithActiveLocale(active *ActiveLocale) Option {
	return func(r *Resolver) {
		if active != nil {
			r.active = active
		}
	}
}

// WithCatalog preloads the catalog, moving the resolver straight to
// awaiting-identity without calling the CatalogLoader.
func WithCatalog(catalog languages.Catalog) Option {
	return func(r *Resolver) {
		if !catalog.IsEmpty() {
			r.catalog = catalog
			r.state = StateAwaitingIdentity
		}
	}
}

// WithIdentity records a settled identity at construction without running a
// resolution pass. Callers that only apply an explicit change use it.
func WithIdentity(identity IdentityState) Option {
	return func(r *Resolver) {
		r.identity = identity
	}
}

// Resolver decides which locale is active for one session. Every trigger
// method returns an Outcome instead of an error; failures degrade to the
// current or default locale.
//
// Triggers may be called from different goroutines. Each trigger that changes
// an input advances an epoch, and a pass whose epoch is no longer current
// when its storage calls return is discarded. Navigation and the active
// locale write happen together under commit, and epochs only advance under
// commit, so a pass that navigates is never superseded halfway. Navigator
// implementations must not call back into the Resolver.
type Resolver struct {
	deps   Dependencies
	active *ActiveLocale
	logger interfaces.Logger

	commit   sync.Mutex
	mu       sync.Mutex
	state    State
	catalog  languages.Catalog
	identity IdentityState
	route    string
	epoch    uint64
}

// NewResolver creates a resolver for a session whose current route carries
// route as its locale segment.
func NewResolver(deps Dependencies, route string, opts ...Option) *Resolver {
	if deps.Navigator == nil {
		deps.Navigator = noopNavigator{}
	}
	if deps.Fallback == nil {
		deps.Fallback = noopFallback{}
	}
	route = languages.NormalizeCode(route)
	r := &Resolver{
		deps:     deps,
		logger:   logging.NoOp(),
		state:    StateUninitialized,
		identity: UnknownIdentity(),
		route:    route,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.active == nil {
		r.active = NewActiveLocale(r.initialLocale())
	}
	return r
}

// initialLocale is the route code, or the catalog default when a preloaded
// catalog does not list the route.
func (r *Resolver) initialLocale() string {
	if r.catalog.IsEmpty() {
		return r.route
	}
	if lang, ok := r.catalog.Lookup(r.route); ok {
		return lang.Code
	}
	return r.catalog.Default()
}

// advance moves to a new epoch after applying fn to the resolver inputs.
func (r *Resolver) advance(fn func()) {
	r.commit.Lock()
	defer r.commit.Unlock()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.epoch++
	if fn != nil {
		fn()
	}
}

// Active exposes the active-locale container for readers.
func (r *Resolver) Active() *ActiveLocale {
	return r.active
}

func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Resolver) Catalog() languages.Catalog {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.catalog
}

func (r *Resolver) Identity() IdentityState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.identity
}

// LoadCatalog fetches the language catalog and resolves when the identity is
// already known.
func (r *Resolver) LoadCatalog(ctx context.Context) Outcome {
	r.advance(func() { r.state = StateCatalogLoading })

	var catalog languages.Catalog
	if r.deps.Catalog != nil {
		catalog = r.deps.Catalog.Load(ctx)
	}

	r.advance(func() {
		r.catalog = catalog
		r.state = StateAwaitingIdentity
	})

	return r.resolve(ctx, TriggerCatalogLoaded)
}

// IdentitySettled records the identity-session state and resolves.
func (r *Resolver) IdentitySettled(ctx context.Context, identity IdentityState) Outcome {
	r.advance(func() { r.identity = identity })

	return r.resolve(ctx, TriggerIdentitySettled)
}

// RouteChanged records the locale segment of the new route. The active
// locale follows the route when the code is supported, then resolution runs
// again so a stored preference can still take precedence.
func (r *Resolver) RouteChanged(ctx context.Context, code string) Outcome {
	code = languages.NormalizeCode(code)

	r.advance(func() {
		r.route = code
		if lang, ok := r.catalog.Lookup(code); ok {
			r.active.set(lang.Code, SourceURL)
		}
	})

	return r.resolve(ctx, TriggerRouteChanged)
}

// ChangeLanguage applies a user-requested locale. Unsupported codes are
// rejected without side effects. Otherwise the active locale moves at once,
// the navigator is invoked and the choice is persisted; a persistence
// failure is reported in Outcome.Err and does not undo the change.
func (r *Resolver) ChangeLanguage(ctx context.Context, code string) Outcome {
	r.commit.Lock()
	r.mu.Lock()
	out := Outcome{
		Trigger:  TriggerChangeRequested,
		State:    r.state,
		Identity: r.identity,
		Previous: r.active.Get(),
	}
	lang, ok := r.catalog.Lookup(code)
	if !ok {
		r.mu.Unlock()
		r.commit.Unlock()
		out.Rejected = true
		r.log(out).Warn("locale.change.rejected", "requested", code)
		return out
	}
	r.epoch++
	r.active.set(lang.Code, SourceRequested)
	r.mu.Unlock()

	out.Target = lang.Code
	out.Source = SourceRequested
	logger := r.log(out)

	err := r.deps.Navigator.Go(ctx, lang.Code)
	if err == nil {
		r.mu.Lock()
		r.route = lang.Code
		r.mu.Unlock()
	}
	r.commit.Unlock()
	if err != nil {
		out.Err = err
		logger.Error("locale.change.navigate_failed", "error", err)
	} else {
		out.Navigated = true
	}

	if err := r.persist(ctx, out.Identity, lang.Code); err != nil {
		out.Err = errors.Join(out.Err, err)
		logger.Error("locale.change.persist_failed", "error", err)
	} else {
		out.Persisted = true
	}

	logger.Info("locale.change.applied", "previous", out.Previous, "navigated", out.Navigated, "persisted", out.Persisted)
	return out
}

func (r *Resolver) persist(ctx context.Context, identity IdentityState, code string) error {
	if identity.Kind == IdentityPresent && r.deps.Preferences != nil {
		_, err := r.deps.Preferences.UpsertPreference(ctx, identity.Key, &code)
		return err
	}
	return r.deps.Fallback.Write(ctx, code)
}

type pass struct {
	epoch    uint64
	state    State
	catalog  languages.Catalog
	identity IdentityState
	route    string
}

func (r *Resolver) snapshot() pass {
	r.mu.Lock()
	defer r.mu.Unlock()
	return pass{
		epoch:    r.epoch,
		state:    r.state,
		catalog:  r.catalog,
		identity: r.identity,
		route:    r.route,
	}
}

func (r *Resolver) resolve(ctx context.Context, trigger Trigger) Outcome {
	snap := r.snapshot()
	out := Outcome{
		Trigger:  trigger,
		State:    snap.state,
		Identity: snap.identity,
		Previous: r.active.Get(),
	}

	if snap.state == StateUninitialized || snap.state == StateCatalogLoading ||
		snap.catalog.IsEmpty() || snap.identity.Kind == IdentityUnknown {
		out.Skipped = true
		r.log(out).Debug("locale.resolve.skipped", "state", snap.state)
		return out
	}

	out.Target, out.Source, out.Ensured, out.Err = r.decide(ctx, snap)
	logger := r.log(out)

	r.commit.Lock()
	defer r.commit.Unlock()

	if r.superseded(snap) {
		out.Stale = true
		logger.Debug("locale.resolve.stale")
		return out
	}

	// An unsupported route segment is rewritten even when the active locale
	// already holds the target.
	if out.Target != r.active.Get() || out.Target != snap.route {
		if err := r.deps.Navigator.Go(ctx, out.Target); err != nil {
			out.Err = errors.Join(out.Err, err)
			logger.Error("locale.resolve.navigate_failed", "error", err)
			return out
		}
		out.Navigated = true
	}

	r.mu.Lock()
	r.state = StateResolved
	if out.Navigated {
		r.route = out.Target
	}
	out.Previous, _ = r.active.set(out.Target, out.Source)
	r.mu.Unlock()

	out.State = StateResolved
	logger.Debug("locale.resolve.done", "source", out.Source, "navigated", out.Navigated)
	return out
}

// decide applies the precedence rules: stored preference for signed-in users,
// the fallback store for signed-out users, then the route locale, then the
// catalog default.
func (r *Resolver) decide(ctx context.Context, snap pass) (string, Source, bool, error) {
	var (
		ensured bool
		errs    error
	)

	switch snap.identity.Kind {
	case IdentityPresent:
		if r.deps.Preferences == nil {
			break
		}
		lookup := r.deps.Preferences.GetPreferredLocale(ctx, snap.identity.Key)
		candidate := lookup.Code
		if !lookup.Found() {
			errs = lookup.Err
			ensured = true
			profile, err := r.deps.Preferences.UpsertPreference(ctx, snap.identity.Key, nil)
			if err != nil {
				errs = errors.Join(errs, err)
				break
			}
			candidate = profile.PreferredLanguageCode
		}
		if code, ok := preferred(snap, candidate); ok {
			return code, SourceStored, ensured, errs
		}
	case IdentityAbsent:
		if stored, ok := r.deps.Fallback.Read(ctx); ok {
			if code, ok := preferred(snap, stored); ok {
				return code, SourceLocal, false, nil
			}
		}
	}

	if lang, ok := snap.catalog.Lookup(snap.route); ok {
		return lang.Code, SourceURL, ensured, errs
	}
	return snap.catalog.Default(), SourceDefault, ensured, errs
}

// preferred reports a stored candidate that is supported and differs from
// the route locale.
func preferred(snap pass, candidate string) (string, bool) {
	lang, ok := snap.catalog.Lookup(candidate)
	if !ok || lang.Code == snap.route {
		return "", false
	}
	return lang.Code, true
}

func (r *Resolver) superseded(snap pass) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.epoch != snap.epoch
}

func (r *Resolver) log(out Outcome) interfaces.Logger {
	key := ""
	if out.Identity.Kind == IdentityPresent {
		key = out.Identity.Key
	}
	return logging.WithLocaleContext(r.logger, key, out.Target, string(out.Trigger))
}

type noopNavigator struct{}

func (noopNavigator) Go(context.Context, string) error { return nil }

type noopFallback struct{}

func (noopFallback) Read(context.Context) (string, bool)  { return "", false }
func (noopFallback) Write(context.Context, string) error { return nil }

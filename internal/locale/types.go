package locale

import (
	"context"
	"strings"

	"github.com/agriconnect/agriconnect/internal/languages"
	"github.com/agriconnect/agriconnect/internal/profiles"
)

// IdentityKind describes what is known about the signed-in user.
type IdentityKind uint8

const (
	// IdentityUnknown means the identity provider has not settled yet.
	IdentityUnknown IdentityKind = iota
	IdentityAbsent
	IdentityPresent
)

func (k IdentityKind) String() string {
	switch k {
	case IdentityAbsent:
		return "absent"
	case IdentityPresent:
		return "present"
	default:
		return "unknown"
	}
}

// IdentityState is the identity-session input of the resolver.
type IdentityState struct {
	Kind IdentityKind
	Key  string
}

// UnknownIdentity returns the state used while the session is loading.
func UnknownIdentity() IdentityState {
	return IdentityState{Kind: IdentityUnknown}
}

// Anonymous returns the signed-out state.
func Anonymous() IdentityState {
	return IdentityState{Kind: IdentityAbsent}
}

// SignedIn returns the signed-in state for key. An empty key is treated as
// signed out.
func SignedIn(key string) IdentityState {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return Anonymous()
	}
	return IdentityState{Kind: IdentityPresent, Key: trimmed}
}

func (s IdentityState) String() string {
	if s.Kind == IdentityPresent {
		return "present(" + s.Key + ")"
	}
	return s.Kind.String()
}

// State is the resolver lifecycle.
type State string

const (
	StateUninitialized    State = "uninitialized"
	StateCatalogLoading   State = "catalog-loading"
	StateAwaitingIdentity State = "awaiting-identity"
	StateResolved         State = "resolved"
)

// Trigger names the event that started a resolver transition.
type Trigger string

const (
	TriggerCatalogLoaded   Trigger = "catalog-loaded"
	TriggerIdentitySettled Trigger = "identity-settled"
	TriggerRouteChanged    Trigger = "route-changed"
	TriggerChangeRequested Trigger = "change-requested"
)

// Source records where the target locale came from.
type Source string

const (
	SourceStored    Source = "stored"
	SourceLocal     Source = "local"
	SourceURL       Source = "url"
	SourceDefault   Source = "default"
	SourceRequested Source = "requested"
)

// CatalogLoader loads the supported languages. It never fails; storage
// errors surface as a fallback catalog.
type CatalogLoader interface {
	Load(ctx context.Context) languages.Catalog
}

// PreferenceStore reads and writes a signed-in user's stored locale.
type PreferenceStore interface {
	GetPreferredLocale(ctx context.Context, identityKey string) profiles.PreferenceLookup
	UpsertPreference(ctx context.Context, identityKey string, code *string) (*profiles.Profile, error)
}

// Navigator moves the current route to the given locale.
type Navigator interface {
	Go(ctx context.Context, code string) error
}

// FallbackStore holds the signed-out user's locale choice.
type FallbackStore interface {
	Read(ctx context.Context) (string, bool)
	Write(ctx context.Context, code string) error
}

// Outcome describes a single resolver transition.
type Outcome struct {
	Trigger  Trigger
	State    State
	Identity IdentityState
	Previous string
	Target   string
	Source   Source

	// Navigated is set when the navigator was invoked.
	Navigated bool
	// Persisted is set when the choice was written to the preference store
	// or the fallback store.
	Persisted bool
	// Ensured is set when a signed-in user had no stored preference and a
	// default row was requested from the preference store.
	Ensured bool
	// Skipped is set when resolution did not run because the identity is
	// unknown or the catalog is not loaded.
	Skipped bool
	// Rejected is set when a requested locale is not in the catalog.
	Rejected bool
	// Stale is set when a newer trigger superseded this pass; its result was
	// discarded.
	Stale bool

	// Err carries a degraded-path failure. The active locale is still valid.
	Err error
}

// Changed reports whether the active locale moved during the transition.
func (o Outcome) Changed() bool {
	return !o.Stale && !o.Rejected && !o.Skipped && o.Target != "" && o.Target != o.Previous
}

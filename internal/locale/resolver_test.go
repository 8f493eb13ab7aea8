package locale

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/agriconnect/agriconnect/internal/languages"
)

type harness struct {
	catalog  *fakeCatalog
	prefs    *fakePrefs
	nav      *fakeNavigator
	fallback *fakeFallback
	resolver *Resolver
}

func newHarness(route string, catalog languages.Catalog, opts ...Option) *harness {
	h := &harness{
		catalog:  &fakeCatalog{catalog: catalog},
		prefs:    newFakePrefs(),
		nav:      &fakeNavigator{},
		fallback: &fakeFallback{},
	}
	h.resolver = NewResolver(Dependencies{
		Catalog:     h.catalog,
		Preferences: h.prefs,
		Navigator:   h.nav,
		Fallback:    h.fallback,
	}, route, opts...)
	return h
}

func TestResolverSkipsUntilCatalogAndIdentityAreReady(t *testing.T) {
	ctx := context.Background()
	h := newHarness("en", testCatalog("en", "hi", "mr"))

	if state := h.resolver.State(); state != StateUninitialized {
		t.Fatalf("expected uninitialized, got %s", state)
	}

	out := h.resolver.IdentitySettled(ctx, SignedIn("user_1"))
	if !out.Skipped {
		t.Fatalf("expected resolution to be skipped before catalog load, got %+v", out)
	}

	h.resolver.IdentitySettled(ctx, UnknownIdentity())
	out = h.resolver.LoadCatalog(ctx)
	if !out.Skipped || out.State != StateAwaitingIdentity {
		t.Fatalf("expected skip while identity unknown, got %+v", out)
	}
	if h.catalog.calls != 1 {
		t.Fatalf("expected one catalog load, got %d", h.catalog.calls)
	}
	if h.prefs.upsertCount() != 0 || len(h.nav.visited()) != 0 {
		t.Fatal("expected no side effects while skipped")
	}
}

func TestResolverSkipsWithEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	h := newHarness("en", languages.Catalog{})

	h.resolver.LoadCatalog(ctx)
	out := h.resolver.IdentitySettled(ctx, Anonymous())
	if !out.Skipped {
		t.Fatalf("expected skip for empty catalog, got %+v", out)
	}
}

func TestResolverCreatesDefaultPreferenceForNewIdentity(t *testing.T) {
	ctx := context.Background()
	h := newHarness("en", testCatalog("en", "hi", "mr"))

	h.resolver.LoadCatalog(ctx)
	out := h.resolver.IdentitySettled(ctx, SignedIn("user_new"))

	if out.Skipped || out.Stale || out.Err != nil {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if !out.Ensured || out.Target != "en" || out.Navigated {
		t.Fatalf("expected default ensured without navigation, got %+v", out)
	}
	if len(h.prefs.upserts) != 1 || h.prefs.upserts[0].code != nil {
		t.Fatalf("expected one upsert without explicit code, got %+v", h.prefs.upserts)
	}
	if h.prefs.stored["user_new"] != "en" {
		t.Fatalf("expected stored en, got %q", h.prefs.stored["user_new"])
	}
	if len(h.nav.visited()) != 0 {
		t.Fatalf("expected no navigation, got %v", h.nav.visited())
	}
	if h.resolver.State() != StateResolved || h.resolver.Active().Get() != "en" {
		t.Fatalf("expected resolved en, got %s %s", h.resolver.State(), h.resolver.Active().Get())
	}
}

func TestResolverStoredPreferenceWinsOverRoute(t *testing.T) {
	ctx := context.Background()
	h := newHarness("en", testCatalog("en", "hi", "mr"))
	h.prefs.stored["user_1"] = "mr"

	h.resolver.LoadCatalog(ctx)
	out := h.resolver.IdentitySettled(ctx, SignedIn("user_1"))

	if out.Target != "mr" || out.Source != SourceStored || !out.Navigated {
		t.Fatalf("expected navigation to stored mr, got %+v", out)
	}
	if !reflect.DeepEqual(h.nav.visited(), []string{"mr"}) {
		t.Fatalf("expected one navigation to mr, got %v", h.nav.visited())
	}
	if h.resolver.Active().Get() != "mr" {
		t.Fatalf("expected active mr, got %s", h.resolver.Active().Get())
	}
	if h.prefs.upsertCount() != 0 {
		t.Fatal("stored preference must not be written again")
	}

	// The route follows the navigation; resolution settles without looping.
	out = h.resolver.RouteChanged(ctx, "mr")
	if out.Navigated || out.Target != "mr" || out.Source != SourceURL {
		t.Fatalf("expected settled route, got %+v", out)
	}
	if len(h.nav.visited()) != 1 {
		t.Fatalf("expected no further navigation, got %v", h.nav.visited())
	}
}

func TestResolverIgnoresUnsupportedStoredPreference(t *testing.T) {
	ctx := context.Background()
	h := newHarness("hi", testCatalog("en", "hi"))
	h.prefs.stored["user_1"] = "fr"

	h.resolver.LoadCatalog(ctx)
	out := h.resolver.IdentitySettled(ctx, SignedIn("user_1"))

	if out.Target != "hi" || out.Source != SourceURL || out.Navigated {
		t.Fatalf("expected route locale, got %+v", out)
	}
}

func TestResolverAnonymousFallbackAfterReload(t *testing.T) {
	ctx := context.Background()
	fallback := &fakeFallback{}
	catalog := testCatalog("en", "hi", "mr")

	first := NewResolver(Dependencies{
		Catalog:   &fakeCatalog{catalog: catalog},
		Navigator: &fakeNavigator{},
		Fallback:  fallback,
	}, "en")
	first.LoadCatalog(ctx)
	first.IdentitySettled(ctx, Anonymous())
	if out := first.ChangeLanguage(ctx, "hi"); !out.Persisted {
		t.Fatalf("expected fallback write, got %+v", out)
	}

	prefs := newFakePrefs()
	nav := &fakeNavigator{}
	reloaded := NewResolver(Dependencies{
		Catalog:     &fakeCatalog{catalog: catalog},
		Preferences: prefs,
		Navigator:   nav,
		Fallback:    fallback,
	}, "en")
	reloaded.LoadCatalog(ctx)
	out := reloaded.IdentitySettled(ctx, Anonymous())

	if out.Target != "hi" || out.Source != SourceLocal || out.Persisted {
		t.Fatalf("expected local fallback hi, got %+v", out)
	}
	if reloaded.Active().Get() != "hi" {
		t.Fatalf("expected active hi, got %s", reloaded.Active().Get())
	}
	if len(fallback.writes) != 1 || prefs.upsertCount() != 0 {
		t.Fatalf("expected no storage writes on reload, got fallback=%v upserts=%d", fallback.writes, prefs.upsertCount())
	}
}

func TestResolverAnonymousRouteLocaleWithoutFallback(t *testing.T) {
	ctx := context.Background()
	h := newHarness("mr", testCatalog("en", "hi", "mr"))

	h.resolver.LoadCatalog(ctx)
	out := h.resolver.IdentitySettled(ctx, Anonymous())

	if out.Target != "mr" || out.Navigated || out.Persisted {
		t.Fatalf("expected mr without side effects, got %+v", out)
	}
	if h.resolver.Active().Get() != "mr" {
		t.Fatalf("expected active mr, got %s", h.resolver.Active().Get())
	}
	if len(h.fallback.writes) != 0 || h.prefs.upsertCount() != 0 || len(h.nav.visited()) != 0 {
		t.Fatal("expected no navigation or storage writes")
	}
}

func TestResolverUnsupportedRouteFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	h := newHarness("fr", testCatalog("en", "hi"))

	h.resolver.LoadCatalog(ctx)
	out := h.resolver.IdentitySettled(ctx, Anonymous())

	if out.Target != "en" || out.Source != SourceDefault || !out.Navigated {
		t.Fatalf("expected navigation to default, got %+v", out)
	}
}

func TestChangeLanguageRejectsUnknownCode(t *testing.T) {
	ctx := context.Background()
	h := newHarness("en", testCatalog("en", "hi", "mr"))
	h.resolver.LoadCatalog(ctx)
	h.resolver.IdentitySettled(ctx, SignedIn("user_1"))
	upserts := h.prefs.upsertCount()

	out := h.resolver.ChangeLanguage(ctx, "fr")

	if !out.Rejected || out.Navigated || out.Persisted {
		t.Fatalf("expected rejection, got %+v", out)
	}
	if h.resolver.Active().Get() != "en" || len(h.nav.visited()) != 0 || h.prefs.upsertCount() != upserts {
		t.Fatal("rejected change must not have side effects")
	}
}

func TestChangeLanguageSignedInPersistsOnce(t *testing.T) {
	ctx := context.Background()
	h := newHarness("en", testCatalog("en", "hi", "mr"))
	h.prefs.stored["user_1"] = "en"
	h.resolver.LoadCatalog(ctx)
	h.resolver.IdentitySettled(ctx, SignedIn("user_1"))

	out := h.resolver.ChangeLanguage(ctx, "hi")

	if !out.Navigated || !out.Persisted || out.Err != nil {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if len(h.prefs.upserts) != 1 || h.prefs.upserts[0].key != "user_1" || *h.prefs.upserts[0].code != "hi" {
		t.Fatalf("expected exactly one upsert(user_1, hi), got %+v", h.prefs.upserts)
	}
	if !reflect.DeepEqual(h.nav.visited(), []string{"hi"}) {
		t.Fatalf("expected one navigation to hi, got %v", h.nav.visited())
	}
	if len(h.fallback.writes) != 0 {
		t.Fatal("signed-in change must not touch the fallback store")
	}
}

func TestChangeLanguagePersistenceFailureKeepsActiveLocale(t *testing.T) {
	ctx := context.Background()
	h := newHarness("en", testCatalog("en", "hi"))
	h.resolver.LoadCatalog(ctx)
	h.resolver.IdentitySettled(ctx, Anonymous())
	h.fallback.err = errors.New("storage full")

	out := h.resolver.ChangeLanguage(ctx, "hi")

	if out.Persisted || out.Err == nil || !out.Navigated {
		t.Fatalf("expected navigation with persistence error, got %+v", out)
	}
	if h.resolver.Active().Get() != "hi" {
		t.Fatalf("expected optimistic active hi, got %s", h.resolver.Active().Get())
	}
}

func TestFallbackCatalogRejectsOtherLocales(t *testing.T) {
	ctx := context.Background()
	h := newHarness("en", languages.FallbackCatalog("en", ""))
	h.resolver.LoadCatalog(ctx)
	h.resolver.IdentitySettled(ctx, Anonymous())

	for _, code := range []string{"hi", "mr"} {
		if out := h.resolver.ChangeLanguage(ctx, code); !out.Rejected {
			t.Fatalf("expected %s to be rejected, got %+v", code, out)
		}
	}
	if out := h.resolver.ChangeLanguage(ctx, "en"); out.Rejected {
		t.Fatalf("expected en to be accepted, got %+v", out)
	}
}

func TestResolverStorageFailureDegradesToRoute(t *testing.T) {
	ctx := context.Background()
	h := newHarness("hi", testCatalog("en", "hi"))
	h.prefs.getErr = errors.New("network down")
	h.prefs.upsertErr = errors.New("network down")

	h.resolver.LoadCatalog(ctx)
	out := h.resolver.IdentitySettled(ctx, SignedIn("user_1"))

	if out.Err == nil || out.Target != "hi" || out.Navigated {
		t.Fatalf("expected degraded route locale with error, got %+v", out)
	}
	if h.resolver.Active().Get() != "hi" {
		t.Fatalf("expected active hi, got %s", h.resolver.Active().Get())
	}
}

func TestResolverNavigationFailureKeepsCurrentLocale(t *testing.T) {
	ctx := context.Background()
	h := newHarness("en", testCatalog("en", "hi"))
	h.prefs.stored["user_1"] = "hi"
	h.nav.err = errors.New("router unavailable")

	h.resolver.LoadCatalog(ctx)
	out := h.resolver.IdentitySettled(ctx, SignedIn("user_1"))

	if out.Err == nil || out.Navigated {
		t.Fatalf("expected navigation error, got %+v", out)
	}
	if h.resolver.Active().Get() != "en" {
		t.Fatalf("expected active to stay en, got %s", h.resolver.Active().Get())
	}
}

func TestResolverDiscardsStalePass(t *testing.T) {
	ctx := context.Background()
	h := newHarness("en", testCatalog("en", "hi", "mr"))
	h.prefs.stored["user_1"] = "mr"
	h.fallback.value, h.fallback.set = "hi", true
	h.resolver.LoadCatalog(ctx)

	h.prefs.gate = make(chan struct{})
	h.prefs.entered = make(chan struct{}, 1)

	done := make(chan Outcome, 1)
	go func() {
		done <- h.resolver.IdentitySettled(ctx, SignedIn("user_1"))
	}()

	select {
	case <-h.prefs.entered:
	case <-time.After(time.Second):
		t.Fatal("signed-in pass never reached the preference store")
	}

	// The user signs out while the signed-in lookup is in flight.
	signedOut := h.resolver.IdentitySettled(ctx, Anonymous())
	if signedOut.Target != "hi" || signedOut.Source != SourceLocal {
		t.Fatalf("expected signed-out pass to adopt local hi, got %+v", signedOut)
	}

	close(h.prefs.gate)
	var stale Outcome
	select {
	case stale = <-done:
	case <-time.After(time.Second):
		t.Fatal("signed-in pass did not finish")
	}

	if !stale.Stale || stale.Navigated {
		t.Fatalf("expected stale pass without navigation, got %+v", stale)
	}
	if h.resolver.Active().Get() != "hi" {
		t.Fatalf("expected active to remain hi, got %s", h.resolver.Active().Get())
	}
	if !reflect.DeepEqual(h.nav.visited(), []string{"hi"}) {
		t.Fatalf("expected only the signed-out navigation, got %v", h.nav.visited())
	}
}

func TestResolverNavigationHoldsOffNewerTriggers(t *testing.T) {
	ctx := context.Background()
	h := newHarness("en", testCatalog("en", "hi"))
	h.prefs.stored["user_1"] = "hi"
	h.resolver.LoadCatalog(ctx)

	h.nav.gate = make(chan struct{})
	h.nav.entered = make(chan string, 1)

	signedIn := make(chan Outcome, 1)
	go func() {
		signedIn <- h.resolver.IdentitySettled(ctx, SignedIn("user_1"))
	}()

	select {
	case code := <-h.nav.entered:
		if code != "hi" {
			t.Fatalf("expected navigation to hi, got %s", code)
		}
	case <-time.After(time.Second):
		t.Fatal("signed-in pass never reached the navigator")
	}

	signedOut := make(chan Outcome, 1)
	go func() {
		signedOut <- h.resolver.IdentitySettled(ctx, Anonymous())
	}()

	select {
	case out := <-signedOut:
		t.Fatalf("sign-out must wait for the in-flight navigation, got %+v", out)
	case <-time.After(50 * time.Millisecond):
	}

	close(h.nav.gate)

	var first, second Outcome
	for _, pending := range []struct {
		ch  chan Outcome
		out *Outcome
	}{{signedIn, &first}, {signedOut, &second}} {
		select {
		case *pending.out = <-pending.ch:
		case <-time.After(time.Second):
			t.Fatal("resolution pass did not finish")
		}
	}

	if first.Stale || !first.Navigated || first.Target != "hi" {
		t.Fatalf("expected the signed-in pass to commit hi, got %+v", first)
	}
	if second.Stale || second.Navigated || second.Target != "hi" || second.Source != SourceURL {
		t.Fatalf("expected the sign-out pass to keep the hi route, got %+v", second)
	}

	visited := h.nav.visited()
	if got := h.resolver.Active().Get(); len(visited) == 0 || visited[len(visited)-1] != got {
		t.Fatalf("active locale %s diverged from navigation %v", got, visited)
	}
}

func TestResolverSeedsActiveFromPreloadedCatalog(t *testing.T) {
	ctx := context.Background()
	h := newHarness("xx", testCatalog("en", "hi"), WithCatalog(testCatalog("en", "hi")))

	if got := h.resolver.Active().Get(); got != "en" {
		t.Fatalf("expected unsupported route to seed the default, got %s", got)
	}

	out := h.resolver.IdentitySettled(ctx, Anonymous())
	if out.Target != "en" || !out.Navigated {
		t.Fatalf("expected the unsupported route to be rewritten, got %+v", out)
	}
	if !reflect.DeepEqual(h.nav.visited(), []string{"en"}) {
		t.Fatalf("expected one navigation to en, got %v", h.nav.visited())
	}

	change := h.resolver.ChangeLanguage(ctx, "hi")
	if change.Previous != "en" {
		t.Fatalf("expected previous en, got %+v", change)
	}

	routed := newHarness("HI", testCatalog("en", "hi"), WithCatalog(testCatalog("en", "hi")))
	if got := routed.resolver.Active().Get(); got != "hi" {
		t.Fatalf("expected supported route to seed hi, got %s", got)
	}
}

func TestChangeLanguageWithPresetIdentitySkipsResolution(t *testing.T) {
	ctx := context.Background()
	h := newHarness("en", testCatalog("en", "hi", "mr"),
		WithCatalog(testCatalog("en", "hi", "mr")),
		WithIdentity(SignedIn("user_1")),
	)
	h.prefs.stored["user_1"] = "hi"

	out := h.resolver.ChangeLanguage(ctx, "mr")

	if !out.Navigated || !out.Persisted || out.Previous != "en" {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if h.prefs.getCount() != 0 {
		t.Fatalf("expected no preference lookup, got %d", h.prefs.getCount())
	}
	if len(h.prefs.upserts) != 1 || *h.prefs.upserts[0].code != "mr" {
		t.Fatalf("expected a single upsert of mr, got %+v", h.prefs.upserts)
	}
	if !reflect.DeepEqual(h.nav.visited(), []string{"mr"}) {
		t.Fatalf("expected one navigation to mr, got %v", h.nav.visited())
	}
}

func TestActiveLocaleSubscribersReceiveChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := newHarness("en", testCatalog("en", "hi"))
	changes := h.resolver.Active().Subscribe(ctx)

	h.resolver.LoadCatalog(context.Background())
	h.resolver.IdentitySettled(context.Background(), Anonymous())
	h.resolver.ChangeLanguage(context.Background(), "hi")

	select {
	case evt := <-changes:
		if evt.Previous != "en" || evt.Current != "hi" || evt.Source != SourceRequested {
			t.Fatalf("unexpected change %+v", evt)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}

	cancel()
	select {
	case _, ok := <-changes:
		if ok {
			// drain a buffered value, then expect close
			if _, ok := <-changes; ok {
				t.Fatal("expected channel to close after cancel")
			}
		}
	case <-time.After(time.Second):
		t.Fatal("expected channel to close after cancel")
	}
}

func TestSignedInWithEmptyKeyIsAnonymous(t *testing.T) {
	if got := SignedIn("  "); got.Kind != IdentityAbsent {
		t.Fatalf("expected absent identity, got %s", got)
	}
	if got := SignedIn("user_9").String(); got != "present(user_9)" {
		t.Fatalf("unexpected string %q", got)
	}
}

// Package http exposes the marketplace over net/http.
//
// Page routes carry the active locale as their first segment and run through
// the locale middleware, which may answer with a redirect:
//   - /{locale}/, /{locale}/marketplace, /{locale}/marketplace/{id}
//   - /{locale}/market-prices
//   - /{locale}/crop-advisory, /{locale}/crop-advisory/{topic}
//   - /{locale}/post-harvest-guidance, /{locale}/post-harvest-guidance/{topic}
//   - /{locale}/browse-transporters, /{locale}/request-transportation
//
// JSON endpoints mount under /api:
//   - Languages: /languages, /user/language
//   - Marketplace: /marketplace/listings, /marketplace/listings/{id}
//   - Transport: /transport/requests, /transport/requests/{id}, /transport/requests/{id}/status, /transporters
//   - Market prices: /market-prices
//   - Feedback: /feedback
//   - Identity webhook: /webhooks/identity
//
// Host applications can register handlers on their own mux as needed.
package http

// Package accountservice implements the account lifecycle inside pixmart.
//
// Layering:
// - domain: account entity, role/status invariants, errors
// - application: register/login/moderation use cases behind explicit ports
// - ports: stable boundaries for persistence, hashing, clock, ids
// - adapters: concrete HTTP, memory, postgres, and bcrypt implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under identity-access context.
// - Do not import other context adapters into domain/application.
// - Session credential issuing lives in internal/platform/token; this module
//   only decides whether a login is allowed.
package accountservice

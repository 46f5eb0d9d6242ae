// Package tokenservice implements the bearer token service inside the
// identity-access context.
//
// The module owns issuing and validating signed, time-bounded access tokens
// binding a principal identity. It is stateless: expiry is the only lifetime
// bound and there is no server-side revocation list.
package tokenservice

// Package principalservice implements the principal resolver inside the
// identity-access context.
//
// The module owns principal registration (principal + linked profile created
// as one atomic unit), credential authentication, active-principal loads, and
// the idempotent first-admin bootstrap. It keeps business rules in
// application/domain layers and isolates infrastructure concerns behind
// ports and adapters.
package principalservice

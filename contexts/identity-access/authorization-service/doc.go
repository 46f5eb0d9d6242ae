// Package authorization implements the policy engine inside the
// identity-access context.
//
// All role and ownership checks the system performs live in the single
// table-driven engine here so the policy is auditable in one place. The
// engine is a pure function over (principal, action, resource) and is total:
// every exposed action has an entry and unknown actions deny by default.
package authorization

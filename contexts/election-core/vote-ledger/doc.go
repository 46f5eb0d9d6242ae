// Package voteledger records votes inside the election-core context.
//
// The module enforces one vote per voter per ballot at the storage layer:
// application code validates preconditions, but the final arbiter is the
// repository's unique (voter, ballot) constraint, so two concurrent casts
// for the same pairing cannot both succeed. Vote writes also refresh the
// per-ballot count cache and enqueue an outbox event in the same
// transaction.
package voteledger

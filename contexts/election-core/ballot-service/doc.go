// Package ballotservice implements ballot lifecycle management inside the
// election-core context.
//
// The module owns ballots and their options: creation, pre-open edits,
// status transitions (planned -> active -> closed), and the window scheduler
// worker that applies transitions when a ballot's time window boundary
// passes.
package ballotservice

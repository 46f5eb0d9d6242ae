// Package resultaggregator computes ballot tallies inside the election-core
// context.
//
// Tallies are always recomputed from the transactional per-option counts;
// the cache layer only stores finished results for cheap reads. Percentages
// are rounded half to even at two decimals, so the per-option shares of a
// tally always reconcile with the vote total.
package resultaggregator

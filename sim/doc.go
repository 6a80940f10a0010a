// Package sim provides the core discrete-time aircraft boarding simulator.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - passenger.go: Passenger attributes and seeded scenario generation
//   - layout.go: seat grid, aisle cells, and overhead-bin bookkeeping
//   - simulator.go: the per-tick state machine (walk → stow → shuffle → seat)
//
// # Architecture
//
// The sim package owns the deterministic core; the evolutionary parameter
// search lives in the sim/search sub-package and treats this package as its
// fitness oracle.
//
// All randomness flows through Sequence (rng.go), a Lehmer LCG whose output
// is bit-reproducible for a fixed seed. The simulator itself draws no random
// numbers: given the same layout, passenger set, and boarding order it
// produces an identical event log and tick count on every run.
//
// # Key Extension Point
//
// PriorityFunc (contract.go) is the scheduling contract: a pure function
// from a passenger view and cabin context to a numeric priority. Boarding
// order is derived by sorting descending on priority with ascending-id tie
// break. Named presets are registered in contract.go; user-supplied variants
// pass through the source prefilter and validation in validate.go before
// they are allowed near the simulator.
package sim

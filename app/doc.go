// Package app is the composition root of the planning core. New connects to
// MongoDB and Redis and builds the project and annual program modules over
// them; NewWithStores does the same over caller-provided stores, which is how
// tests and tools run the core in memory.
package app

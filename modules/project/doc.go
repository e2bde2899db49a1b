// Package project implements the project domain: the Project entity and its
// guarded factory, the status transition table, the search policy and the
// get, search, countBy, delete, updateStatus and create use cases.
//
// Projects are stored through a Store. MemoryStore serves tests and local
// development; MongoStore persists to the "projects" collection and reserves
// identifiers from the "counters" collection.
package project

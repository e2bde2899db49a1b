// Package annualprogram implements annual programs: the yearly envelope in
// which an executor programs projects. An annual program is identified by a
// UUID and moves between the new, programming and submittedFinal statuses.
// Only a new annual program can be deleted.
package annualprogram

// Package services contains stateless domain services that operate across
// order aggregates.
//
// Visibility is the read-side routing service: it derives each operating
// role's view of the shared order collection (pending work for a fulfillment
// partner, all pending work for supervisory staff, escalated orders for
// escalation handlers) from table-driven per-role predicates. It holds no
// state of its own and is evaluated on read.
package services

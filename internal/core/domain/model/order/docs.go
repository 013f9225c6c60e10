// Package order contains the Order aggregate, the heart of the fulfillment
// domain. It implements the lifecycle state machine (Pending through
// Delivered, with Escalated and Cancelled as exception states), the
// append-only timeline, the SLA escalation bookkeeping, and the domain
// events consumed by the notification fan-out.
//
// Mutations never perform side effects: each operation validates the request
// against the state machine, updates the aggregate, and records a domain
// event. Publishing those events, and everything downstream of them, is the
// responsibility of the application layer after the mutation commits.
package order

package services

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// ErrUnknownRole is returned when a view is requested for a role the
// visibility table does not know.
var ErrUnknownRole = errors.New("unknown role")

// Role identifies an operating role in the fulfillment network.
type Role string

const (
	// RoleDistributor is a fulfillment partner: sees pending and
	// acknowledged orders routed to them.
	RoleDistributor Role = "distributor"

	// RoleSupervisor is supervisory staff: sees all pending orders
	// regardless of routing.
	RoleSupervisor Role = "supervisor"

	// RoleEscalation is the escalation handler: sees escalated orders.
	RoleEscalation Role = "escalation"
)

// Viewer is the identity a view is computed for. DistributorID scopes the
// distributor role to its own orders; the other roles ignore it.
type Viewer struct {
	Role          Role
	DistributorID kernel.UUID
}

// Validate checks the role against the visibility table.
func (r Role) Validate() error {
	if _, ok := rolePredicates()[r]; !ok {
		return ErrUnknownRole
	}
	return nil
}

// predicate decides whether a single order belongs in a viewer's work queue.
type predicate func(viewer Viewer, o *order.Order) bool

// rolePredicates is the table-driven map from role to its visibility rule.
// Adding a role means adding a row, not another conditional branch.
func rolePredicates() map[Role]predicate {
	return map[Role]predicate{
		RoleDistributor: func(viewer Viewer, o *order.Order) bool {
			if !o.DistributorID().IsEqual(viewer.DistributorID) {
				return false
			}
			return o.Status() == order.Pending || o.Status() == order.Acknowledged
		},
		RoleSupervisor: func(_ Viewer, o *order.Order) bool {
			return o.Status() == order.Pending
		},
		RoleEscalation: func(_ Viewer, o *order.Order) bool {
			return o.IsEscalated()
		},
	}
}

// Visibility derives role-specific views over the shared order collection.
// It is a pure read-side filter with no storage of its own.
type Visibility struct{}

// NewVisibility creates a new Visibility service.
func NewVisibility() Visibility {
	return Visibility{}
}

// ViewFor returns the subset of orders the viewer's role is responsible for,
// preserving the input order. Returns ErrUnknownRole for roles outside the
// visibility table.
func (v Visibility) ViewFor(viewer Viewer, orders []*order.Order) ([]*order.Order, error) {
	pred, ok := rolePredicates()[viewer.Role]
	if !ok {
		return nil, ErrUnknownRole
	}

	view := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if o == nil || o.Validate() != nil {
			continue
		}
		if pred(viewer, o) {
			view = append(view, o)
		}
	}

	return view, nil
}

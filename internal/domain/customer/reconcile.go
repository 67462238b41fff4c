package customer

import (
	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Reconcile applies an incoming child collection onto the existing one.
//
// Policy: incoming items carrying an id update the matching existing child in
// place; items without an id (uuid.Nil) create new children. Existing children
// whose id appears in no incoming item are removed, which means an incoming
// collection with no ids at all replaces every existing child. The returned
// collection follows the incoming payload order. An incoming id that matches
// no existing child aborts with a CHILD_NOT_OWNED error.
func Reconcile[T any, In any](
	existing []T,
	incoming []In,
	label string,
	idOf func(*T) uuid.UUID,
	incomingID func(*In) uuid.UUID,
	applyTo func(*T, *In),
	create func(*In) T,
) (next []T, removed []uuid.UUID, err error) {
	byID := make(map[uuid.UUID]int, len(existing))
	for i := range existing {
		byID[idOf(&existing[i])] = i
	}

	keep := make(map[uuid.UUID]bool, len(incoming))
	for i := range incoming {
		id := incomingID(&incoming[i])
		if id == uuid.Nil {
			continue
		}
		if _, owned := byID[id]; !owned {
			return nil, nil, shared.NewDomainErrorf("CHILD_NOT_OWNED",
				"%s %s não pertence ao cliente", label, id)
		}
		keep[id] = true
	}

	next = make([]T, 0, len(incoming))
	for i := range incoming {
		in := &incoming[i]
		id := incomingID(in)
		if id == uuid.Nil {
			next = append(next, create(in))
			continue
		}
		child := existing[byID[id]]
		applyTo(&child, in)
		next = append(next, child)
	}

	for i := range existing {
		if id := idOf(&existing[i]); !keep[id] {
			removed = append(removed, id)
		}
	}
	return next, removed, nil
}

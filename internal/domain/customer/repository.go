package customer

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter describes listing and search parameters.
type ListFilter struct {
	Query    string
	Limit    int
	Offset   int
	OrderBy  string
	OrderDir string
}

// Repository defines the persistence port for the customer aggregate.
type Repository interface {
	// FindByID loads the customer with its contacts and addresses.
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Customer, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	Save(ctx context.Context, c *Customer) error
	// SaveAggregate persists the customer, its surviving children and the
	// removed child ids in a single transaction.
	SaveAggregate(ctx context.Context, c *Customer, removedContacts, removedAddresses []uuid.UUID) error
}

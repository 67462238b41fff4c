package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/billing/backend/internal/domain/customer"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CustomerRepository implements customer.Repository using GORM
type CustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// FindByID loads the aggregate with its contacts and addresses
func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	var c customer.Customer
	err := r.db.WithContext(ctx).
		Preload("Contacts").
		Preload("Addresses").
		First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindAll returns a page of customers matching the filter
func (r *CustomerRepository) FindAll(ctx context.Context, filter customer.ListFilter) ([]customer.Customer, error) {
	var items []customer.Customer
	q := r.applyFilter(r.db.WithContext(ctx).Model(&customer.Customer{}), filter).
		Distinct("customers.*").
		Order(fmt.Sprintf("customers.%s %s", filter.OrderBy, filter.OrderDir)).
		Limit(filter.Limit).
		Offset(filter.Offset)
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the number of customers matching the filter
func (r *CustomerRepository) Count(ctx context.Context, filter customer.ListFilter) (int64, error) {
	var total int64
	q := r.applyFilter(r.db.WithContext(ctx).Model(&customer.Customer{}), filter).
		Distinct("customers.id")
	if err := q.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// applyFilter joins contacts for the search branches. LOWER/LIKE is used
// instead of ILIKE so the same query runs on the sqlite test database.
func (r *CustomerRepository) applyFilter(q *gorm.DB, filter customer.ListFilter) *gorm.DB {
	if filter.Query == "" {
		return q
	}
	q = q.Joins("LEFT JOIN customer_contacts ct ON ct.customer_id = customers.id")

	pattern := "%" + strings.ToLower(filter.Query) + "%"
	cond := r.db.
		Where("LOWER(customers.razao_social) LIKE ?", pattern).
		Or("LOWER(customers.nome_fantasia) LIKE ?", pattern).
		Or("LOWER(ct.email) LIKE ?", pattern)

	if digits := customer.NormalizeDigits(filter.Query); digits != "" {
		digitsPattern := "%" + digits + "%"
		cond = cond.
			Or("customers.cnpj LIKE ?", digitsPattern).
			Or("customers.cpf LIKE ?", digitsPattern).
			Or("ct.whatsapp LIKE ?", digitsPattern)
	} else {
		cond = cond.Or("ct.whatsapp LIKE ?", pattern)
	}
	return q.Where(cond)
}

// Save inserts a new aggregate with its children
func (r *CustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// SaveAggregate persists the updated aggregate in a single transaction:
// removed children are deleted, the parent row is updated, surviving and new
// children are upserted.
func (r *CustomerRepository) SaveAggregate(ctx context.Context, c *customer.Customer, removedContacts, removedAddresses []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(removedContacts) > 0 {
			if err := tx.Where("customer_id = ? AND id IN ?", c.ID, removedContacts).
				Delete(&customer.Contact{}).Error; err != nil {
				return err
			}
		}
		if len(removedAddresses) > 0 {
			if err := tx.Where("customer_id = ? AND id IN ?", c.ID, removedAddresses).
				Delete(&customer.Address{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Omit(clause.Associations).Save(c).Error; err != nil {
			return err
		}

		// Create with OnConflict covers both new children (preassigned ids)
		// and in-place updates of existing ones.
		for i := range c.Contacts {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
				Create(&c.Contacts[i]).Error; err != nil {
				return err
			}
		}
		for i := range c.Addresses {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
				Create(&c.Addresses[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

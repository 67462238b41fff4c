package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceRepository implements billing.InvoiceRepository using GORM
type InvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// FindByID loads a single invoice
func (r *InvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var inv billing.Invoice
	err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrInvoiceNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// FindAll returns a page of invoices matching the filter
func (r *InvoiceRepository) FindAll(ctx context.Context, filter billing.ListFilter) ([]billing.Invoice, error) {
	var items []billing.Invoice
	q := r.applyFilter(r.db.WithContext(ctx), filter).
		Order("vencimento DESC").
		Limit(filter.Limit).
		Offset(filter.Offset)
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the number of invoices matching the filter
func (r *InvoiceRepository) Count(ctx context.Context, filter billing.ListFilter) (int64, error) {
	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&billing.Invoice{}), filter).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *InvoiceRepository) applyFilter(q *gorm.DB, filter billing.ListFilter) *gorm.DB {
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	return q
}

// MonthlyBilled sums invoice amounts due inside the month containing ref
func (r *InvoiceRepository) MonthlyBilled(ctx context.Context, ref time.Time) (decimal.Decimal, error) {
	start, end := monthBounds(ref)
	return r.sum(ctx, r.db.WithContext(ctx).Model(&billing.Invoice{}).
		Where("vencimento >= ? AND vencimento < ?", start, end).
		Where("status <> ?", billing.InvoiceStatusCanceled))
}

// MonthlyReceived sums invoice amounts paid inside the month containing ref
func (r *InvoiceRepository) MonthlyReceived(ctx context.Context, ref time.Time) (decimal.Decimal, error) {
	start, end := monthBounds(ref)
	return r.sum(ctx, r.db.WithContext(ctx).Model(&billing.Invoice{}).
		Where("status = ?", billing.InvoiceStatusPaid).
		Where("pago_em >= ? AND pago_em < ?", start, end))
}

// OverdueTotal sums open invoice amounts past due at ref
func (r *InvoiceRepository) OverdueTotal(ctx context.Context, ref time.Time) (decimal.Decimal, error) {
	return r.sum(ctx, r.db.WithContext(ctx).Model(&billing.Invoice{}).
		Where("status = ?", billing.InvoiceStatusOpen).
		Where("vencimento < ?", ref))
}

func (r *InvoiceRepository) sum(_ context.Context, q *gorm.DB) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	if err := q.Select("COALESCE(SUM(valor), 0) AS total").Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func monthBounds(ref time.Time) (time.Time, time.Time) {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return start, start.AddDate(0, 1, 0)
}

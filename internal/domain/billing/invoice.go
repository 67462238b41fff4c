package billing

import (
	"context"
	"time"

	"github.com/billing/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the invoice lifecycle status.
type InvoiceStatus string

const (
	InvoiceStatusOpen     InvoiceStatus = "open"
	InvoiceStatusPaid     InvoiceStatus = "paid"
	InvoiceStatusCanceled InvoiceStatus = "canceled"
)

// Invoice is a read-only billing document; invoices are issued by the billing
// pipeline, this service only reads them.
type Invoice struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	Number     string          `gorm:"column:numero;type:varchar(40);not null;uniqueIndex" json:"numero"`
	Status     InvoiceStatus   `gorm:"type:varchar(20);not null;default:open;index" json:"status"`
	Amount     decimal.Decimal `gorm:"column:valor;type:decimal(14,2);not null" json:"valor"`
	DueDate    time.Time       `gorm:"column:vencimento;not null;index" json:"vencimento"`
	PaidAt     *time.Time      `gorm:"column:pago_em" json:"pago_em"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"criado_em"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime" json:"atualizado_em"`
}

// TableName implements the gorm Tabler interface
func (Invoice) TableName() string {
	return "invoices"
}

// ErrInvoiceNotFound is returned when an invoice does not exist.
var ErrInvoiceNotFound = shared.NewDomainError("NOT_FOUND", "Fatura não encontrada")

// ListFilter describes invoice listing parameters.
type ListFilter struct {
	CustomerID *uuid.UUID
	Status     InvoiceStatus
	Limit      int
	Offset     int
}

// InvoiceRepository defines the read-only persistence port for invoices.
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Invoice, error)
	Count(ctx context.Context, filter ListFilter) (int64, error)
	// MonthlyBilled sums invoices due inside the month containing ref.
	MonthlyBilled(ctx context.Context, ref time.Time) (decimal.Decimal, error)
	// MonthlyReceived sums invoices paid inside the month containing ref.
	MonthlyReceived(ctx context.Context, ref time.Time) (decimal.Decimal, error)
	// OverdueTotal sums open invoices past due at ref.
	OverdueTotal(ctx context.Context, ref time.Time) (decimal.Decimal, error)
}

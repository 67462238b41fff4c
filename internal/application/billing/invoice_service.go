package billing

import (
	"context"
	"time"

	"github.com/billing/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListInvoicesRequest carries invoice listing query parameters.
type ListInvoicesRequest struct {
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=open paid canceled"`
	Limit      int        `form:"limit,default=100"`
	Offset     int        `form:"offset,default=0"`
}

// ListInvoicesResponse is the paginated invoice listing payload.
type ListInvoicesResponse struct {
	Total  int64             `json:"total"`
	Items  []billing.Invoice `json:"items"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// DashboardMetrics is the ops dashboard payload.
type DashboardMetrics struct {
	BilledThisMonth   decimal.Decimal `json:"faturado_mes"`
	ReceivedThisMonth decimal.Decimal `json:"recebido_mes"`
	OverdueTotal      decimal.Decimal `json:"total_em_atraso"`
	DelinquencyPct    decimal.Decimal `json:"inadimplencia_percent"`
	ReferenceDate     time.Time       `json:"data_referencia"`
}

// InvoiceService exposes read-only invoice queries and dashboard metrics.
type InvoiceService struct {
	repo billing.InvoiceRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(repo billing.InvoiceRepository) *InvoiceService {
	return &InvoiceService{repo: repo}
}

// GetByID loads a single invoice.
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of invoices matching the filter.
func (s *InvoiceService) List(ctx context.Context, req ListInvoicesRequest) (*ListInvoicesResponse, error) {
	filter := billing.ListFilter{
		CustomerID: req.CustomerID,
		Status:     billing.InvoiceStatus(req.Status),
		Limit:      req.Limit,
		Offset:     req.Offset,
	}
	if filter.Limit < 1 {
		filter.Limit = 1
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ListInvoicesResponse{
		Total:  total,
		Items:  items,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// Metrics aggregates the financial dashboard numbers for the month of ref.
func (s *InvoiceService) Metrics(ctx context.Context, ref time.Time) (*DashboardMetrics, error) {
	billed, err := s.repo.MonthlyBilled(ctx, ref)
	if err != nil {
		return nil, err
	}
	received, err := s.repo.MonthlyReceived(ctx, ref)
	if err != nil {
		return nil, err
	}
	overdue, err := s.repo.OverdueTotal(ctx, ref)
	if err != nil {
		return nil, err
	}

	delinquency := decimal.Zero
	if billed.IsPositive() {
		delinquency = overdue.Div(billed).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &DashboardMetrics{
		BilledThisMonth:   billed,
		ReceivedThisMonth: received,
		OverdueTotal:      overdue,
		DelinquencyPct:    delinquency,
		ReferenceDate:     ref,
	}, nil
}

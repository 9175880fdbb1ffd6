package billing

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	UpdateInvoice(ctx context.Context, inv *Invoice) error
	ListInvoices(ctx context.Context, limit, offset int) ([]*Invoice, int, error)
	ListInvoicesByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Invoice, int, error)

	CreatePayment(ctx context.Context, p *Payment) error
	ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]*Payment, error)
}

// Broadcaster is the slice of the real-time gateway the billing service
// pushes into after each committed write.
type Broadcaster interface {
	BroadcastInvoiceCreated(invoice interface{})
	BroadcastPaymentProcessed(payment interface{}, invoiceID string)
}

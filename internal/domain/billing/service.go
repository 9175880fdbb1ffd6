package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service handles invoices and their payments. An invoice flips to paid
// the moment recorded payments cover its amount.
type Service struct {
	billing   Repository
	broadcast Broadcaster
}

func NewService(billing Repository, broadcast Broadcaster) *Service {
	return &Service{billing: billing, broadcast: broadcast}
}

func (s *Service) CreateInvoice(ctx context.Context, inv *Invoice) error {
	if inv.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if inv.AmountCents <= 0 {
		return fmt.Errorf("amount_cents must be positive")
	}
	inv.PaidCents = 0
	inv.Status = InvoicePending
	if err := s.billing.CreateInvoice(ctx, inv); err != nil {
		return err
	}
	s.broadcast.BroadcastInvoiceCreated(inv)
	return nil
}

func (s *Service) GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.billing.GetInvoice(ctx, id)
}

func (s *Service) VoidInvoice(ctx context.Context, id uuid.UUID) error {
	inv, err := s.billing.GetInvoice(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status == InvoicePaid {
		return fmt.Errorf("cannot void a paid invoice")
	}
	if inv.PaidCents > 0 {
		return fmt.Errorf("cannot void an invoice with recorded payments")
	}
	inv.Status = InvoiceVoid
	return s.billing.UpdateInvoice(ctx, inv)
}

// ProcessPayment records a payment against an invoice and advances the
// invoice status. Overpayment is rejected rather than credited.
func (s *Service) ProcessPayment(ctx context.Context, invoiceID uuid.UUID, amountCents int64, method string) (*Payment, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("amount_cents must be positive")
	}
	if !ValidMethod(method) {
		return nil, fmt.Errorf("unknown payment method %q", method)
	}

	inv, err := s.billing.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	switch inv.Status {
	case InvoicePaid:
		return nil, fmt.Errorf("invoice already paid")
	case InvoiceVoid:
		return nil, fmt.Errorf("invoice is void")
	}
	if amountCents > inv.Outstanding() {
		return nil, fmt.Errorf("payment exceeds outstanding balance of %d", inv.Outstanding())
	}

	p := &Payment{InvoiceID: invoiceID, AmountCents: amountCents, Method: method}
	if err := s.billing.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	inv.PaidCents += amountCents
	if inv.Outstanding() == 0 {
		inv.Status = InvoicePaid
	} else {
		inv.Status = InvoicePartial
	}
	if err := s.billing.UpdateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	s.broadcast.BroadcastPaymentProcessed(p, invoiceID.String())
	return p, nil
}

func (s *Service) ListInvoices(ctx context.Context, patientID *uuid.UUID, limit, offset int) ([]*Invoice, int, error) {
	if patientID != nil {
		return s.billing.ListInvoicesByPatient(ctx, *patientID, limit, offset)
	}
	return s.billing.ListInvoices(ctx, limit, offset)
}

func (s *Service) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]*Payment, error) {
	return s.billing.ListPayments(ctx, invoiceID)
}

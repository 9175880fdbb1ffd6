package billing

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct {
	invoices map[uuid.UUID]*Invoice
	payments []*Payment
}

func newMockRepo() *mockRepo {
	return &mockRepo{invoices: make(map[uuid.UUID]*Invoice)}
}

func (m *mockRepo) CreateInvoice(_ context.Context, inv *Invoice) error {
	inv.ID = uuid.New()
	m.invoices[inv.ID] = inv
	return nil
}

func (m *mockRepo) GetInvoice(_ context.Context, id uuid.UUID) (*Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return inv, nil
}

func (m *mockRepo) UpdateInvoice(_ context.Context, inv *Invoice) error {
	m.invoices[inv.ID] = inv
	return nil
}

func (m *mockRepo) ListInvoices(_ context.Context, _, _ int) ([]*Invoice, int, error) {
	var out []*Invoice
	for _, inv := range m.invoices {
		out = append(out, inv)
	}
	return out, len(out), nil
}

func (m *mockRepo) ListInvoicesByPatient(_ context.Context, patientID uuid.UUID, _, _ int) ([]*Invoice, int, error) {
	var out []*Invoice
	for _, inv := range m.invoices {
		if inv.PatientID == patientID {
			out = append(out, inv)
		}
	}
	return out, len(out), nil
}

func (m *mockRepo) CreatePayment(_ context.Context, p *Payment) error {
	p.ID = uuid.New()
	m.payments = append(m.payments, p)
	return nil
}

func (m *mockRepo) ListPayments(_ context.Context, invoiceID uuid.UUID) ([]*Payment, error) {
	var out []*Payment
	for _, p := range m.payments {
		if p.InvoiceID == invoiceID {
			out = append(out, p)
		}
	}
	return out, nil
}

type recordingBroadcaster struct {
	invoices int
	payments []string
}

func (r *recordingBroadcaster) BroadcastInvoiceCreated(_ interface{}) {
	r.invoices++
}

func (r *recordingBroadcaster) BroadcastPaymentProcessed(_ interface{}, invoiceID string) {
	r.payments = append(r.payments, invoiceID)
}

func newTestService() (*Service, *recordingBroadcaster) {
	bc := &recordingBroadcaster{}
	return NewService(newMockRepo(), bc), bc
}

func createInvoice(t *testing.T, svc *Service, cents int64) *Invoice {
	t.Helper()
	inv := &Invoice{PatientID: uuid.New(), Description: "consultation", AmountCents: cents}
	if err := svc.CreateInvoice(context.Background(), inv); err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	return inv
}

func TestCreateInvoice_StartsPending(t *testing.T) {
	svc, bc := newTestService()

	inv := createInvoice(t, svc, 5000)
	if inv.Status != InvoicePending {
		t.Errorf("expected %q, got %q", InvoicePending, inv.Status)
	}
	if bc.invoices != 1 {
		t.Errorf("expected 1 invoice event, got %d", bc.invoices)
	}
}

func TestCreateInvoice_RejectsNonPositiveAmount(t *testing.T) {
	svc, bc := newTestService()

	inv := &Invoice{PatientID: uuid.New(), AmountCents: 0}
	if err := svc.CreateInvoice(context.Background(), inv); err == nil {
		t.Error("expected error for zero amount")
	}
	if bc.invoices != 0 {
		t.Errorf("no events expected, got %d", bc.invoices)
	}
}

func TestProcessPayment_PartialThenPaid(t *testing.T) {
	svc, bc := newTestService()

	inv := createInvoice(t, svc, 5000)
	if _, err := svc.ProcessPayment(context.Background(), inv.ID, 2000, MethodCash); err != nil {
		t.Fatalf("first payment: %v", err)
	}

	got, _ := svc.GetInvoice(context.Background(), inv.ID)
	if got.Status != InvoicePartial || got.PaidCents != 2000 {
		t.Errorf("after partial: status %q paid %d", got.Status, got.PaidCents)
	}

	if _, err := svc.ProcessPayment(context.Background(), inv.ID, 3000, MethodCard); err != nil {
		t.Fatalf("second payment: %v", err)
	}
	got, _ = svc.GetInvoice(context.Background(), inv.ID)
	if got.Status != InvoicePaid || got.Outstanding() != 0 {
		t.Errorf("after full: status %q outstanding %d", got.Status, got.Outstanding())
	}

	if len(bc.payments) != 2 || bc.payments[0] != inv.ID.String() {
		t.Errorf("payment events %v", bc.payments)
	}
}

func TestProcessPayment_RejectsOverpayment(t *testing.T) {
	svc, _ := newTestService()

	inv := createInvoice(t, svc, 5000)
	if _, err := svc.ProcessPayment(context.Background(), inv.ID, 6000, MethodCash); err == nil {
		t.Error("overpayment must be rejected")
	}
}

func TestProcessPayment_RejectsPaidAndVoid(t *testing.T) {
	svc, _ := newTestService()

	inv := createInvoice(t, svc, 1000)
	if _, err := svc.ProcessPayment(context.Background(), inv.ID, 1000, MethodCash); err != nil {
		t.Fatalf("payment: %v", err)
	}
	if _, err := svc.ProcessPayment(context.Background(), inv.ID, 100, MethodCash); err == nil {
		t.Error("paid invoice must not accept payments")
	}

	void := createInvoice(t, svc, 1000)
	if err := svc.VoidInvoice(context.Background(), void.ID); err != nil {
		t.Fatalf("void: %v", err)
	}
	if _, err := svc.ProcessPayment(context.Background(), void.ID, 100, MethodCash); err == nil {
		t.Error("void invoice must not accept payments")
	}
}

func TestProcessPayment_RejectsUnknownMethod(t *testing.T) {
	svc, _ := newTestService()

	inv := createInvoice(t, svc, 1000)
	if _, err := svc.ProcessPayment(context.Background(), inv.ID, 500, "barter"); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestVoidInvoice_RejectsAfterPayment(t *testing.T) {
	svc, _ := newTestService()

	inv := createInvoice(t, svc, 1000)
	if _, err := svc.ProcessPayment(context.Background(), inv.ID, 500, MethodCash); err != nil {
		t.Fatalf("payment: %v", err)
	}
	if err := svc.VoidInvoice(context.Background(), inv.ID); err == nil {
		t.Error("invoice with payments must not be voidable")
	}
}

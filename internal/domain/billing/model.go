package billing

import (
	"time"

	"github.com/google/uuid"
)

// Invoice maps to the invoice table. Amounts are integer cents.
type Invoice struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	Description string    `db:"description" json:"description"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	PaidCents   int64     `db:"paid_cents" json:"paid_cents"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Payment maps to the payment table.
type Payment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	InvoiceID   uuid.UUID `db:"invoice_id" json:"invoice_id"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	Method      string    `db:"method" json:"method"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Invoice statuses.
const (
	InvoicePending = "pending"
	InvoicePartial = "partial"
	InvoicePaid    = "paid"
	InvoiceVoid    = "void"
)

// Payment methods accepted at the front desk.
const (
	MethodCash      = "cash"
	MethodCard      = "card"
	MethodInsurance = "insurance"
)

func ValidMethod(m string) bool {
	switch m {
	case MethodCash, MethodCard, MethodInsurance:
		return true
	}
	return false
}

// Outstanding reports the unpaid remainder.
func (i *Invoice) Outstanding() int64 {
	return i.AmountCents - i.PaidCents
}

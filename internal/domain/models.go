package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents a reviewer belonging to a tenant. Authentication is
// delegated to the identity provider; this table only backs display
// names and notification addresses.
type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Email     string    `db:"email" json:"email"`
	FullName  string    `db:"full_name" json:"full_name"`
	Role      UserRole  `db:"role" json:"role"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Invoice represents an extracted GST invoice owned by the backend
// store. The engine only ever mutates a working copy of Document
// inside a review session; the row itself changes on Save/Approve/
// Reject.
type Invoice struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	TenantID        uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	Status          InvoiceStatus   `db:"status" json:"status"`
	Document        InvoiceDocument `db:"document" json:"document"`
	ConfidenceScore float64         `db:"confidence_score" json:"confidence_score"`
	ExtractionNotes string          `db:"extraction_notes" json:"extraction_notes"`
	SourceBucket    string          `db:"source_bucket" json:"-"`
	SourceKey       string          `db:"source_key" json:"-"`
	CreatedBy       uuid.UUID       `db:"created_by" json:"created_by"`
	ReviewedBy      *uuid.UUID      `db:"reviewed_by" json:"reviewed_by"`
	ReviewedAt      *time.Time      `db:"reviewed_at" json:"reviewed_at"`
	ReviewerNotes   string          `db:"reviewer_notes" json:"reviewer_notes"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// InvoiceDocument is the structured invoice payload persisted as JSONB.
type InvoiceDocument struct {
	Header    InvoiceHeader      `json:"header"`
	Seller    Party              `json:"seller"`
	Buyer     Party              `json:"buyer"`
	LineItems []LineItem         `json:"line_items"`
	Charges   []AdditionalCharge `json:"additional_charges,omitempty"`
	Discount  *Discount          `json:"discount,omitempty"`
	Totals    InvoiceTotals      `json:"totals"`
}

// InvoiceHeader holds top-level invoice metadata.
type InvoiceHeader struct {
	InvoiceNumber string      `json:"invoice_number"`
	InvoiceDate   string      `json:"invoice_date"`
	VoucherType   VoucherType `json:"voucher_type"`
	SupplyType    SupplyType  `json:"supply_type"`
}

// Party represents the seller or buyer on an invoice.
type Party struct {
	Name      string `json:"name"`
	GSTIN     string `json:"gstin"`
	StateCode string `json:"state_code"`
}

// LineItem is a single invoice line. Quantity, rate, GST rate, and
// cess are operator inputs; the remaining amounts are derived by the
// tax engine and recomputed on every edit.
type LineItem struct {
	Description   string          `json:"description"`
	HSNSACCode    string          `json:"hsn_sac_code"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	Rate          decimal.Decimal `json:"rate"`
	GSTRate       decimal.Decimal `json:"gst_rate"`
	CessAmount    decimal.Decimal `json:"cess_amount"`
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGSTAmount    decimal.Decimal `json:"cgst_amount"`
	SGSTAmount    decimal.Decimal `json:"sgst_amount"`
	IGSTAmount    decimal.Decimal `json:"igst_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// AdditionalCharge is a named extra charge displayed alongside the
// invoice. Charges are additive and untaxed; they are not folded into
// the engine-verified totals.
type AdditionalCharge struct {
	Kind   ChargeKind      `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// Discount is an optional reduction, either a flat amount or a
// percentage of the taxable amount. Like charges, it is applied at the
// display layer and not distributed across line items.
type Discount struct {
	Amount  decimal.Decimal `json:"amount"`
	Percent decimal.Decimal `json:"percent"`
}

// InvoiceTotals holds the invoice-level aggregates. Each *_total is
// the sum of the corresponding line-item field; round_off is an
// operator-entered signed correction.
type InvoiceTotals struct {
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	CGSTTotal     decimal.Decimal `json:"cgst_total"`
	SGSTTotal     decimal.Decimal `json:"sgst_total"`
	IGSTTotal     decimal.Decimal `json:"igst_total"`
	CessTotal     decimal.Decimal `json:"cess_total"`
	RoundOff      decimal.Decimal `json:"round_off"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
}

// Value implements driver.Valuer so the document can be stored as JSONB.
func (d InvoiceDocument) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for reading the document back from JSONB.
func (d *InvoiceDocument) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = InvoiceDocument{}
		return nil
	default:
		return fmt.Errorf("InvoiceDocument.Scan: unsupported type %T", src)
	}
}

// InvoiceAuditEntry records a review-workflow mutation on an invoice.
type InvoiceAuditEntry struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	TenantID  uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	InvoiceID uuid.UUID       `db:"invoice_id" json:"invoice_id"`
	UserID    *uuid.UUID      `db:"user_id" json:"user_id"`
	Action    string          `db:"action" json:"action"`
	Changes   json.RawMessage `db:"changes" json:"changes"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

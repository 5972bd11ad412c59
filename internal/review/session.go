// Package review holds the working-copy session that orchestrates the
// pure GST engine during interactive invoice editing. A session owns
// an independent copy of one invoice's document; nothing is shared
// between sessions and nothing is persisted until the caller saves.
package review

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"gstdesk/internal/domain"
	"gstdesk/internal/gst"
)

// Session is the editable working copy of a single invoice. Every edit
// runs the full recompute pipeline synchronously: inter-state
// determiner, line recalculation (one line, or all lines when the
// inter-state flag changed), then totals aggregation. Callers never
// observe a document with stale derived fields.
type Session struct {
	invoiceID uuid.UUID
	status    domain.InvoiceStatus
	doc       domain.InvoiceDocument
}

// NewSession opens a working copy over the given invoice. Sessions
// over non-editable invoices can still be read (the review dialog
// shows them read-only) but refuse every mutation.
func NewSession(inv *domain.Invoice) *Session {
	return &Session{
		invoiceID: inv.ID,
		status:    inv.Status,
		doc:       copyDocument(inv.Document),
	}
}

// InvoiceID returns the identifier of the invoice under review.
func (s *Session) InvoiceID() uuid.UUID { return s.invoiceID }

// Status returns the invoice status the session was opened with.
func (s *Session) Status() domain.InvoiceStatus { return s.status }

// Editable reports whether mutations are permitted.
func (s *Session) Editable() bool { return s.status.Editable() }

// Document returns an independent copy of the current working copy.
func (s *Session) Document() domain.InvoiceDocument {
	return copyDocument(s.doc)
}

// InterState reports the current inter-state determination for the
// working copy's seller and buyer state codes.
func (s *Session) InterState() bool {
	return gst.IsInterState(s.doc.Seller.StateCode, s.doc.Buyer.StateCode)
}

func (s *Session) guard() error {
	if !s.Editable() {
		return domain.ErrInvoiceNotEditable
	}
	return nil
}

// SetHeader replaces the header fields. Header metadata does not feed
// the tax computation, so no recompute is needed.
func (s *Session) SetHeader(h domain.InvoiceHeader) error {
	if err := s.guard(); err != nil {
		return err
	}
	s.doc.Header = h
	return nil
}

// SetSeller replaces the seller party. A state-code change can flip
// the inter-state flag, so every line is recomputed.
func (s *Session) SetSeller(p domain.Party) error {
	if err := s.guard(); err != nil {
		return err
	}
	s.doc.Seller = p
	s.recomputeAll()
	return nil
}

// SetBuyer replaces the buyer party and recomputes every line.
func (s *Session) SetBuyer(p domain.Party) error {
	if err := s.guard(); err != nil {
		return err
	}
	s.doc.Buyer = p
	s.recomputeAll()
	return nil
}

// UpdateLineItem replaces the line at index i with the given operator
// inputs, recomputes that line, and re-aggregates the totals.
func (s *Session) UpdateLineItem(i int, item domain.LineItem) error {
	if err := s.guard(); err != nil {
		return err
	}
	if i < 0 || i >= len(s.doc.LineItems) {
		return fmt.Errorf("line item index %d out of range", i)
	}
	s.doc.LineItems[i] = gst.RecalculateLine(item, s.InterState())
	s.aggregate()
	return nil
}

// AddLineItem appends a new line, recomputed, and re-aggregates.
func (s *Session) AddLineItem(item domain.LineItem) error {
	if err := s.guard(); err != nil {
		return err
	}
	s.doc.LineItems = append(s.doc.LineItems, gst.RecalculateLine(item, s.InterState()))
	s.aggregate()
	return nil
}

// RemoveLineItem deletes the line at index i and re-aggregates.
func (s *Session) RemoveLineItem(i int) error {
	if err := s.guard(); err != nil {
		return err
	}
	if i < 0 || i >= len(s.doc.LineItems) {
		return fmt.Errorf("line item index %d out of range", i)
	}
	s.doc.LineItems = append(s.doc.LineItems[:i], s.doc.LineItems[i+1:]...)
	s.aggregate()
	return nil
}

// SetRoundOff replaces the operator-entered round-off and
// re-aggregates the totals.
func (s *Session) SetRoundOff(roundOff decimal.Decimal) error {
	if err := s.guard(); err != nil {
		return err
	}
	s.doc.Totals.RoundOff = roundOff
	s.aggregate()
	return nil
}

// SetCharges replaces the additional charges. Charges are untaxed and
// outside the aggregated totals, so no recompute is needed.
func (s *Session) SetCharges(charges []domain.AdditionalCharge) error {
	if err := s.guard(); err != nil {
		return err
	}
	s.doc.Charges = append([]domain.AdditionalCharge(nil), charges...)
	return nil
}

// SetDiscount replaces the optional discount.
func (s *Session) SetDiscount(d *domain.Discount) error {
	if err := s.guard(); err != nil {
		return err
	}
	if d == nil {
		s.doc.Discount = nil
		return nil
	}
	dc := *d
	s.doc.Discount = &dc
	return nil
}

// ReplaceDocument swaps in a full edited document (as submitted by the
// client on Save) and recomputes every derived field from the operator
// inputs. Client-supplied derived fields are discarded; the engine's
// computation is authoritative.
func (s *Session) ReplaceDocument(doc domain.InvoiceDocument) error {
	if err := s.guard(); err != nil {
		return err
	}
	s.doc = copyDocument(doc)
	s.recomputeAll()
	return nil
}

// recomputeAll runs the full pipeline: determiner, every line, totals.
func (s *Session) recomputeAll() {
	s.doc.LineItems = gst.RecalculateLines(s.doc.LineItems, s.InterState())
	s.aggregate()
}

func (s *Session) aggregate() {
	s.doc.Totals = gst.ComputeTotals(s.doc.LineItems, s.doc.Totals.RoundOff)
}

// Validate checks the working copy before persistence: required header
// fields plus per-line input validation. A non-empty result means Save
// and Approve must be refused without touching the network.
func (s *Session) Validate() []gst.FieldError {
	var errs []gst.FieldError
	if s.doc.Header.InvoiceNumber == "" {
		errs = append(errs, gst.FieldError{Field: "header.invoice_number", Message: "is required"})
	}
	for i, item := range s.doc.LineItems {
		for _, fe := range gst.ValidateLine(item) {
			errs = append(errs, gst.FieldError{
				Field:   fmt.Sprintf("line_items[%d].%s", i, fe.Field),
				Message: fe.Message,
			})
		}
	}
	if s.doc.Discount != nil {
		if s.doc.Discount.Amount.IsNegative() || s.doc.Discount.Percent.IsNegative() {
			errs = append(errs, gst.FieldError{Field: "discount", Message: "must be zero or positive"})
		}
	}
	for i, ch := range s.doc.Charges {
		if ch.Amount.IsNegative() {
			errs = append(errs, gst.FieldError{
				Field:   fmt.Sprintf("additional_charges[%d].amount", i),
				Message: "must be zero or positive",
			})
		}
	}
	return errs
}

// AmountPayable is the display amount: the engine-verified grand total
// plus additional charges minus the discount. Charges and discount are
// kept out of the totals invariant itself.
func (s *Session) AmountPayable() decimal.Decimal {
	payable := s.doc.Totals.GrandTotal
	for _, ch := range s.doc.Charges {
		payable = payable.Add(ch.Amount)
	}
	if d := s.doc.Discount; d != nil {
		payable = payable.Sub(d.Amount)
		if !d.Percent.IsZero() {
			payable = payable.Sub(s.doc.Totals.TaxableAmount.Mul(d.Percent).Div(decimal.NewFromInt(100)))
		}
	}
	return payable
}

func copyDocument(doc domain.InvoiceDocument) domain.InvoiceDocument {
	out := doc
	out.LineItems = append([]domain.LineItem(nil), doc.LineItems...)
	out.Charges = append([]domain.AdditionalCharge(nil), doc.Charges...)
	if doc.Discount != nil {
		d := *doc.Discount
		out.Discount = &d
	}
	return out
}

package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvoiceNotEditable = errors.New("invoice is not in an editable status")
	ErrInvalidTransition  = errors.New("invalid invoice status transition")
	ErrInvalidDocument    = errors.New("invoice document failed validation")
	ErrSavedNotApproved   = errors.New("invoice saved but approval transition failed")
	ErrNoSourceFile       = errors.New("invoice has no source file")
	ErrNothingToExport    = errors.New("no approved invoices matched the export request")
)

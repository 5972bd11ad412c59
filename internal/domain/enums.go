package domain

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// InvoiceStatus is the review-workflow status of an invoice.
type InvoiceStatus string

const (
	StatusPendingUserConfirmation InvoiceStatus = "pending_user_confirmation"
	StatusPendingReview           InvoiceStatus = "pending_review"
	StatusApproved                InvoiceStatus = "approved"
	StatusRejected                InvoiceStatus = "rejected"
	StatusExported                InvoiceStatus = "exported"
)

// ValidStatuses lists every status an invoice row may carry.
var ValidStatuses = map[InvoiceStatus]bool{
	StatusPendingUserConfirmation: true,
	StatusPendingReview:           true,
	StatusApproved:                true,
	StatusRejected:                true,
	StatusExported:                true,
}

// VoucherType classifies the invoice voucher.
type VoucherType string

const (
	VoucherSales       VoucherType = "sales"
	VoucherPurchase    VoucherType = "purchase"
	VoucherCreditNote  VoucherType = "credit_note"
	VoucherDebitNote   VoucherType = "debit_note"
)

// SupplyType classifies the nature of supply on the invoice.
type SupplyType string

const (
	SupplyGoods    SupplyType = "goods"
	SupplyServices SupplyType = "services"
)

// ChargeKind names an additional charge line shown on the invoice.
type ChargeKind string

const (
	ChargeService     ChargeKind = "service"
	ChargeDelivery    ChargeKind = "delivery"
	ChargePackaging   ChargeKind = "packaging"
	ChargeTip         ChargeKind = "tip"
	ChargeConvenience ChargeKind = "convenience"
	ChargeOther       ChargeKind = "other"
)

// AuditAction names a review-workflow mutation recorded in the audit log.
type AuditAction string

const (
	AuditInvoiceSaved        AuditAction = "invoice.saved"
	AuditInvoiceApproved     AuditAction = "invoice.approved"
	AuditInvoiceRejected     AuditAction = "invoice.rejected"
	AuditInvoiceBulkApproved AuditAction = "invoice.bulk_approved"
	AuditInvoiceExported     AuditAction = "invoice.exported"
)

package entity

import "github.com/fixora/auditguard/domain/audit"

// ProductOperations lists the public Product methods that are audited.
type ProductOperations interface {
	TotalSum() (float64, error)
	Sell(units int) error
	Restock(units int) error
}

// AuditedProduct is a Product whose ProductOperations methods append a
// "called method" line before running. Field access is promoted from the
// embedded Product and is logged by the field guards instead. ObjectName,
// Attributes and String are also promoted; they only read state and are
// not audited.
type AuditedProduct struct {
	*Product
	auditor *audit.CallAuditor
}

var _ ProductOperations = (*AuditedProduct)(nil)

// Audit wraps p with its class auditor. It accepts a plain *Product only, so
// an audited product cannot be wrapped a second time.
func Audit(p *Product) *AuditedProduct {
	return &AuditedProduct{
		Product: p,
		auditor: p.class.Auditor(),
	}
}

func (a *AuditedProduct) TotalSum() (float64, error) {
	return audit.Invoke(a.auditor, a.record, audit.Method("TotalSum"), a.Product.TotalSum)
}

func (a *AuditedProduct) Sell(units int) error {
	return audit.Do(a.auditor, a.record, audit.Method("Sell", units), func() error {
		return a.Product.Sell(units)
	})
}

func (a *AuditedProduct) Restock(units int) error {
	return audit.Do(a.auditor, a.record, audit.Method("Restock", units), func() error {
		return a.Product.Restock(units)
	})
}

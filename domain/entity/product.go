package entity

import (
	"fmt"

	"github.com/fixora/auditguard/domain/audit"
	domainerr "github.com/fixora/auditguard/domain/error"
)

const (
	ProductClassName         = "Product"
	DefaultProductObjectName = "UnnamedProduct"
)

// ProductRules holds the bounds of the guarded Product fields
type ProductRules struct {
	Name     audit.TextRules   `yaml:"name"`
	Price    audit.NumberRules `yaml:"price"`
	Quantity audit.CountRules  `yaml:"quantity"`
}

// DefaultProductRules returns the stock Product bounds
func DefaultProductRules() ProductRules {
	return ProductRules{
		Name:     audit.TextRules{MinLength: 3, MaxLength: 50},
		Price:    audit.NumberRules{MinValue: 1, MaxValue: 10000000000000},
		Quantity: audit.CountRules{MinCount: 1, MaxCount: 100000000000},
	}
}

// ProductClass is the defined Product type. Its guards are shared by every
// Product built from it.
type ProductClass struct {
	*audit.Class
	name     *audit.FieldGuard
	price    *audit.FieldGuard
	quantity *audit.FieldGuard
}

// DefineProductClass declares the name, price and quantity fields, in that
// order, against sink.
func DefineProductClass(sink audit.Sink, rules ProductRules) (*ProductClass, error) {
	pc := &ProductClass{
		name:     audit.NewTextGuard(rules.Name),
		price:    audit.NewNumberGuard(rules.Price),
		quantity: audit.NewCountGuard(rules.Quantity),
	}
	class, err := audit.Define(ProductClassName, sink,
		audit.Declare("name", pc.name),
		audit.Declare("price", pc.price),
		audit.Declare("quantity", pc.quantity),
	)
	if err != nil {
		return nil, err
	}
	pc.Class = class
	return pc, nil
}

// New constructs a Product and returns it with every public method audited.
func (pc *ProductClass) New(name string, price float64, quantity int, objName string) (*AuditedProduct, error) {
	p, err := NewProduct(pc, name, price, quantity, objName)
	if err != nil {
		return nil, err
	}
	return Audit(p), nil
}

// Product is a guarded record. Every field write is validated and logged.
type Product struct {
	class  *ProductClass
	record *audit.Record
}

// NewProduct stores the display name, writes each guarded field through its
// guard and logs the initialized attributes. An empty objName falls back to
// DefaultProductObjectName. When a field is rejected the fields written
// before it stay logged and no initialization line is appended.
func NewProduct(class *ProductClass, name string, price float64, quantity int, objName string) (*Product, error) {
	if objName == "" {
		objName = DefaultProductObjectName
	}
	p := &Product{
		class:  class,
		record: class.NewRecord(objName),
	}

	if err := p.SetName(name); err != nil {
		return nil, err
	}
	if err := p.SetPrice(price); err != nil {
		return nil, err
	}
	if err := p.SetQuantity(quantity); err != nil {
		return nil, err
	}

	if err := class.LogInitialized(p.record); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) ObjectName() string {
	return audit.ObjectName(p.record)
}

func (p *Product) Name() string {
	v, _ := audit.ReadAs[string](p.class.name, p.record)
	return v
}

func (p *Product) Price() float64 {
	v, _ := audit.ReadAs[float64](p.class.price, p.record)
	return v
}

func (p *Product) Quantity() int {
	v, _ := audit.ReadAs[int](p.class.quantity, p.record)
	return v
}

func (p *Product) SetName(name string) error {
	return p.class.name.Write(p.record, name)
}

func (p *Product) SetPrice(price float64) error {
	return p.class.price.Write(p.record, price)
}

func (p *Product) SetQuantity(quantity int) error {
	return p.class.quantity.Write(p.record, quantity)
}

// Attributes returns every stored attribute in definition order
func (p *Product) Attributes() []audit.Attribute {
	return p.record.Attributes()
}

// TotalSum returns price multiplied by quantity
func (p *Product) TotalSum() float64 {
	return p.Price() * float64(p.Quantity())
}

// Sell removes units from stock. The new quantity goes through the
// quantity guard, so selling below the minimum fails and changes nothing.
func (p *Product) Sell(units int) error {
	if units <= 0 {
		return domainerr.NewValidationError("units", "Units must be positive, given units: %d", units)
	}
	return p.SetQuantity(p.Quantity() - units)
}

// Restock adds units to stock. units is checked against the headroom left
// under the quantity maximum before adding, so the sum cannot overflow.
func (p *Product) Restock(units int) error {
	if units <= 0 {
		return domainerr.NewValidationError("units", "Units must be positive, given units: %d", units)
	}
	rules, _ := p.class.quantity.Rules().(audit.CountRules)
	current := int64(p.Quantity())
	if int64(units) > rules.MaxCount-current {
		return domainerr.NewValidationError("units", "Units must be at most %d, given units: %d",
			rules.MaxCount-current, units)
	}
	return p.SetQuantity(p.Quantity() + units)
}

func (p *Product) String() string {
	return fmt.Sprintf("%s(name=%s, price=%s, quantity=%d)",
		p.ObjectName(), p.Name(), audit.FormatValue(p.Price()), p.Quantity())
}

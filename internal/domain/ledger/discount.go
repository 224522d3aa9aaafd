package ledger

import "github.com/shopspring/decimal"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountCustom     DiscountType = "custom"
)

var hundred = decimal.NewFromInt(100)

// Discount is a percentage of the transaction total. Both types are computed
// the same way; "custom" carries no separate semantics yet.
type Discount struct {
	kind  DiscountType
	value decimal.Decimal
}

func NewDiscount(kind string, value decimal.Decimal) (*Discount, error) {
	t := DiscountType(kind)
	if t != DiscountPercentage && t != DiscountCustom {
		return nil, ErrInvalidDiscountType
	}
	if value.IsNegative() || value.GreaterThan(hundred) {
		return nil, ErrInvalidDiscountValue
	}
	return &Discount{kind: t, value: value}, nil
}

func (d *Discount) Type() DiscountType     { return d.kind }
func (d *Discount) Value() decimal.Decimal { return d.value }

// IsEmpty reports whether the discount carries no reduction.
func (d *Discount) IsEmpty() bool {
	return d == nil || d.value.IsZero()
}

// AmountOn returns the reduction the discount grants on total.
func (d *Discount) AmountOn(total decimal.Decimal) decimal.Decimal {
	if d.IsEmpty() {
		return decimal.Zero
	}
	return total.Mul(d.value).Div(hundred)
}

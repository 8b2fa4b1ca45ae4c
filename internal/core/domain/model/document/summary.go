package document

import (
	"fmt"
	"strings"

	"docflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Summary carries the pricing totals of a document as decimal text. The engine
// never computes them; a new version copies them verbatim.
type Summary struct {
	totalAmount    string
	discountAmount string
	finalAmount    string
}

func NewSummary(totalAmount, discountAmount, finalAmount string) (Summary, error) {
	s := Summary{
		totalAmount:    defaultAmount(totalAmount),
		discountAmount: defaultAmount(discountAmount),
		finalAmount:    defaultAmount(finalAmount),
	}
	if err := s.Validate(); err != nil {
		return Summary{}, err
	}
	return s, nil
}

func ZeroSummary() Summary {
	return Summary{totalAmount: "0", discountAmount: "0", finalAmount: "0"}
}

func (s Summary) TotalAmount() string    { return s.totalAmount }
func (s Summary) DiscountAmount() string { return s.discountAmount }
func (s Summary) FinalAmount() string    { return s.finalAmount }

// Amounts are stored as numeric(14,2) and quantities as numeric(12,3). Values
// that do not fit are rejected here rather than rounded by the database.
const (
	AmountScale       int32 = 2
	AmountPrecision   int32 = 14
	QuantityScale     int32 = 3
	QuantityPrecision int32 = 12
)

type decimalField struct {
	name      string
	value     string
	scale     int32
	precision int32
}

func amountField(name, value string) decimalField {
	return decimalField{name: name, value: value, scale: AmountScale, precision: AmountPrecision}
}

func quantityField(name, value string) decimalField {
	return decimalField{name: name, value: value, scale: QuantityScale, precision: QuantityPrecision}
}

func (s Summary) Validate() error {
	return validateDecimals(
		amountField("totalAmount", s.totalAmount),
		amountField("discountAmount", s.discountAmount),
		amountField("finalAmount", s.finalAmount),
	)
}

// validateDecimals checks fields in order and reports the first failure.
func validateDecimals(fields ...decimalField) error {
	for _, f := range fields {
		if err := f.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (f decimalField) validate() error {
	d, err := decimal.NewFromString(f.value)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(f.name, fmt.Errorf("%q is not a decimal amount", f.value))
	}
	if !d.Equal(d.Truncate(f.scale)) {
		return errs.NewValueIsInvalidErrorWithCause(f.name,
			fmt.Errorf("%q has more than %d decimal places", f.value, f.scale))
	}
	if d.Abs().GreaterThanOrEqual(decimal.New(1, f.precision-f.scale)) {
		limit := decimal.New(1, f.precision-f.scale).Sub(decimal.New(1, -f.scale))
		return errs.NewValueIsOutOfRangeErrorWithCause(f.name, f.value, limit.Neg().String(), limit.String(),
			fmt.Errorf("%q has more than %d integer digits", f.value, f.precision-f.scale))
	}
	return nil
}

func defaultAmount(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "0"
	}
	return v
}

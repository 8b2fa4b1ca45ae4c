package lifecycle

import (
	"fmt"

	"docflow/internal/pkg/errs"
)

// Category is the document type a status graph belongs to.
type Category string

const (
	CategoryOrder Category = "order"
	CategoryLead  Category = "lead"
	CategoryQuote Category = "quote"
)

// Categories lists every supported category in a stable order.
func Categories() []Category {
	return []Category{CategoryOrder, CategoryLead, CategoryQuote}
}

// ParseCategory converts external input to a Category, rejecting unknown
// values with errs.ErrValueIsInvalid.
//
//	c, err := lifecycle.ParseCategory(ctx.QueryParam("category"))
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (c Category) Validate() error {
	if _, ok := graphs[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%q is not a document category", string(c)))
	}
	return nil
}

// IsVersioned reports whether documents of the category form version lineages.
func (c Category) IsVersioned() bool {
	return c == CategoryQuote
}

func (c Category) String() string {
	return string(c)
}

package commands

import (
	"errors"
	"time"

	"docflow/internal/pkg/errs"
	"docflow/internal/pkg/guard"
)

var ErrSweepExpirationsCommandIsNotConstructed = errors.New(
	"SweepExpirationsCommand must be created via NewSweepExpirationsCommand constructor",
)

// SweepExpirationsCommand expires every quote awaiting the customer whose
// validity deadline is strictly before AsOf.
type SweepExpirationsCommand struct {
	asOf time.Time

	guard guard.ConstructorGuard
}

func NewSweepExpirationsCommand(asOf time.Time) (SweepExpirationsCommand, error) {
	if asOf.IsZero() {
		return SweepExpirationsCommand{}, errs.NewValueIsRequiredError("asOf")
	}
	return SweepExpirationsCommand{
		asOf:  asOf.UTC(),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c SweepExpirationsCommand) Validate() error {
	return c.guard.Validate(ErrSweepExpirationsCommandIsNotConstructed)
}

func (c SweepExpirationsCommand) AsOf() time.Time {
	return c.asOf
}

package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"docflow/internal/core/domain/model/document"
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/core/domain/services"
	"docflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC)

type MockTransitionValidator struct{ mock.Mock }

func (m *MockTransitionValidator) Validate(ctx context.Context, c lifecycle.Category, from, to lifecycle.Status) error {
	args := m.Called(ctx, c, from, to)
	return args.Error(0)
}

func newDoc(t *testing.T, category lifecycle.Category) *document.Document {
	t.Helper()
	scope, err := kernel.NewTenantScope(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)
	d, err := document.NewDocument(kernel.NewUUID(), scope, category, "N-1", "title", document.ZeroSummary(), nil, now)
	require.NoError(t, err)
	return d
}

func TestTransitionGuard_Apply(t *testing.T) {
	ctx := t.Context()
	guard := services.NewTransitionGuard(nil)
	actor := kernel.NewUUID()

	t.Run("should apply a legal order transition", func(t *testing.T) {
		doc := newDoc(t, lifecycle.CategoryOrder)

		from, err := guard.Apply(ctx, doc, lifecycle.OrderPendingTracking, services.TransitionFacts{}, actor, now)

		require.NoError(t, err)
		assert.Equal(t, lifecycle.OrderPendingAssignment, from)
		assert.Equal(t, lifecycle.OrderPendingTracking, doc.Status())
	})

	t.Run("should keep status when the edge is missing", func(t *testing.T) {
		doc := newDoc(t, lifecycle.CategoryOrder)

		_, err := guard.Apply(ctx, doc, lifecycle.OrderCompleted, services.TransitionFacts{}, actor, now)

		var notAllowed *errs.TransitionNotAllowedError
		require.ErrorAs(t, err, &notAllowed)
		assert.Equal(t, "pending_assignment", notAllowed.From)
		assert.Equal(t, lifecycle.OrderPendingAssignment, doc.Status())
	})

	t.Run("should refuse to submit an empty quote", func(t *testing.T) {
		doc := newDoc(t, lifecycle.CategoryQuote)

		_, err := guard.Apply(ctx, doc, lifecycle.QuotePendingApproval, services.TransitionFacts{LineItemCount: 0}, actor, now)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, lifecycle.QuoteDraft, doc.Status())
	})

	t.Run("should submit a quote with items", func(t *testing.T) {
		doc := newDoc(t, lifecycle.CategoryQuote)

		_, err := guard.Apply(ctx, doc, lifecycle.QuotePendingApproval, services.TransitionFacts{LineItemCount: 3}, actor, now)

		require.NoError(t, err)
		assert.Equal(t, lifecycle.QuotePendingApproval, doc.Status())
	})
}

func TestTransitionGuard_UsesInjectedValidator(t *testing.T) {
	ctx := t.Context()
	validator := new(MockTransitionValidator)
	denied := errs.NewTransitionNotAllowedError("lead", "pending_assignment", "pending_followup")
	validator.On("Validate", ctx, lifecycle.CategoryLead, lifecycle.LeadPendingAssignment, lifecycle.LeadPendingFollowup).
		Return(denied).Once()
	guard := services.NewTransitionGuard(validator)
	doc := newDoc(t, lifecycle.CategoryLead)

	err := guard.Check(ctx, doc, lifecycle.LeadPendingFollowup, services.TransitionFacts{})

	require.ErrorIs(t, err, denied)
	validator.AssertExpectations(t)
}

func TestTransitionGuard_Require(t *testing.T) {
	ctx := t.Context()
	guard := services.NewTransitionGuard(services.GraphValidator{})
	errNoOwner := errors.New("lead has no owner")
	guard.Require(lifecycle.CategoryLead, lifecycle.LeadPendingFollowup, func(*document.Document, services.TransitionFacts) error {
		return errNoOwner
	})
	doc := newDoc(t, lifecycle.CategoryLead)

	_, err := guard.Apply(ctx, doc, lifecycle.LeadPendingFollowup, services.TransitionFacts{}, kernel.NewUUID(), now)

	require.ErrorIs(t, err, errNoOwner)
	assert.Equal(t, lifecycle.LeadPendingAssignment, doc.Status())

	_, err = guard.Apply(ctx, doc, lifecycle.LeadInvalid, services.TransitionFacts{}, kernel.NewUUID(), now)
	require.NoError(t, err, "other targets are unaffected")
}

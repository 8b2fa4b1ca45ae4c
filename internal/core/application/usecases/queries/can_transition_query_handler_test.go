package queries_test

import (
	"testing"

	"docflow/internal/core/application/usecases/queries"
	"docflow/internal/core/domain/model/lifecycle"
	"docflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionQueryHandler_Handle(t *testing.T) {
	tests := []struct {
		name     string
		category lifecycle.Category
		from     lifecycle.Status
		to       lifecycle.Status
		allowed  bool
	}{
		{"quote submit", lifecycle.CategoryQuote, lifecycle.QuoteDraft, lifecycle.QuotePendingApproval, true},
		{"quote skips approval", lifecycle.CategoryQuote, lifecycle.QuoteDraft, lifecycle.QuoteAccepted, false},
		{"order shipped to completed", lifecycle.CategoryOrder, lifecycle.OrderShipped, lifecycle.OrderCompleted, false},
		{"order exception to cancelled", lifecycle.CategoryOrder, lifecycle.OrderException, lifecycle.OrderCancelled, true},
		{"lead won is final", lifecycle.CategoryLead, lifecycle.LeadWon, lifecycle.LeadVoid, false},
	}

	handler := queries.NewCanTransitionQueryHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, err := queries.NewCanTransitionQuery(tt.category, tt.from, tt.to)
			require.NoError(t, err)

			resp, err := handler.Handle(t.Context(), query)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, resp.Allowed)
			if tt.allowed {
				assert.Contains(t, resp.Successors, tt.to)
			}
		})
	}
}

func TestCanTransitionQueryHandler_Successors(t *testing.T) {
	query, err := queries.NewCanTransitionQuery(lifecycle.CategoryQuote, lifecycle.QuotePendingCustomer, lifecycle.QuoteExpired)
	require.NoError(t, err)

	resp, err := queries.NewCanTransitionQueryHandler().Handle(t.Context(), query)
	require.NoError(t, err)
	assert.Equal(t, []lifecycle.Status{lifecycle.QuoteAccepted, lifecycle.QuoteRejected, lifecycle.QuoteExpired}, resp.Successors)
}

func TestNewCanTransitionQuery_UnknownCategory(t *testing.T) {
	_, err := queries.NewCanTransitionQuery("invoice", "draft", "sent")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = queries.NewCanTransitionQueryHandler().Handle(t.Context(), queries.CanTransitionQuery{})
	require.ErrorIs(t, err, queries.ErrCanTransitionQueryIsNotConstructed)
}

func TestNewCanTransitionQuery_UnknownStatus(t *testing.T) {
	tests := []struct {
		name     string
		category lifecycle.Category
		from     lifecycle.Status
		to       lifecycle.Status
	}{
		{"unknown from", lifecycle.CategoryOrder, "bogus", lifecycle.OrderCompleted},
		{"unknown to", lifecycle.CategoryQuote, lifecycle.QuoteDraft, "archived"},
		{"status of another category", lifecycle.CategoryLead, lifecycle.QuoteDraft, lifecycle.LeadWon},
		{"empty from", lifecycle.CategoryQuote, "", lifecycle.QuoteDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := queries.NewCanTransitionQuery(tt.category, tt.from, tt.to)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
			assert.True(t, errs.IsValidationFailed(err))
		})
	}
}

package lifecycle

var graphs = map[Category]*Graph{
	CategoryOrder: newGraph(CategoryOrder, orderStatuses, orderRows),
	CategoryLead:  newGraph(CategoryLead, leadStatuses, leadRows),
	CategoryQuote: newGraph(CategoryQuote, quoteStatuses, quoteRows),
}

var orderStatuses = []Status{
	OrderPendingAssignment, OrderPendingTracking, OrderTracking, OrderDraftSigned, OrderExpired,
	OrderPendingMeasurement, OrderMeasuringPendingAssignment, OrderMeasuringAssigning,
	OrderMeasuringPendingVisit, OrderMeasuringPendingConfirmation, OrderPlanPendingConfirmation,
	OrderPendingPush, OrderPendingOrder, OrderInProduction, OrderStockPrepared, OrderPendingShipment, OrderShipped,
	OrderInstallingPendingAssignment, OrderInstallingAssigning, OrderInstallingPendingVisit,
	OrderInstallingPendingConfirmation, OrderDelivered,
	OrderPendingReconciliation, OrderPendingInvoice, OrderPendingPayment, OrderCompleted,
	OrderCancelled, OrderSuspended, OrderException,
}

// Cancel is reachable from every non-terminal order status. Suspend is reachable
// from measurement onwards; exception from the production states and from
// suspended. Neither side branch re-enters the main line.
var orderRows = []row{
	{OrderPendingAssignment, []Status{OrderPendingTracking, OrderCancelled, OrderExpired}},
	{OrderPendingTracking, []Status{OrderTracking, OrderCancelled, OrderExpired}},
	{OrderTracking, []Status{OrderDraftSigned, OrderCancelled, OrderExpired}},
	{OrderDraftSigned, []Status{OrderPendingMeasurement, OrderCancelled, OrderExpired}},

	{OrderPendingMeasurement, []Status{OrderMeasuringPendingAssignment, OrderCancelled, OrderSuspended}},
	{OrderMeasuringPendingAssignment, []Status{OrderMeasuringAssigning, OrderCancelled, OrderSuspended}},
	{OrderMeasuringAssigning, []Status{
		OrderMeasuringPendingVisit, OrderMeasuringPendingAssignment, OrderCancelled, OrderSuspended,
	}},
	{OrderMeasuringPendingVisit, []Status{OrderMeasuringPendingConfirmation, OrderCancelled, OrderSuspended}},
	{OrderMeasuringPendingConfirmation, []Status{
		OrderPlanPendingConfirmation, OrderMeasuringPendingAssignment, OrderCancelled, OrderSuspended,
	}},
	{OrderPlanPendingConfirmation, []Status{
		OrderPendingPush, OrderMeasuringPendingConfirmation, OrderCancelled, OrderSuspended,
	}},

	{OrderPendingPush, []Status{OrderPendingOrder, OrderCancelled, OrderSuspended}},
	{OrderPendingOrder, []Status{OrderInProduction, OrderCancelled, OrderSuspended}},
	{OrderInProduction, []Status{OrderStockPrepared, OrderCancelled, OrderSuspended, OrderException}},
	{OrderStockPrepared, []Status{OrderPendingShipment, OrderCancelled, OrderSuspended, OrderException}},
	{OrderPendingShipment, []Status{OrderShipped, OrderCancelled, OrderSuspended, OrderException}},
	{OrderShipped, []Status{OrderInstallingPendingAssignment, OrderCancelled, OrderSuspended}},

	{OrderInstallingPendingAssignment, []Status{OrderInstallingAssigning, OrderCancelled, OrderSuspended}},
	{OrderInstallingAssigning, []Status{
		OrderInstallingPendingVisit, OrderInstallingPendingAssignment, OrderCancelled, OrderSuspended,
	}},
	{OrderInstallingPendingVisit, []Status{OrderInstallingPendingConfirmation, OrderCancelled, OrderSuspended}},
	{OrderInstallingPendingConfirmation, []Status{
		OrderDelivered, OrderInstallingPendingVisit, OrderCancelled, OrderSuspended,
	}},
	{OrderDelivered, []Status{OrderPendingReconciliation, OrderCancelled, OrderSuspended}},

	{OrderPendingReconciliation, []Status{OrderPendingInvoice, OrderCancelled, OrderSuspended}},
	{OrderPendingInvoice, []Status{OrderPendingPayment, OrderCancelled, OrderSuspended}},
	{OrderPendingPayment, []Status{OrderCompleted, OrderCancelled, OrderSuspended}},

	{OrderSuspended, []Status{OrderException, OrderCancelled}},
	{OrderException, []Status{OrderCancelled}},
}

var leadStatuses = []Status{
	LeadPendingAssignment, LeadPendingFollowup, LeadFollowingUp, LeadWon, LeadInvalid, LeadVoid,
}

var leadRows = []row{
	{LeadPendingAssignment, []Status{LeadPendingFollowup, LeadInvalid, LeadVoid}},
	{LeadPendingFollowup, []Status{LeadFollowingUp, LeadPendingAssignment, LeadInvalid, LeadVoid}},
	{LeadFollowingUp, []Status{LeadWon, LeadInvalid, LeadVoid}},
}

var quoteStatuses = []Status{
	QuoteDraft, QuotePendingApproval, QuotePendingCustomer, QuoteAccepted, QuoteRejected, QuoteLocked, QuoteExpired,
}

// A locked quote accepts no transition; edits fork a new version instead.
var quoteRows = []row{
	{QuoteDraft, []Status{QuotePendingApproval}},
	{QuotePendingApproval, []Status{QuotePendingCustomer, QuoteRejected}},
	{QuotePendingCustomer, []Status{QuoteAccepted, QuoteRejected, QuoteExpired}},
	{QuoteAccepted, []Status{QuoteLocked}},
}

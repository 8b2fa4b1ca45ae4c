package lifecycle

// Status is a state name within one category's graph. The same name may exist in
// several categories with unrelated meaning.
type Status string

func (s Status) String() string {
	return string(s)
}

// Order statuses, from lead intake through financial close.
const (
	OrderPendingAssignment Status = "pending_assignment"
	OrderPendingTracking   Status = "pending_tracking"
	OrderTracking          Status = "tracking"
	OrderDraftSigned       Status = "draft_signed"
	OrderExpired           Status = "expired"

	OrderPendingMeasurement           Status = "pending_measurement"
	OrderMeasuringPendingAssignment   Status = "measuring_pending_assignment"
	OrderMeasuringAssigning           Status = "measuring_assigning"
	OrderMeasuringPendingVisit        Status = "measuring_pending_visit"
	OrderMeasuringPendingConfirmation Status = "measuring_pending_confirmation"
	OrderPlanPendingConfirmation      Status = "plan_pending_confirmation"

	OrderPendingPush     Status = "pending_push"
	OrderPendingOrder    Status = "pending_order"
	OrderInProduction    Status = "in_production"
	OrderStockPrepared   Status = "stock_prepared"
	OrderPendingShipment Status = "pending_shipment"
	OrderShipped         Status = "shipped"

	OrderInstallingPendingAssignment   Status = "installing_pending_assignment"
	OrderInstallingAssigning           Status = "installing_assigning"
	OrderInstallingPendingVisit        Status = "installing_pending_visit"
	OrderInstallingPendingConfirmation Status = "installing_pending_confirmation"
	OrderDelivered                     Status = "delivered"

	OrderPendingReconciliation Status = "pending_reconciliation"
	OrderPendingInvoice        Status = "pending_invoice"
	OrderPendingPayment        Status = "pending_payment"
	OrderCompleted             Status = "completed"

	OrderCancelled Status = "cancelled"
	OrderSuspended Status = "suspended"
	OrderException Status = "exception"
)

// Lead statuses.
const (
	LeadPendingAssignment Status = "pending_assignment"
	LeadPendingFollowup   Status = "pending_followup"
	LeadFollowingUp       Status = "following_up"
	LeadWon               Status = "won"
	LeadInvalid           Status = "invalid"
	LeadVoid              Status = "void"
)

// Quote statuses.
const (
	QuoteDraft           Status = "draft"
	QuotePendingApproval Status = "pending_approval"
	QuotePendingCustomer Status = "pending_customer"
	QuoteAccepted        Status = "accepted"
	QuoteRejected        Status = "rejected"
	QuoteLocked          Status = "locked"
	QuoteExpired         Status = "expired"
)

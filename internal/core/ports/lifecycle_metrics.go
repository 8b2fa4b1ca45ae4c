package ports

import "docflow/internal/core/domain/model/lifecycle"

// LifecycleMetrics counts committed lifecycle changes. Handlers call it only
// after a successful commit, except InvariantViolated which counts rollbacks.
type LifecycleMetrics interface {
	TransitionApplied(category lifecycle.Category, to lifecycle.Status)
	VersionCreated()
	VersionActivated()
	DocumentsExpired(n int)
	InvariantViolated()
}

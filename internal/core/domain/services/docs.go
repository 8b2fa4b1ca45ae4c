// Package services holds the domain services of the lifecycle engine:
//
//   - TransitionGuard: the single gate every status change passes through
//   - VersionCloner: the two-phase structural copy that forks a quote version
//
// Both are pure; persistence and transactions belong to the application layer.
package services

// Package kernel holds value objects shared by every aggregate of the lifecycle
// engine: identifiers and the tenant scope that bounds every read and write.
package kernel

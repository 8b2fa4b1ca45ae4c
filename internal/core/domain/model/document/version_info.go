package document

import (
	"docflow/internal/core/domain/model/kernel"
	"docflow/internal/pkg/errs"
)

// VersionInfo places a quote inside its lineage. Every lineage has exactly one
// active version outside of an in-flight transaction.
type VersionInfo struct {
	version         int
	lineageRootID   kernel.UUID
	parentVersionID *kernel.UUID
	isActive        bool
}

// RestoreVersionInfo rebuilds version metadata read from storage.
func RestoreVersionInfo(version int, lineageRootID kernel.UUID, parentVersionID *kernel.UUID, isActive bool) (VersionInfo, error) {
	v := VersionInfo{
		version:         version,
		lineageRootID:   lineageRootID,
		parentVersionID: parentVersionID,
		isActive:        isActive,
	}
	if err := v.Validate(); err != nil {
		return VersionInfo{}, err
	}
	return v, nil
}

func rootVersionInfo(id kernel.UUID) VersionInfo {
	return VersionInfo{
		version:       1,
		lineageRootID: id,
		isActive:      true,
	}
}

func (v VersionInfo) Version() int                  { return v.version }
func (v VersionInfo) LineageRootID() kernel.UUID    { return v.lineageRootID }
func (v VersionInfo) ParentVersionID() *kernel.UUID { return v.parentVersionID }
func (v VersionInfo) IsActive() bool                { return v.isActive }
func (v VersionInfo) IsRoot() bool                  { return v.parentVersionID == nil }

func (v VersionInfo) Validate() error {
	if v.version < 1 {
		return errs.NewValueIsOutOfRangeError("version", v.version, 1, "unbounded")
	}
	if err := v.lineageRootID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("lineageRootId", err)
	}
	if v.parentVersionID != nil {
		if err := v.parentVersionID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("parentVersionId", err)
		}
		if v.version == 1 {
			return errs.NewValueIsInvalidError("version 1 cannot have a parent version")
		}
	}
	return nil
}

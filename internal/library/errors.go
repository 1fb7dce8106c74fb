package library

import (
	"errors"
	"fmt"

	"github.com/enyojs/enyo-dev/internal/platform"
)

var (
	// ErrPlanningRejected is matched by every *PlanningRejection.
	ErrPlanningRejected = errors.New("library rejected during planning")

	// ErrLinkTargetMissing is returned when the shared checkout a link would
	// point at does not exist.
	ErrLinkTargetMissing = errors.New("link target missing")

	// ErrNoFetcher is returned when a copy is planned but no fetcher is set.
	ErrNoFetcher = errors.New("no library fetcher configured")

	errSlotChanged = errors.New("library slot changed since planning")
)

// FilesystemError is a filesystem failure during resolution.
type FilesystemError = platform.Error

// PlanningRejection is the error carried by outcomes of rejected plan items.
type PlanningRejection struct {
	Name   string
	Reason string
}

func (e *PlanningRejection) Error() string {
	switch e.Reason {
	case ReasonDirectoryProtected:
		return fmt.Sprintf("%s: not linking over existing directory in safe mode (%s)", e.Name, e.Reason)
	default:
		return fmt.Sprintf("%s: %s", e.Name, e.Reason)
	}
}

func (e *PlanningRejection) Is(target error) bool { return target == ErrPlanningRejected }

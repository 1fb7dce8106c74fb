package library

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/enyojs/enyo-dev/internal/platform"
)

// Resolver materializes plan items inside a project's library directory.
type Resolver struct {
	LibRoot  string  // directory holding the library slots
	LinksDir string  // shared directory of linkable checkouts
	Fetcher  Fetcher // used for InstallCopy
}

// Resolve executes item and reports its outcome. Skip and Reject never touch
// the filesystem.
func (r *Resolver) Resolve(ctx context.Context, item PlanItem) Outcome {
	out := Outcome{Name: item.Name, Action: item.Action}

	switch item.Action {
	case Skip:
	case Reject:
		out.Err = &PlanningRejection{Name: item.Name, Reason: item.Reason}
	case InstallCopy:
		out.Err = r.install(ctx, item)
	case CreateLink:
		out.Err = r.link(item)
	default:
		out.Err = fmt.Errorf("%s: unknown action %d", item.Name, item.Action)
	}

	return out
}

// SlotPath returns the path of name's library slot.
func (r *Resolver) SlotPath(name string) string {
	return filepath.Join(r.LibRoot, name)
}

// LinkSource returns the shared checkout a link for name points at.
func (r *Resolver) LinkSource(name string) string {
	return filepath.Join(r.LinksDir, name)
}

func (r *Resolver) install(ctx context.Context, item PlanItem) error {
	if r.Fetcher == nil {
		return fmt.Errorf("installing %s: %w", item.Name, ErrNoFetcher)
	}
	if err := r.Fetcher.FetchAndInstall(ctx, item.Name, r.SlotPath(item.Name)); err != nil {
		return fmt.Errorf("installing %s: %w", item.Name, err)
	}
	return nil
}

func (r *Resolver) link(item PlanItem) error {
	source := r.LinkSource(item.Name)
	slot := r.SlotPath(item.Name)

	ok, err := platform.Exists(source)
	if err != nil {
		return fmt.Errorf("linking %s: %w", item.Name, err)
	}
	if !ok {
		return fmt.Errorf("linking %s: %w: %s", item.Name, ErrLinkTargetMissing, source)
	}

	current, err := platform.Inspect(slot)
	if err != nil {
		return fmt.Errorf("linking %s: %w", item.Name, err)
	}

	switch current {
	case platform.SymbolicLink:
		if platform.SameTarget(slot, source) {
			return nil
		}
		if err := platform.RemoveSymlink(slot); err != nil {
			return fmt.Errorf("linking %s: %w", item.Name, err)
		}
	case platform.Directory:
		// Removal was only cleared by planning if the directory was seen there.
		if item.Entry != platform.Directory {
			return fmt.Errorf("linking %s: %w", item.Name, &FilesystemError{Op: "link", Path: slot, Err: errSlotChanged})
		}
		if err := platform.RemoveDirectory(slot); err != nil {
			return fmt.Errorf("linking %s: %w", item.Name, err)
		}
	}

	if err := platform.CreateSymlink(source, slot); err != nil {
		return fmt.Errorf("linking %s: %w", item.Name, err)
	}
	return nil
}

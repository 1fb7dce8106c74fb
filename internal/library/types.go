package library

import (
	"context"

	"github.com/enyojs/enyo-dev/internal/platform"
)

// Mode is how a library was requested.
type Mode int

const (
	// Plain is an ordinary dependency materialized as a local copy.
	Plain Mode = iota
	// Linked is an explicitly requested link.
	Linked
	// LinkedViaAll is a link inherited from the link-all-libs setting.
	LinkedViaAll
)

func (m Mode) String() string {
	switch m {
	case Plain:
		return "plain"
	case Linked:
		return "linked"
	case LinkedViaAll:
		return "linked-via-all"
	default:
		return "unknown"
	}
}

// IsLink reports whether the mode asks for a symbolic link.
func (m Mode) IsLink() bool { return m == Linked || m == LinkedViaAll }

// Action is the decision taken for one library.
type Action int

const (
	Skip Action = iota
	InstallCopy
	CreateLink
	Reject
)

func (a Action) String() string {
	switch a {
	case Skip:
		return "skip"
	case InstallCopy:
		return "install"
	case CreateLink:
		return "link"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

// Rejection reasons produced by planning.
const (
	ReasonDirectoryProtected = "existing-directory-protected"
	ReasonInvalidName        = "invalid-library-name"
	ReasonInspectFailed      = "inspect-failed"
)

// PlanItem is the decided action for one library.
type PlanItem struct {
	Name   string
	Mode   Mode
	Entry  platform.EntryKind // state of the library slot at planning time
	Action Action
	Reason string // set when Action is Reject
}

// Plan is the ordered set of decisions for one invocation. Every effective
// library appears in Items exactly once, in load order.
type Plan struct {
	Items       []PlanItem
	Libraries   []string // effective library set
	Links       []string // effective explicit link directives
	LinkAllLibs bool     // resolved link-all-libs setting
}

// Len returns the number of planned libraries.
func (p *Plan) Len() int { return len(p.Items) }

// Names returns the planned library names in plan order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.Items))
	for i, item := range p.Items {
		names[i] = item.Name
	}
	return names
}

// Item returns the plan item for name.
func (p *Plan) Item(name string) (PlanItem, bool) {
	for _, item := range p.Items {
		if item.Name == name {
			return item, true
		}
	}
	return PlanItem{}, false
}

// Outcome is the settled result of resolving one plan item.
// A nil Err means the item was fulfilled.
type Outcome struct {
	Name   string
	Action Action
	Err    error
}

// Fulfilled reports whether the outcome succeeded.
func (o Outcome) Fulfilled() bool { return o.Err == nil }

// Fetcher materializes a library as a local copy at target.
type Fetcher interface {
	FetchAndInstall(ctx context.Context, name, target string) error
}

// ItemResolver executes one plan item.
type ItemResolver interface {
	Resolve(ctx context.Context, item PlanItem) Outcome
}

package library

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/enyojs/enyo-dev/internal/platform"
)

// Request holds the per-invocation library directives. A nil slice means the
// option was not given; a nil LinkAllLibs means the flag was not set.
type Request struct {
	Libraries   []string
	Links       []string
	LinkAllLibs *bool
	Safe        bool
	// Save makes requested links replace the persisted ones instead of
	// being merged into them.
	Save bool
}

// State is the library configuration persisted for the project.
type State struct {
	Libraries   []string
	Links       []string
	LinkAllLibs bool
}

// Inspector reports what currently occupies a library's slot.
type Inspector interface {
	Inspect(name string) (platform.EntryKind, error)
}

// InspectorFunc adapts a function to the Inspector interface.
type InspectorFunc func(name string) (platform.EntryKind, error)

// Inspect calls f(name).
func (f InspectorFunc) Inspect(name string) (platform.EntryKind, error) { return f(name) }

// DirInspector inspects library slots below a library root directory.
type DirInspector struct {
	Root string
}

// Inspect reports the state of Root/name.
func (d DirInspector) Inspect(name string) (platform.EntryKind, error) {
	return platform.Inspect(filepath.Join(d.Root, name))
}

// Selection is the effective library configuration of one invocation.
type Selection struct {
	Libraries   []string
	Links       []string
	LinkAllLibs bool
}

// Select merges the request into the persisted state. Requested libraries
// replace the persisted ones. Requested links are appended to the persisted
// links unless req.Save is set, in which case they replace them. Names are
// deduplicated keeping the first occurrence and every link is also a library.
func Select(req Request, state State) Selection {
	libraries := state.Libraries
	if req.Libraries != nil {
		libraries = req.Libraries
	}
	links := state.Links
	if req.Links != nil {
		if req.Save {
			links = req.Links
		} else {
			links = append(append([]string(nil), state.Links...), req.Links...)
		}
	}
	linkAll := state.LinkAllLibs
	if req.LinkAllLibs != nil {
		linkAll = *req.LinkAllLibs
	}

	libraries = dedupe(libraries)
	links = dedupe(links)

	// Explicit links imply membership.
	seen := make(map[string]bool, len(libraries))
	for _, name := range libraries {
		seen[name] = true
	}
	for _, name := range links {
		if !seen[name] {
			seen[name] = true
			libraries = append(libraries, name)
		}
	}

	return Selection{Libraries: libraries, Links: links, LinkAllLibs: linkAll}
}

// BuildPlan decides, for every effective library, whether it is copied,
// linked, left untouched or rejected. It performs no mutation and returns the
// same plan for the same inputs and filesystem state.
func BuildPlan(req Request, state State, inspector Inspector) *Plan {
	sel := Select(req, state)
	libraries, links, linkAll := sel.Libraries, sel.Links, sel.LinkAllLibs

	explicit := make(map[string]bool, len(links))
	for _, name := range links {
		explicit[name] = true
	}

	plan := &Plan{
		Items:       make([]PlanItem, 0, len(libraries)),
		Libraries:   libraries,
		Links:       links,
		LinkAllLibs: linkAll,
	}

	for _, name := range libraries {
		mode := Plain
		switch {
		case explicit[name]:
			mode = Linked
		case linkAll:
			mode = LinkedViaAll
		}
		plan.Items = append(plan.Items, planItem(name, mode, req.Safe, inspector))
	}

	return plan
}

func planItem(name string, mode Mode, safe bool, inspector Inspector) PlanItem {
	item := PlanItem{Name: name, Mode: mode}

	if !validName(name) {
		item.Action = Reject
		item.Reason = ReasonInvalidName
		return item
	}

	entry, err := inspector.Inspect(name)
	if err != nil {
		item.Action = Reject
		item.Reason = fmt.Sprintf("%s: %v", ReasonInspectFailed, err)
		return item
	}
	item.Entry = entry

	if !mode.IsLink() {
		if entry == platform.Absent {
			item.Action = InstallCopy
		} else {
			item.Action = Skip
		}
		return item
	}

	// Only an ordinary directory holds local content a link would destroy.
	if entry == platform.Directory && safe {
		item.Action = Reject
		item.Reason = ReasonDirectoryProtected
		return item
	}
	item.Action = CreateLink
	return item
}

// validName rejects names that would escape the library directory.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// dedupe returns names without empty entries and repeated names, keeping the
// first occurrence. A nil input stays nil.
func dedupe(names []string) []string {
	if names == nil {
		return nil
	}
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// PrintPlan prints one line per planned library.
func PrintPlan(w io.Writer, plan *Plan) {
	if plan.Len() == 0 {
		fmt.Fprintln(w, "  No libraries to resolve.")
		return
	}
	for _, item := range plan.Items {
		label := fmt.Sprintf("%-8s %s", item.Action, item.Name)
		switch {
		case item.Action == Reject:
			label += fmt.Sprintf(" (%s)", item.Reason)
		case item.Mode != Plain:
			label += fmt.Sprintf(" (%s, currently %s)", item.Mode, item.Entry)
		case item.Action == Skip:
			label += " (already present)"
		}
		fmt.Fprintf(w, "  %s\n", label)
	}
}

package library

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/enyojs/enyo-dev/internal/platform"
	"go.uber.org/goleak"
)

// resolverFunc adapts a function to ItemResolver.
type resolverFunc func(ctx context.Context, item PlanItem) Outcome

func (f resolverFunc) Resolve(ctx context.Context, item PlanItem) Outcome { return f(ctx, item) }

func planOf(names ...string) *Plan {
	plan := &Plan{}
	for _, n := range names {
		plan.Items = append(plan.Items, PlanItem{Name: n, Action: InstallCopy})
	}
	return plan
}

func TestRunPreservesPlanOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	plan := planOf(names...)

	// Earlier items finish last.
	resolver := resolverFunc(func(ctx context.Context, item PlanItem) Outcome {
		idx := strings.Index("abcdefgh", item.Name)
		time.Sleep(time.Duration(len(names)-idx) * 5 * time.Millisecond)
		return Outcome{Name: item.Name}
	})

	outcomes := Run(context.Background(), plan, resolver, 0)

	if len(outcomes) != len(names) {
		t.Fatalf("expected %d outcomes, got %d", len(names), len(outcomes))
	}
	for i, o := range outcomes {
		if o.Name != names[i] {
			t.Errorf("outcome %d: got %s, want %s", i, o.Name, names[i])
		}
	}
}

func TestRunSettlesAll(t *testing.T) {
	defer goleak.VerifyNone(t)

	plan := planOf("ui", "layout", "enyo")
	var calls int32
	resolver := resolverFunc(func(ctx context.Context, item PlanItem) Outcome {
		atomic.AddInt32(&calls, 1)
		if item.Name == "ui" {
			return Outcome{Err: errors.New("fetch failed")}
		}
		time.Sleep(10 * time.Millisecond)
		return Outcome{}
	})

	outcomes := Run(context.Background(), plan, resolver, 0)

	if atomic.LoadInt32(&calls) != 3 {
		t.Errorf("expected all 3 items to run, got %d", calls)
	}
	if outcomes[0].Fulfilled() {
		t.Error("expected ui to be rejected")
	}
	if !outcomes[1].Fulfilled() || !outcomes[2].Fulfilled() {
		t.Errorf("expected layout and enyo to be fulfilled, got %+v", outcomes)
	}
	if failed := Rejected(outcomes); len(failed) != 1 || failed[0].Name != "ui" {
		t.Errorf("unexpected rejected set %+v", failed)
	}
}

func TestRunRecoversPanics(t *testing.T) {
	defer goleak.VerifyNone(t)

	plan := planOf("ok", "boom")
	resolver := resolverFunc(func(ctx context.Context, item PlanItem) Outcome {
		if item.Name == "boom" {
			panic("unexpected state")
		}
		return Outcome{}
	})

	outcomes := Run(context.Background(), plan, resolver, 0)

	if !outcomes[0].Fulfilled() {
		t.Errorf("expected ok to be fulfilled, got %v", outcomes[0].Err)
	}
	if outcomes[1].Fulfilled() || !strings.Contains(outcomes[1].Err.Error(), "unexpected state") {
		t.Errorf("expected panic to become a rejection, got %v", outcomes[1].Err)
	}
	if outcomes[1].Name != "boom" || outcomes[1].Action != InstallCopy {
		t.Errorf("expected panic outcome to keep its identity, got %+v", outcomes[1])
	}
}

func TestRunRespectsLimit(t *testing.T) {
	defer goleak.VerifyNone(t)

	var names []string
	for i := 0; i < 12; i++ {
		names = append(names, fmt.Sprintf("lib%d", i))
	}
	plan := planOf(names...)

	var mu sync.Mutex
	running, peak := 0, 0
	resolver := resolverFunc(func(ctx context.Context, item PlanItem) Outcome {
		mu.Lock()
		running++
		if running > peak {
			peak = running
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		running--
		mu.Unlock()
		return Outcome{}
	})

	Run(context.Background(), plan, resolver, 3)

	if peak > 3 {
		t.Errorf("expected at most 3 concurrent resolutions, saw %d", peak)
	}
}

func TestRunRunsConcurrently(t *testing.T) {
	defer goleak.VerifyNone(t)

	plan := planOf("a", "b", "c", "d")
	start := make(chan struct{})
	var waiting int32
	resolver := resolverFunc(func(ctx context.Context, item PlanItem) Outcome {
		// Every item blocks until all of them have started.
		if atomic.AddInt32(&waiting, 1) == 4 {
			close(start)
		}
		select {
		case <-start:
			return Outcome{}
		case <-time.After(2 * time.Second):
			return Outcome{Err: errors.New("items did not run concurrently")}
		}
	})

	for _, o := range Run(context.Background(), plan, resolver, 0) {
		if !o.Fulfilled() {
			t.Fatal(o.Err)
		}
	}
}

func TestRunEmptyPlan(t *testing.T) {
	outcomes := Run(context.Background(), &Plan{}, resolverFunc(func(ctx context.Context, item PlanItem) Outcome {
		t.Error("resolver must not be called")
		return Outcome{}
	}), 0)

	if len(outcomes) != 0 {
		t.Errorf("expected no outcomes, got %d", len(outcomes))
	}
}

// TestRunMixedPlan covers one fetch failure, one success, one rejection and
// one link against a real library directory.
func TestRunMixedPlan(t *testing.T) {
	defer goleak.VerifyNone(t)

	tmp := t.TempDir()
	libRoot := filepath.Join(tmp, "lib")
	linksDir := filepath.Join(tmp, "links")
	if err := os.MkdirAll(filepath.Join(linksDir, "moonstone"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(libRoot, "spotlight"), 0755); err != nil {
		t.Fatal(err)
	}

	fetcher := &fakeFetcher{fail: map[string]error{"ui": errors.New("network unreachable")}}
	resolver := &Resolver{LibRoot: libRoot, LinksDir: linksDir, Fetcher: fetcher}

	plan := BuildPlan(
		Request{Libraries: []string{"ui", "layout", "spotlight", "moonstone"}, Links: []string{"moonstone", "spotlight"}, Safe: true},
		State{},
		DirInspector{Root: libRoot},
	)

	outcomes := Run(context.Background(), plan, resolver, 2)

	want := []struct {
		name      string
		action    Action
		fulfilled bool
	}{
		{"ui", InstallCopy, false},
		{"layout", InstallCopy, true},
		{"spotlight", Reject, false},
		{"moonstone", CreateLink, true},
	}
	if len(outcomes) != len(want) {
		t.Fatalf("expected %d outcomes, got %d", len(want), len(outcomes))
	}
	for i, w := range want {
		o := outcomes[i]
		if o.Name != w.name || o.Action != w.action || o.Fulfilled() != w.fulfilled {
			t.Errorf("outcome %d = {%s %s fulfilled=%v err=%v}, want {%s %s fulfilled=%v}",
				i, o.Name, o.Action, o.Fulfilled(), o.Err, w.name, w.action, w.fulfilled)
		}
	}

	if kind, _ := platform.Inspect(filepath.Join(libRoot, "spotlight")); kind != platform.Directory {
		t.Errorf("protected directory must stay a directory, got %s", kind)
	}

	var buf bytes.Buffer
	PrintOutcomes(&buf, outcomes)
	if !strings.Contains(buf.String(), "Resolved 2 of 4 libraries, 2 failed.") {
		t.Errorf("unexpected summary:\n%s", buf.String())
	}
}

func TestPrintPlan(t *testing.T) {
	plan := BuildPlan(
		Request{Libraries: []string{"enyo", "ui"}, Links: []string{"ui"}, Safe: true},
		State{},
		entries(map[string]platform.EntryKind{"ui": platform.Directory}),
	)

	var buf bytes.Buffer
	PrintPlan(&buf, plan)

	out := buf.String()
	if !strings.Contains(out, "install  enyo") {
		t.Errorf("expected install line, got:\n%s", out)
	}
	if !strings.Contains(out, "reject   ui (existing-directory-protected)") {
		t.Errorf("expected reject line, got:\n%s", out)
	}
}

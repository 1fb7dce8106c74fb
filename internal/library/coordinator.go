package library

import (
	"context"
	"fmt"
	"io"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// Run resolves every plan item concurrently and waits for all of them to
// settle. A failing or panicking item never stops its siblings. The returned
// outcomes are in plan order. limit bounds the number of items resolved at
// once; zero or less means unbounded.
func Run(ctx context.Context, plan *Plan, resolver ItemResolver, limit int) []Outcome {
	outcomes := make([]Outcome, len(plan.Items))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, item := range plan.Items {
		i, item := i, item
		g.Go(func() error {
			outcomes[i] = settle(ctx, resolver, item)
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}

// settle resolves one item, converting a panic into a rejected outcome.
func settle(ctx context.Context, resolver ItemResolver, item PlanItem) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome{
				Name:   item.Name,
				Action: item.Action,
				Err:    fmt.Errorf("%s: resolver panic: %v\n%s", item.Name, r, debug.Stack()),
			}
		}
	}()

	out = resolver.Resolve(ctx, item)
	out.Name = item.Name
	out.Action = item.Action
	return out
}

// Rejected returns the outcomes that failed, in order.
func Rejected(outcomes []Outcome) []Outcome {
	var failed []Outcome
	for _, o := range outcomes {
		if !o.Fulfilled() {
			failed = append(failed, o)
		}
	}
	return failed
}

// PrintOutcomes prints one line per outcome followed by a summary.
func PrintOutcomes(w io.Writer, outcomes []Outcome) {
	failed := 0
	for _, o := range outcomes {
		if o.Fulfilled() {
			fmt.Fprintf(w, "  ✓ %s: %s\n", o.Action, o.Name)
			continue
		}
		failed++
		fmt.Fprintf(w, "  ✗ %s: %s\n", o.Action, o.Name)
	}

	fmt.Fprintln(w)
	if failed == 0 {
		fmt.Fprintf(w, "✓ Resolved %d libraries.\n", len(outcomes))
		return
	}
	fmt.Fprintf(w, "Resolved %d of %d libraries, %d failed.\n", len(outcomes)-failed, len(outcomes), failed)
}

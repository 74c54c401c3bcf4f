// Package orch resolves registry operations into per-tool backend calls and
// owns the batch concurrency policy and failure isolation.
package orch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"toolkeep/internal/backend"
	"toolkeep/internal/registry"
)

// Policy selects how a batch sequences its per-tool backend calls.
type Policy int

const (
	// Sequential runs one tool to completion before starting the next.
	Sequential Policy = iota
	// FanOut starts every tool concurrently, unbounded, and joins at the end.
	FanOut
)

// Outcome is one tool's result within a batch. Outcomes are always reported
// in registry insertion order, both policies.
type Outcome struct {
	Name     string        `json:"name"`
	Kind     registry.Kind `json:"kind"`
	Skipped  bool          `json:"skipped,omitempty"`
	Checksum string        `json:"checksum,omitempty"`
	Err      error         `json:"-"`
	Error    string        `json:"error,omitempty"`
}

// Reporter observes batch progress. Implementations must tolerate concurrent
// calls when the fan-out policy is active.
type Reporter interface {
	Start(rec registry.Record)
	Complete(out Outcome)
}

// BatchOptions configures a batch run.
type BatchOptions struct {
	Policy   Policy
	Reporter Reporter
}

// Orchestrator coordinates the registry store and the per-kind backends. The
// install root is resolved once and carried here by value.
type Orchestrator struct {
	store       *registry.Store
	backends    backend.Set
	installRoot string
	logger      *log.Logger
}

// New creates an orchestrator. logger may be nil.
func New(store *registry.Store, backends backend.Set, installRoot string, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		store:       store,
		backends:    backends,
		installRoot: installRoot,
		logger:      logger,
	}
}

// Add installs the tool once and registers it on success. A failed first
// install never reaches the registry, and re-adding an existing name is a
// silent skip (added=false) that leaves the first record intact.
func (o *Orchestrator) Add(ctx context.Context, name, dest string, kind registry.Kind, source string) (registry.Record, bool, error) {
	rec, err := registry.NewRecord(name, dest, kind, source, "")
	if err != nil {
		return registry.Record{}, false, err
	}

	b, ok := o.backends.For(rec.Kind)
	if !ok {
		return registry.Record{}, false, fmt.Errorf("no backend for kind %q", rec.Kind)
	}

	o.logf("add %s kind=%s source=%s", rec.Name, rec.Kind, rec.Source)
	result, err := b.Install(ctx, rec, o.destPath(rec))
	if err != nil {
		return registry.Record{}, false, fmt.Errorf("install %s: %w", rec.Name, err)
	}
	rec.Checksum = result.Checksum

	added, err := o.store.Add(rec)
	if err != nil {
		return registry.Record{}, false, err
	}
	if !added {
		o.logf("add %s: already registered, skipping", rec.Name)
	}
	return rec, added, nil
}

// Remove delegates to the store, which also deletes the artifact tree for
// non-apt kinds.
func (o *Orchestrator) Remove(name string) error {
	o.logf("remove %s", name)
	return o.store.Remove(name)
}

// InstallAll dispatches install for every registered tool.
func (o *Orchestrator) InstallAll(ctx context.Context, opts BatchOptions) ([]Outcome, error) {
	return o.runBatch(ctx, opts, func(ctx context.Context, rec registry.Record) Outcome {
		return o.dispatch(ctx, rec, false)
	})
}

// UpdateAll dispatches update for every registered tool. Apt records are
// reported as skipped without a backend call; system package management is
// outside this engine's update authority.
func (o *Orchestrator) UpdateAll(ctx context.Context, opts BatchOptions) ([]Outcome, error) {
	return o.runBatch(ctx, opts, func(ctx context.Context, rec registry.Record) Outcome {
		if rec.Kind == registry.KindApt {
			o.logf("update %s: apt kind, skipped", rec.Name)
			return Outcome{Name: rec.Name, Kind: rec.Kind, Skipped: true}
		}
		return o.dispatch(ctx, rec, true)
	})
}

func (o *Orchestrator) dispatch(ctx context.Context, rec registry.Record, update bool) Outcome {
	out := Outcome{Name: rec.Name, Kind: rec.Kind}

	b, ok := o.backends.For(rec.Kind)
	if !ok {
		out.Err = fmt.Errorf("no backend for kind %q", rec.Kind)
		out.Error = out.Err.Error()
		return out
	}

	var (
		result backend.Result
		err    error
	)
	if update {
		o.logf("update %s kind=%s", rec.Name, rec.Kind)
		result, err = b.Update(ctx, rec, o.destPath(rec))
	} else {
		o.logf("install %s kind=%s", rec.Name, rec.Kind)
		result, err = b.Install(ctx, rec, o.destPath(rec))
	}
	if err != nil {
		out.Err = err
		out.Error = err.Error()
		return out
	}
	out.Checksum = result.Checksum
	return out
}

// runBatch reads the registry once up front and runs work per record under
// the chosen policy. One tool's failure never cancels another's work; the
// batch always runs to completion, and the returned error is non-nil iff any
// tool failed.
func (o *Orchestrator) runBatch(ctx context.Context, opts BatchOptions, work func(context.Context, registry.Record) Outcome) ([]Outcome, error) {
	records, err := o.store.List()
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, len(records))

	switch opts.Policy {
	case FanOut:
		var wg sync.WaitGroup
		for i, rec := range records {
			i, rec := i, rec
			if opts.Reporter != nil {
				opts.Reporter.Start(rec)
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				out := work(ctx, rec)
				outcomes[i] = out
				if opts.Reporter != nil {
					opts.Reporter.Complete(out)
				}
			}()
		}
		wg.Wait()
	default:
		for i, rec := range records {
			if opts.Reporter != nil {
				opts.Reporter.Start(rec)
			}
			out := work(ctx, rec)
			outcomes[i] = out
			if opts.Reporter != nil {
				opts.Reporter.Complete(out)
			}
		}
	}

	failed := 0
	for _, out := range outcomes {
		if out.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return outcomes, fmt.Errorf("%d of %d tools failed", failed, len(outcomes))
	}
	return outcomes, nil
}

func (o *Orchestrator) destPath(rec registry.Record) string {
	if rec.Kind == registry.KindApt {
		return ""
	}
	return filepath.Join(o.installRoot, filepath.FromSlash(rec.Dest))
}

func (o *Orchestrator) logf(format string, args ...any) {
	if o.logger != nil {
		o.logger.Printf(format, args...)
	}
}

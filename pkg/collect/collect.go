// Package collect runs the package-manager probes and assembles their results
// into a CollectionSummary.
//
// Collection never fails: a probe that errors (or panics) contributes one
// warning for its manager and no records, and the remaining probes still run.
package collect

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ajxudir/bagpack/pkg/cmdexec"
	"github.com/ajxudir/bagpack/pkg/config"
	"github.com/ajxudir/bagpack/pkg/inventory"
	"github.com/ajxudir/bagpack/pkg/probes"
	"github.com/ajxudir/bagpack/pkg/verbose"
)

// Collector runs a fixed, ordered list of probes.
type Collector struct {
	probes   []probes.Probe
	parallel bool
	now      func() time.Time
	observer func(inventory.PackageManager, error)
}

// Option configures a Collector.
type Option func(*Collector)

// WithParallel runs the probes concurrently when parallel is true.
// Records are still grouped in probe order.
func WithParallel(parallel bool) Option {
	return func(c *Collector) {
		c.parallel = parallel
	}
}

// WithClock replaces the clock used to stamp generated_at.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) {
		if now != nil {
			c.now = now
		}
	}
}

// WithObserver registers fn to be called as each probe finishes, with the
// probe's error or nil. In parallel mode fn is called from several goroutines.
func WithObserver(fn func(manager inventory.PackageManager, err error)) Option {
	return func(c *Collector) {
		c.observer = fn
	}
}

// New creates a Collector for probes, which run in the given order.
func New(ps []probes.Probe, opts ...Option) *Collector {
	c := &Collector{probes: ps, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// probeResult is the outcome of one probe: records on success, err on failure.
type probeResult struct {
	manager inventory.PackageManager
	records []inventory.PackageRecord
	err     error
}

// Collect runs every probe and returns the summary.
//
// It performs the following operations:
//   - Step 1: Stamps generated_at (left unset if the instant cannot be formatted)
//   - Step 2: Runs the probes, sequentially or concurrently
//   - Step 3: In probe order, appends records of successful probes and one
//     warning per failed probe
//
// Parameters:
//   - ctx: Cancels in-flight commands; probes that have not finished fail with a warning
//
// Returns:
//   - inventory.CollectionSummary: Always returned, degraded as needed
func (c *Collector) Collect(ctx context.Context) inventory.CollectionSummary {
	snapshot := inventory.NewSnapshot()
	if !snapshot.Stamp(c.now()) {
		verbose.Info("Could not format collection timestamp; generated_at left unset")
	}

	var results []probeResult
	if c.parallel {
		results = c.runParallel(ctx)
	} else {
		results = c.runSequential(ctx)
	}

	warnings := make([]inventory.CollectionWarning, 0)
	for _, r := range results {
		if r.err != nil {
			warnings = append(warnings, inventory.CollectionWarning{
				Manager: r.manager,
				Message: r.err.Error(),
			})
			continue
		}
		snapshot.Push(r.records...)
	}

	return inventory.NewSummary(snapshot, warnings)
}

func (c *Collector) runSequential(ctx context.Context) []probeResult {
	results := make([]probeResult, len(c.probes))
	for i, p := range c.probes {
		results[i] = c.run(ctx, p)
	}
	return results
}

// runParallel runs one goroutine per probe. Each writes only its own slot,
// so the result order matches the probe order.
func (c *Collector) runParallel(ctx context.Context) []probeResult {
	results := make([]probeResult, len(c.probes))
	var g errgroup.Group
	for i, p := range c.probes {
		g.Go(func() error {
			results[i] = c.run(ctx, p)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (c *Collector) run(ctx context.Context, p probes.Probe) probeResult {
	result := runProbe(ctx, p)
	if c.observer != nil {
		c.observer(result.manager, result.err)
	}
	return result
}

// runProbe runs a single probe, converting a panic into a failure.
func runProbe(ctx context.Context, p probes.Probe) (result probeResult) {
	manager := p.Manager()
	result.manager = manager
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			result.records = nil
			result.err = fmt.Errorf("%s probe panicked: %v", manager, r)
		}
		verbose.ProbeFinished(string(manager), len(result.records), time.Since(start), result.err)
	}()

	records, err := p.Collect(ctx)
	if err != nil {
		result.err = err
		return result
	}
	for i := range records {
		records[i].Manager = manager
	}
	result.records = records
	return result
}

// CollectWithConfig collects from the managers enabled in cfg, using the
// system command runner. opts are applied after the configured parallel mode.
func CollectWithConfig(ctx context.Context, cfg *config.Config, opts ...Option) inventory.CollectionSummary {
	opts = append([]Option{WithParallel(cfg.IsParallel())}, opts...)
	return New(probes.FromConfig(cfg, cmdexec.Run), opts...).Collect(ctx)
}

// CollectInventory collects from brew, npm and pip with the built-in
// configuration.
//
// Example:
//
//	summary := collect.CollectInventory()
//	data, _ := json.Marshal(summary)
func CollectInventory() inventory.CollectionSummary {
	return CollectWithConfig(context.Background(), config.Default())
}

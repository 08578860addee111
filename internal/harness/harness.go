// Package harness runs the pairing generator across a range of seeds and
// collects a report of which seeds paired cleanly.
package harness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/appengine-ltd/gift-exchange/internal/pairing"
	"github.com/appengine-ltd/gift-exchange/internal/roster"
)

const (
	DefaultSeeds      = 300
	DefaultPrefix     = "seed_"
	DefaultReportPath = "pairings_log.txt"
)

type Options struct {
	// Seeds must be at least 1.
	Seeds int
	// Prefix defaults to DefaultPrefix.
	Prefix string
	// Workers defaults to 1.
	Workers int
	// MaxAttempts defaults to pairing.MaxAttempts.
	MaxAttempts int
	// Strict rejects exclusions that name unknown participants.
	Strict bool
	Logger *zap.Logger
}

func (o Options) withDefaults() (Options, error) {
	if o.Seeds < 1 {
		return o, fmt.Errorf("seeds must be at least 1, got %d", o.Seeds)
	}
	if o.Workers < 0 {
		return o, fmt.Errorf("workers must not be negative, got %d", o.Workers)
	}
	if o.MaxAttempts < 0 {
		return o, fmt.Errorf("max attempts must not be negative, got %d", o.MaxAttempts)
	}
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	if o.Workers == 0 {
		o.Workers = 1
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = pairing.MaxAttempts
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o, nil
}

// Entry is the outcome for one seed: either Assignment or Err is set.
type Entry struct {
	Seed       string
	Assignment pairing.Assignment
	Err        error
}

func (e Entry) Failed() bool { return e.Err != nil }

// Kind classifies a failed entry for the operator summary.
func (e Entry) Kind() string {
	switch {
	case e.Err == nil:
		return ""
	case errors.Is(e.Err, pairing.ErrDuplicateReceiver):
		return "duplicate_receiver"
	case errors.Is(e.Err, pairing.ErrPairingExhausted):
		return "exhausted"
	default:
		return "error"
	}
}

type Report struct {
	RunID      string
	Names      []string
	Exclusions pairing.ExclusionSet
	Entries    []Entry
}

func (r *Report) Total() int { return len(r.Entries) }

func (r *Report) Failures() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Failed() {
			out = append(out, e)
		}
	}
	return out
}

func (r *Report) Passed() int { return r.Total() - len(r.Failures()) }

// Text renders the report artifact. Seed blocks appear in seed order and the
// output is identical for identical input.
func (r *Report) Text() string {
	blocks := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		blocks[i] = e.Text()
	}
	return strings.TrimSpace(strings.Join(blocks, "\n\n"))
}

// Text renders one seed block: the full listing, or a single failure line.
func (e Entry) Text() string {
	if e.Failed() {
		return fmt.Sprintf("Seed %s FAILED: %s", e.Seed, e.Err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Seed: %s", e.Seed)
	for _, p := range e.Assignment.Pairs {
		fmt.Fprintf(&b, "\n  %s → %s", p.Giver, p.Receiver)
	}
	return b.String()
}

func (r *Report) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(r.Text()), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// SeedName returns the i-th seed for prefix.
func SeedName(prefix string, i int) string {
	return prefix + strconv.Itoa(i)
}

// Run validates ds and generates one assignment per seed. Per-seed failures
// are recorded in the report; invalid options, an invalid dataset (wrapping
// pairing.ErrInvalidInput) and ctx cancellation return an error before or
// instead of a report.
func Run(ctx context.Context, ds *roster.Dataset, opts Options) (*Report, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if err := ds.Validate(roster.LoadOptions{Strict: opts.Strict, Logger: opts.Logger}); err != nil {
		return nil, err
	}
	report := &Report{
		RunID:      uuid.NewString(),
		Names:      ds.Names(),
		Exclusions: ds.ExclusionSet(),
		Entries:    make([]Entry, opts.Seeds),
	}
	logger := opts.Logger.With(zap.String("run_id", report.RunID))
	logger.Info("starting seed batch",
		zap.Int("seeds", opts.Seeds),
		zap.Int("participants", len(report.Names)),
		zap.Int("exclusions", report.Exclusions.Len()),
		zap.Int("workers", opts.Workers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := 0; i < opts.Seeds; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Entries[i] = runSeed(report.Names, report.Exclusions, SeedName(opts.Prefix, i), opts.MaxAttempts)
			if e := report.Entries[i]; e.Failed() {
				logger.Warn("seed failed", zap.String("seed", e.Seed), zap.String("kind", e.Kind()), zap.Error(e.Err))
			} else {
				logger.Debug("seed paired", zap.String("seed", e.Seed), zap.Int("attempts", e.Assignment.Attempts))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("seed batch complete", zap.Int("passed", report.Passed()), zap.Int("failed", len(report.Failures())))
	return report, nil
}

// Single runs one seed outside a batch, with the same checks as Run.
func Single(ds *roster.Dataset, seed string, opts Options) (Entry, error) {
	opts.Seeds = 1
	opts, err := opts.withDefaults()
	if err != nil {
		return Entry{}, err
	}
	if err := ds.Validate(roster.LoadOptions{Strict: opts.Strict, Logger: opts.Logger}); err != nil {
		return Entry{}, err
	}
	return runSeed(ds.Names(), ds.ExclusionSet(), seed, opts.MaxAttempts), nil
}

func runSeed(names []string, exclusions pairing.ExclusionSet, seed string, maxAttempts int) Entry {
	a, err := pairing.Generate(names, exclusions, seed, pairing.WithMaxAttempts(maxAttempts))
	if err != nil {
		return Entry{Seed: seed, Err: err}
	}
	if err := a.Check(names, exclusions); err != nil {
		return Entry{Seed: seed, Err: err}
	}
	return Entry{Seed: seed, Assignment: a}
}

package build

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/matheuskafuri/capalinks/internal/capacities"
	"github.com/matheuskafuri/capalinks/internal/extract"
	"github.com/matheuskafuri/capalinks/internal/links"
)

// Fetcher is the subset of the Capacities client the build needs.
type Fetcher interface {
	FetchByIDs(ctx context.Context, ids []string) (*capacities.ComponentsResponse, error)
	QueryEntryIDs(ctx context.Context, databaseID string) ([]string, error)
}

type Options struct {
	DatabaseID string
	Output     string
	Out        io.Writer
	// Quiet suppresses the per-link listing.
	Quiet bool
	Now   func() time.Time
}

type Result struct {
	Envelope      *links.Envelope
	Output        string
	CachedEntries int
	GeneratedAt   time.Time
}

// Run resolves every web resource in the database, flattens them and writes
// the envelope to opts.Output. Nothing is written if any call fails.
func Run(ctx context.Context, f Fetcher, opts Options) (*Result, error) {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	rep := newReporter(opts.Out)

	dbInfo, err := f.FetchByIDs(ctx, []string{opts.DatabaseID})
	if err != nil {
		return nil, fmt.Errorf("fetching database %s: %w", opts.DatabaseID, err)
	}
	cached := dbInfo.EntriesCountCached()
	rep.entriesCount(cached)

	entryIDs, err := f.QueryEntryIDs(ctx, opts.DatabaseID)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}

	extracted := []links.Link{}
	if len(entryIDs) == 0 {
		rep.noEntries()
	} else {
		entries, err := f.FetchByIDs(ctx, entryIDs)
		if err != nil {
			return nil, fmt.Errorf("fetching %d entries: %w", len(entryIDs), err)
		}
		extracted = extract.Links(entries.Components)
		rep.links(extracted, opts.Quiet)
	}

	now := opts.Now()
	env := links.NewEnvelope(now, extracted)
	if err := links.Save(opts.Output, env); err != nil {
		return nil, fmt.Errorf("saving %s: %w", opts.Output, err)
	}
	rep.saved(env.Count, opts.Output, now)

	return &Result{
		Envelope:      env,
		Output:        opts.Output,
		CachedEntries: cached,
		GeneratedAt:   now,
	}, nil
}

// Package batch parses many pastes concurrently.
package batch

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pastescout"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Ensure Runner implements pastescout.BatchRunner at compile time.
var _ pastescout.BatchRunner = (*Runner)(nil)

// DefaultConcurrency is used when Runner.Concurrency is not positive.
const DefaultConcurrency = 4

// Runner dispatches each paste to the parser for its source.
type Runner struct {
	Listings    pastescout.ListingParser
	Analytics   pastescout.AnalyticsParser
	Keywords    pastescout.KeywordParser
	Concurrency int
}

// indexedOutcome carries an outcome back to its input position.
type indexedOutcome struct {
	position int
	outcome  pastescout.Outcome
}

// Run parses pastes concurrently and returns outcomes in input order.
// Pastes whose source and content match an earlier paste are not parsed
// again; they share the earlier outcome and name it in DuplicateOf.
func (r *Runner) Run(ctx context.Context, pastes []pastescout.Paste, progress pastescout.ProgressFunc) (*pastescout.BatchResult, error) {
	notify := func(e pastescout.ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(pastes)
	outcomes := make([]pastescout.Outcome, total)
	firstSeen := make(map[uint64]int, total)
	var work, duplicates []int
	for i, p := range pastes {
		h := contentHash(p)
		outcomes[i] = pastescout.Outcome{Name: p.Name, Source: p.Source, Hash: fmt.Sprintf("%x", h)}
		if j, ok := firstSeen[h]; ok {
			outcomes[i].DuplicateOf = pastes[j].Name
			duplicates = append(duplicates, i)
			continue
		}
		firstSeen[h] = i
		work = append(work, i)
	}

	notify(pastescout.ProgressEvent{Type: pastescout.ProgressStarted, Total: total})

	var completed atomic.Int64
	for _, i := range duplicates {
		notify(pastescout.ProgressEvent{
			Type:      pastescout.ProgressSkipped,
			Completed: int(completed.Add(1)),
			Total:     total,
			Name:      pastes[i].Name,
		})
	}

	resultCh := make(chan indexedOutcome, len(work))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, i := range work {
			g.Go(func() error {
				resultCh <- indexedOutcome{position: i, outcome: r.parse(gctx, pastes[i], outcomes[i])}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	result := &pastescout.BatchResult{ID: uuid.New().String(), Duplicates: len(duplicates)}
	for res := range resultCh {
		outcomes[res.position] = res.outcome
		event := pastescout.ProgressEvent{
			Type:      pastescout.ProgressCompleted,
			Completed: int(completed.Add(1)),
			Total:     total,
			Name:      res.outcome.Name,
		}
		if res.outcome.Err != nil {
			result.Failed++
			event.Type = pastescout.ProgressFailed
			event.Error = res.outcome.Err
		} else {
			result.Parsed++
		}
		notify(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, i := range duplicates {
		src := outcomes[firstSeen[contentHash(pastes[i])]]
		outcomes[i].Listing = src.Listing
		outcomes[i].Analytics = src.Analytics
		outcomes[i].Keywords = src.Keywords
		outcomes[i].Err = src.Err
	}
	result.Outcomes = outcomes

	notify(pastescout.ProgressEvent{Type: pastescout.ProgressFinished, Completed: total, Total: total})
	return result, nil
}

// parse runs the parser for p's source and fills out.
func (r *Runner) parse(ctx context.Context, p pastescout.Paste, out pastescout.Outcome) pastescout.Outcome {
	if err := ctx.Err(); err != nil {
		out.Err = err
		return out
	}

	switch p.Source {
	case pastescout.SourceListing:
		if r.Listings == nil {
			out.Err = noParser(p.Source)
			return out
		}
		out.Listing, out.Err = r.Listings.ParseListing(p.Content)
	case pastescout.SourceAnalytics:
		if r.Analytics == nil {
			out.Err = noParser(p.Source)
			return out
		}
		out.Analytics, out.Err = r.Analytics.ParseAnalytics(p.Content)
	case pastescout.SourceKeywords:
		if r.Keywords == nil {
			out.Err = noParser(p.Source)
			return out
		}
		out.Keywords, out.Err = r.Keywords.ParseKeywords(p.Content)
	default:
		out.Err = pastescout.Errorf(pastescout.EINVALID, "unknown source %q", p.Source)
	}
	return out
}

func noParser(src pastescout.Source) error {
	return pastescout.Errorf(pastescout.EINTERNAL, "no parser configured for %s", src)
}

// contentHash keys a paste by source and content using xxhash.
func contentHash(p pastescout.Paste) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(string(p.Source))
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(p.Content)
	return d.Sum64()
}

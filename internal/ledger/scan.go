// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package ledger

import (
	"context"
	"errors"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ScanConcurrency bounds the number of in-flight reads during a scan.
const ScanConcurrency = 8

// ScanEvents reads events 1..maxID concurrently and returns those accepted
// by keep, newest (highest id) first. Missing ids are skipped. Any other
// read error aborts the scan.
func ScanEvents(
	ctx context.Context,
	r Reader,
	maxID uint64,
	keep func(Event) bool,
) ([]Event, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ScanConcurrency)

	var (
		mu     sync.Mutex
		events []Event
	)

	for id := uint64(1); id <= maxID; id++ {
		g.Go(func() error {
			event, err := r.GetEvent(gctx, id)
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}

			if keep != nil && !keep(event) {
				return nil
			}

			mu.Lock()
			events = append(events, event)
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].ID > events[j].ID
	})

	return events, nil
}

// ResolvedTicket groups a ticket with its event and tier.
type ResolvedTicket struct {
	Ticket TicketInfo
	Event  Event
	Tier   Tier
}

// Resolve reads the ticket, its event and its tier.
func Resolve(
	ctx context.Context,
	r Reader,
	ticketID uint64,
) (ResolvedTicket, error) {
	info, err := r.GetTicket(ctx, ticketID)
	if err != nil {
		return ResolvedTicket{}, err
	}

	return ResolveInfo(ctx, r, info)
}

// ResolveInfo reads the event and tier of an already loaded ticket.
func ResolveInfo(
	ctx context.Context,
	r Reader,
	info TicketInfo,
) (ResolvedTicket, error) {
	event, err := r.GetEvent(ctx, info.EventID)
	if err != nil {
		return ResolvedTicket{}, err
	}

	tier, err := r.GetTier(ctx, info.EventID, info.TierID)
	if err != nil {
		return ResolvedTicket{}, err
	}

	return ResolvedTicket{
		Ticket: info,
		Event:  event,
		Tier:   tier,
	}, nil
}

// ResolveAll resolves every id concurrently, preserving the order of ids.
// Tickets whose reads fail are skipped and reported through onSkip.
func ResolveAll(
	ctx context.Context,
	r Reader,
	ids []uint64,
	onSkip func(id uint64, err error),
) []ResolvedTicket {
	results := make([]*ResolvedTicket, len(ids))

	var g errgroup.Group
	g.SetLimit(ScanConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			rt, err := Resolve(ctx, r, id)
			if err != nil {
				if onSkip != nil {
					onSkip(id, err)
				}
				return nil
			}
			results[i] = &rt

			return nil
		})
	}
	_ = g.Wait()

	out := make([]ResolvedTicket, 0, len(ids))
	for _, rt := range results {
		if rt != nil {
			out = append(out, *rt)
		}
	}

	return out
}

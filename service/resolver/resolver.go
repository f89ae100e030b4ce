package resolver

import (
	"context"
	"github.com/themeparkify/bot-telegram/api/http/themeparks"
	"golang.org/x/sync/errgroup"
	"strings"
)

type Kind int

const (
	KindAttraction Kind = iota
	// KindOther matches every child entity that is not a ride: shows, restaurants and so on.
	KindOther
	KindAny
)

type Query struct {
	Text        string
	Kind        Kind
	Park        string
	Destination string
	// DestinationIds limits the search scope when not nil.
	DestinationIds []string
}

type Resolver interface {

	// Resolve narrows destinations, then parks, then park children down to the entities matching the query.
	// Any upstream failure fails the whole call.
	Resolve(ctx context.Context, q Query) (matches []themeparks.Entity, err error)

	// Destinations returns the destinations with the name containing the text, limited to ids when not nil.
	Destinations(ctx context.Context, text string, ids []string) (dsts []themeparks.Destination, err error)
}

type resolver struct {
	svc         themeparks.Service
	concurrency int
}

func NewResolver(svc themeparks.Service, concurrency int) Resolver {
	return resolver{
		svc:         svc,
		concurrency: concurrency,
	}
}

func (r resolver) Destinations(ctx context.Context, text string, ids []string) (dsts []themeparks.Destination, err error) {
	var all []themeparks.Destination
	all, err = r.svc.Destinations(ctx)
	if err == nil {
		var allowed map[string]bool
		if ids != nil {
			allowed = make(map[string]bool, len(ids))
			for _, id := range ids {
				allowed[id] = true
			}
		}
		for _, d := range all {
			if allowed != nil && !allowed[d.Id] {
				continue
			}
			if Contains(d.Name, text) {
				dsts = append(dsts, d)
			}
		}
	}
	return
}

func (r resolver) Resolve(ctx context.Context, q Query) (matches []themeparks.Entity, err error) {
	var dsts []themeparks.Destination
	dsts, err = r.Destinations(ctx, q.Destination, q.DestinationIds)
	var parks []themeparks.ParkRef
	if err == nil {
		for _, d := range dsts {
			for _, p := range d.Parks {
				if Contains(p.Name, q.Park) {
					parks = append(parks, p)
				}
			}
		}
	}
	if err == nil && len(parks) > 0 {
		// each park fills its own slot so the result keeps the park order
		matchesByPark := make([][]themeparks.Entity, len(parks))
		g, gCtx := errgroup.WithContext(ctx)
		if r.concurrency > 0 {
			g.SetLimit(r.concurrency)
		}
		for i, p := range parks {
			g.Go(func() (err error) {
				var c themeparks.Children
				c, err = r.svc.Children(gCtx, p.Id)
				if err == nil {
					for _, e := range c.Children {
						if q.Kind.matches(e.EntityType) && Contains(e.Name, q.Text) {
							matchesByPark[i] = append(matchesByPark[i], e)
						}
					}
				}
				return
			})
		}
		err = g.Wait()
		if err == nil {
			for _, m := range matchesByPark {
				matches = append(matches, m...)
			}
		}
	}
	return
}

func (k Kind) matches(t themeparks.EntityType) (ok bool) {
	switch k {
	case KindAttraction:
		ok = t == themeparks.EntityTypeAttraction
	case KindOther:
		ok = t != themeparks.EntityTypeAttraction
	default:
		ok = true
	}
	return
}

// Contains reports whether the name contains the trimmed query ignoring case. An empty query matches any name.
func Contains(name, query string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(strings.TrimSpace(query)))
}

package entries

import (
	"context"
	"github.com/themeparkify/bot-telegram/api/http/themeparks"
	"github.com/themeparkify/bot-telegram/model"
	"golang.org/x/sync/errgroup"
)

// Describe fetches the entities by ids and returns a listing entry for each, in the order of ids.
// An entity that failed to fetch is listed by its id only.
func Describe(ctx context.Context, svc themeparks.Service, ids []string, concurrency int) (entries []model.Entry) {
	entities := make([]themeparks.Entity, len(ids))
	g := newGroup(concurrency)
	for i, id := range ids {
		g.Go(func() error {
			e, err := svc.Entity(ctx, id)
			switch err {
			case nil:
				entities[i] = e
			default:
				entities[i] = themeparks.Entity{
					Id:   id,
					Name: id,
				}
			}
			return nil
		})
	}
	_ = g.Wait()
	addrs := Addresses(ctx, svc, entities, concurrency)
	for i, e := range entities {
		entries = append(entries, model.Entry{
			Name:    e.Name,
			Address: addrs[i],
		})
	}
	return
}

// Addresses resolves the park and destination names for every entity with a location.
// The result is parallel to the entities, nil where an entity has no location.
// A parent that failed to fetch leaves its name empty.
func Addresses(ctx context.Context, svc themeparks.Service, entities []themeparks.Entity, concurrency int) (addrs []*model.Address) {
	names := make(map[string]string)
	for _, e := range entities {
		if e.Location != nil {
			names[ParkId(e)] = ""
			names[e.DestinationId] = ""
		}
	}
	delete(names, "")
	ids := make([]string, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	fetched := make([]string, len(ids))
	g := newGroup(concurrency)
	for i, id := range ids {
		g.Go(func() error {
			e, err := svc.Entity(ctx, id)
			if err == nil {
				fetched[i] = e.Name
			}
			return nil
		})
	}
	_ = g.Wait()
	for i, id := range ids {
		names[id] = fetched[i]
	}
	addrs = make([]*model.Address, len(entities))
	for i, e := range entities {
		if e.Location != nil {
			addrs[i] = &model.Address{
				Park:        names[ParkId(e)],
				Destination: names[e.DestinationId],
				Latitude:    e.Location.Latitude,
				Longitude:   e.Location.Longitude,
			}
		}
	}
	return
}

// ParkId returns the id of the park the entity belongs to, empty for destinations and parks.
func ParkId(e themeparks.Entity) (id string) {
	switch e.EntityType {
	case themeparks.EntityTypeDestination, themeparks.EntityTypePark:
	default:
		id = e.ParkId
		if id == "" {
			id = e.ParentId
		}
	}
	return
}

func newGroup(concurrency int) (g *errgroup.Group) {
	g = &errgroup.Group{}
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	return
}

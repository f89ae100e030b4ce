package themeparks

import (
	"context"
	"fmt"
	"sync"
)

const IdFail = "fail"

// ServiceMock serves a small fixed resort hierarchy from memory. Any request
// for the IdFail entity fails with ErrFetchFailed.
type ServiceMock struct {
	lock     *sync.Mutex
	dsts     []Destination
	entities map[string]Entity
	children map[string][]Entity
	live     map[string]LiveData
	calls    map[string]int
}

func NewServiceMock() *ServiceMock {
	sm := &ServiceMock{
		lock:     &sync.Mutex{},
		entities: map[string]Entity{},
		children: map[string][]Entity{},
		live:     map[string]LiveData{},
		calls:    map[string]int{},
	}
	sm.addDestination("dst-wdw", "Walt Disney World Resort", 28.3852, -81.5639)
	sm.addPark("dst-wdw", "park-mk", "Magic Kingdom Park", 28.4177, -81.5812)
	sm.addAttraction("park-mk", "att-space-mk", "Space Mountain", EntityTypeAttraction)
	sm.addAttraction("park-mk", "att-pirates-mk", "Pirates of the Caribbean", EntityTypeAttraction)
	sm.addAttraction("park-mk", "show-parade-mk", "Festival of Fantasy Parade", EntityTypeShow)
	sm.addAttraction("park-mk", "att-7dmt", "Seven Dwarfs Mine Train", EntityTypeAttraction)
	sm.addPark("dst-wdw", "park-epcot", "EPCOT", 28.3747, -81.5494)
	sm.addAttraction("park-epcot", "att-soarin", "Soarin' Around the World", EntityTypeAttraction)
	sm.addAttraction("park-epcot", "att-mission-space", "Mission: SPACE", EntityTypeAttraction)
	sm.addDestination("dst-dlr", "Disneyland Resort", 33.8121, -117.919)
	sm.addPark("dst-dlr", "park-dl", "Disneyland Park", 33.8121, -117.919)
	sm.addAttraction("park-dl", "att-space-dl", "Space Mountain", EntityTypeAttraction)
	sm.addAttraction("park-dl", "att-matterhorn", "Matterhorn Bobsleds", EntityTypeAttraction)
	sm.addPark("dst-dlr", "park-dca", "Disney California Adventure Park", 33.8058, -117.9194)
	sm.addAttraction("park-dca", "att-incredicoaster", "Incredicoaster", EntityTypeAttraction)
	sm.addDestination("dst-broken", "Broken Resort", 0, 0)
	sm.addPark("dst-broken", IdFail, "Broken Park", 0, 0)
	return sm
}

func (sm *ServiceMock) addDestination(id, name string, lat, lon float64) {
	sm.dsts = append(sm.dsts, Destination{
		Id:   id,
		Name: name,
	})
	sm.entities[id] = Entity{
		Id:         id,
		Name:       name,
		EntityType: EntityTypeDestination,
		Location: &Location{
			Latitude:  lat,
			Longitude: lon,
		},
	}
}

func (sm *ServiceMock) addPark(dstId, id, name string, lat, lon float64) {
	for i, d := range sm.dsts {
		if d.Id == dstId {
			sm.dsts[i].Parks = append(d.Parks, ParkRef{
				Id:   id,
				Name: name,
			})
		}
	}
	sm.entities[id] = Entity{
		Id:            id,
		Name:          name,
		EntityType:    EntityTypePark,
		ParentId:      dstId,
		DestinationId: dstId,
		Location: &Location{
			Latitude:  lat,
			Longitude: lon,
		},
	}
}

func (sm *ServiceMock) addAttraction(parkId, id, name string, t EntityType) {
	park := sm.entities[parkId]
	e := Entity{
		Id:            id,
		Name:          name,
		EntityType:    t,
		ParentId:      parkId,
		ParkId:        parkId,
		DestinationId: park.DestinationId,
		Location:      park.Location,
	}
	sm.entities[id] = e
	sm.children[parkId] = append(sm.children[parkId], e)
	wait := 30
	sm.live[id] = LiveData{
		Id:         id,
		Name:       name,
		EntityType: t,
		Status:     StatusOperating,
		Queue: map[string]Queue{
			QueueStandby: {
				WaitTime: &wait,
			},
		},
	}
}

// SetLive replaces the live snapshot returned for the entity.
func (sm *ServiceMock) SetLive(id string, ld LiveData) {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	ld.Id = id
	if ld.Name == "" {
		ld.Name = sm.entities[id].Name
	}
	sm.live[id] = ld
}

// SetWait marks the entity as operating with the given standby wait.
func (sm *ServiceMock) SetWait(id string, wait int) {
	sm.SetLive(id, LiveData{
		Status: StatusOperating,
		Queue: map[string]Queue{
			QueueStandby: {
				WaitTime: &wait,
			},
		},
	})
}

// SetStatus marks the entity with a status and no queue data.
func (sm *ServiceMock) SetStatus(id string, status Status) {
	sm.SetLive(id, LiveData{
		Status: status,
	})
}

// Calls returns the number of requests made for the given method and entity id, e.g. ("Live", "att-7dmt").
func (sm *ServiceMock) Calls(method, id string) int {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	return sm.calls[method+" "+id]
}

func (sm *ServiceMock) count(method, id string) {
	sm.lock.Lock()
	defer sm.lock.Unlock()
	sm.calls[method+" "+id]++
}

func (sm *ServiceMock) Destinations(ctx context.Context) (dsts []Destination, err error) {
	sm.count("Destinations", "")
	dsts = append(dsts, sm.dsts...)
	return
}

func (sm *ServiceMock) Entity(ctx context.Context, id string) (e Entity, err error) {
	sm.count("Entity", id)
	var ok bool
	e, ok = sm.entities[id]
	switch {
	case id == IdFail:
		err = fmt.Errorf("%w: entity %s", ErrFetchFailed, id)
	case !ok:
		err = fmt.Errorf("%w: response status 404", ErrFetchFailed)
	}
	return
}

func (sm *ServiceMock) Live(ctx context.Context, id string) (l Live, err error) {
	sm.count("Live", id)
	sm.lock.Lock()
	defer sm.lock.Unlock()
	ld, ok := sm.live[id]
	switch {
	case id == IdFail:
		err = fmt.Errorf("%w: live %s", ErrFetchFailed, id)
	case !ok:
		err = fmt.Errorf("%w: response status 404", ErrFetchFailed)
	default:
		l = Live{
			Id:         id,
			Name:       ld.Name,
			EntityType: ld.EntityType,
			LiveData: []LiveData{
				ld,
			},
		}
	}
	return
}

func (sm *ServiceMock) Children(ctx context.Context, id string) (c Children, err error) {
	sm.count("Children", id)
	switch id {
	case IdFail:
		err = fmt.Errorf("%w: children %s", ErrFetchFailed, id)
	default:
		e := sm.entities[id]
		c = Children{
			Id:         id,
			Name:       e.Name,
			EntityType: e.EntityType,
			Children:   append([]Entity{}, sm.children[id]...),
		}
	}
	return
}

func (sm *ServiceMock) Schedule(ctx context.Context, id string, year, month int) (s Schedule, err error) {
	sm.count("Schedule", id)
	switch id {
	case IdFail:
		err = fmt.Errorf("%w: schedule %s", ErrFetchFailed, id)
	default:
		s = Schedule{
			Id:   id,
			Name: sm.entities[id].Name,
		}
	}
	return
}

package themeparks

import "time"

type EntityType string

const (
	EntityTypeDestination EntityType = "DESTINATION"
	EntityTypePark        EntityType = "PARK"
	EntityTypeAttraction  EntityType = "ATTRACTION"
	EntityTypeShow        EntityType = "SHOW"
	EntityTypeRestaurant  EntityType = "RESTAURANT"
)

type Status string

const (
	StatusOperating     Status = "OPERATING"
	StatusDown          Status = "DOWN"
	StatusClosed        Status = "CLOSED"
	StatusRefurbishment Status = "REFURBISHMENT"
)

const (
	QueueStandby        = "STANDBY"
	QueueReturnTime     = "RETURN_TIME"
	QueuePaidReturnTime = "PAID_RETURN_TIME"
)

const ReturnStateAvailable = "AVAILABLE"

type Destination struct {
	Id    string    `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Parks []ParkRef `json:"parks"`
}

type ParkRef struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Entity struct {
	Id            string     `json:"id"`
	Name          string     `json:"name"`
	EntityType    EntityType `json:"entityType"`
	ParentId      string     `json:"parentId,omitempty"`
	ParkId        string     `json:"parkId,omitempty"`
	DestinationId string     `json:"destinationId,omitempty"`
	Location      *Location  `json:"location,omitempty"`
	Timezone      string     `json:"timezone,omitempty"`
}

type Children struct {
	Id         string     `json:"id"`
	Name       string     `json:"name"`
	EntityType EntityType `json:"entityType"`
	Children   []Entity   `json:"children"`
}

type Live struct {
	Id         string     `json:"id"`
	Name       string     `json:"name"`
	EntityType EntityType `json:"entityType"`
	LiveData   []LiveData `json:"liveData"`
}

type LiveData struct {
	Id             string           `json:"id"`
	Name           string           `json:"name"`
	EntityType     EntityType       `json:"entityType"`
	Status         Status           `json:"status"`
	LastUpdated    time.Time        `json:"lastUpdated"`
	Queue          map[string]Queue `json:"queue,omitempty"`
	Forecast       []Forecast       `json:"forecast,omitempty"`
	OperatingHours []OperatingHours `json:"operatingHours,omitempty"`
}

// Queue is a union of the upstream queue kinds: STANDBY only fills WaitTime,
// the return time kinds fill State, ReturnStart, ReturnEnd and optionally Price.
type Queue struct {
	WaitTime    *int       `json:"waitTime,omitempty"`
	State       string     `json:"state,omitempty"`
	ReturnStart *time.Time `json:"returnStart,omitempty"`
	ReturnEnd   *time.Time `json:"returnEnd,omitempty"`
	Price       *Price     `json:"price,omitempty"`
}

type Price struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
}

type Forecast struct {
	Time       time.Time `json:"time"`
	WaitTime   int       `json:"waitTime"`
	Percentage int       `json:"percentage"`
}

type OperatingHours struct {
	Type      string    `json:"type"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type Schedule struct {
	Id       string          `json:"id"`
	Name     string          `json:"name"`
	Timezone string          `json:"timezone"`
	Schedule []ScheduleEntry `json:"schedule"`
}

type ScheduleEntry struct {
	Date        string    `json:"date"`
	Type        string    `json:"type"`
	OpeningTime time.Time `json:"openingTime"`
	ClosingTime time.Time `json:"closingTime"`
	Description string    `json:"description,omitempty"`
}

// Of returns the live entry describing the entity itself. Upstream may list
// child entries too, so the entry with the matching id wins over the first one.
func (l Live) Of(id string) (ld LiveData, ok bool) {
	for _, d := range l.LiveData {
		if d.Id == id {
			return d, true
		}
	}
	if len(l.LiveData) > 0 {
		ld, ok = l.LiveData[0], true
	}
	return
}

// StandbyWait returns the standby queue wait in minutes when upstream reports one.
func (ld LiveData) StandbyWait() (wait int, ok bool) {
	q, found := ld.Queue[QueueStandby]
	if found && q.WaitTime != nil {
		wait, ok = *q.WaitTime, true
	}
	return
}

// ReturnTime returns the free return time queue if present, else the paid one.
func (ld LiveData) ReturnTime() (q Queue, ok bool) {
	q, ok = ld.Queue[QueueReturnTime]
	if !ok {
		q, ok = ld.Queue[QueuePaidReturnTime]
	}
	return
}

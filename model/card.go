package model

// Card is a message addressed to one user: a notification or an attraction summary.
type Card struct {
	Title   string
	Body    string
	Address *Address
	Fields  []Field
}

type Field struct {
	Name  string
	Value string
}

// Address points to an entity on the map, labeled by its park and destination names.
type Address struct {
	Park        string
	Destination string
	Latitude    float64
	Longitude   float64
}

// Entry is a single item of a listing, e.g. a tracked attraction with its threshold.
type Entry struct {
	Name    string
	Detail  string
	Address *Address
}

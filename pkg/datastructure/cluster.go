package datastructure

// Bounds. axis aligned lat/lon rectangle in degrees.
type Bounds struct {
	North float64 `json:"north" msgpack:"north" validate:"min=-90,max=90,gtefield=South"`
	South float64 `json:"south" msgpack:"south" validate:"min=-90,max=90"`
	East  float64 `json:"east" msgpack:"east" validate:"min=-180,max=180"`
	West  float64 `json:"west" msgpack:"west" validate:"min=-180,max=180"`
}

func NewBounds(north, south, east, west float64) Bounds {
	return Bounds{
		North: north,
		South: south,
		East:  east,
		West:  west,
	}
}

// Contains. closed interval on both axes, a point on an edge is inside.
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.South && lat <= b.North &&
		lon >= b.West && lon <= b.East
}

// Pad grows the rectangle by deg degrees on every side.
func (b Bounds) Pad(deg float64) Bounds {
	return Bounds{
		North: b.North + deg,
		South: b.South - deg,
		East:  b.East + deg,
		West:  b.West - deg,
	}
}

// Cluster model info
// @Description aggregated marker for nearby campsites at one zoom level.
// built fresh on every clustering pass and never mutated afterwards.
type Cluster struct {
	Lat       float64    `json:"lat"` // arithmetic mean of member latitudes
	Lng       float64    `json:"lng"` // arithmetic mean of member longitudes
	Count     int        `json:"count"`
	Campsites []Campsite `json:"campsites"` // discovery order
	Bounds    Bounds     `json:"bounds"`
}

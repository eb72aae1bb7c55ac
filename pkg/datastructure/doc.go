package datastructure

import "time"

// Coordinates model info
// @Description WGS84 position of a campsite, degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude" msgpack:"latitude" validate:"finite,min=-90,max=90"`
	Longitude float64 `json:"longitude" msgpack:"longitude" validate:"finite,min=-180,max=180"`
}

// Campsite model info
// @Description a campsite record from the static dataset. read-only for the clustering code.
type Campsite struct {
	ID           int         `json:"id"`            // position in the dataset, 1-based. assigned by the loader
	LocationName string      `json:"location_name"` // campground / park name
	SiteName     string      `json:"site_name"`     // site label inside the location, not unique
	Type         string      `json:"type" validate:"required"`
	Coordinates  Coordinates `json:"coordinates"`
}

func NewCampsite(id int, locationName, siteName, tipe string, lat, lon float64) Campsite {
	return Campsite{
		ID:           id,
		LocationName: locationName,
		SiteName:     siteName,
		Type:         tipe,
		Coordinates: Coordinates{
			Latitude:  lat,
			Longitude: lon,
		},
	}
}

func (c Campsite) Lat() float64 {
	return c.Coordinates.Latitude
}

func (c Campsite) Lon() float64 {
	return c.Coordinates.Longitude
}

// Dataset. a loaded campsite set. the pointer is the identity of the point set:
// swapping the *Dataset invalidates clustering caches, mutating Campsites in place does not.
type Dataset struct {
	Name      string
	Campsites []Campsite
	LoadedAt  time.Time
}

func NewDataset(name string, campsites []Campsite) *Dataset {
	return &Dataset{
		Name:      name,
		Campsites: campsites,
		LoadedAt:  time.Now(),
	}
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Campsites)
}

// DatasetMeta model info
// @Description summary of the imported dataset.
type DatasetMeta struct {
	Name       string    `json:"name" msgpack:"name"`
	Source     string    `json:"source" msgpack:"source"`
	Count      int       `json:"count" msgpack:"count"`
	Bounds     Bounds    `json:"bounds" msgpack:"bounds"`
	ImportedAt time.Time `json:"imported_at" msgpack:"imported_at"`
}

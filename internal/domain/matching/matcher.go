// Package matching ranks staff candidates for staff-facing views: nearest
// first when coordinates are known, best-rated otherwise.
package matching

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Location is a caller's geographic position.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Candidate is one staff member considered for ranking.
type Candidate struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Rating    float64   `json:"rating"`
}

func (c Candidate) located() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Ranked is a candidate with its computed sort key. DistanceKm is nil when
// either the caller or the candidate has no location.
type Ranked struct {
	Candidate
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// Rank orders candidates for a caller. With a caller location, geolocated
// candidates come first, ascending by great-circle distance; candidates
// without coordinates follow, descending by rating. Without a caller
// location the whole pool is ranked descending by rating. Sorting by
// "distance, else rating" in one pass would interleave the two keys
// incorrectly, so the groups are ordered explicitly.
func Rank(caller *Location, pool []Candidate) []Ranked {
	ranked := make([]Ranked, 0, len(pool))
	for _, c := range pool {
		r := Ranked{Candidate: c}
		if caller != nil && c.located() {
			d := haversineKm(caller.Latitude, caller.Longitude, *c.Latitude, *c.Longitude)
			r.DistanceKm = &d
		}
		ranked = append(ranked, r)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		switch {
		case a.DistanceKm != nil && b.DistanceKm != nil:
			return *a.DistanceKm < *b.DistanceKm
		case a.DistanceKm != nil:
			return true
		case b.DistanceKm != nil:
			return false
		default:
			return a.Rating > b.Rating
		}
	})
	return ranked
}

const earthRadiusKm = 6371.0

// haversineKm computes the great-circle distance between two coordinates.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)
	deltaLat := toRadians(lat2 - lat1)
	deltaLon := toRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

package delivery

import "math"

// Zone is a predefined delivery area of the city of Sikasso with a flat
// fee and a time estimate. The list is fixed at compile time and never
// mutated at runtime.
type Zone struct {
	Name        string  `json:"name"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	TimeRange   string  `json:"time_range"`
	FeeFCFA     int     `json:"fee_fcfa"`
	Description string  `json:"description"`
}

// CoverageRadius is the maximum center distance, in decimal degrees,
// for a coordinate to be considered inside our delivery area.
const CoverageRadius = 0.15

// zones: quartiers of Sikasso, centered on surveyed coordinates.
// Order matters: on an exact distance tie the first listed zone wins.
var zones = []Zone{
	{Name: "Centre-ville", Lat: 11.3176, Lng: -5.6665, TimeRange: "30-45 min", FeeFCFA: 500, Description: "Grand marché et alentours"},
	{Name: "Wayerma", Lat: 11.3089, Lng: -5.6801, TimeRange: "45-60 min", FeeFCFA: 750, Description: "Wayerma I et II"},
	{Name: "Medine", Lat: 11.3251, Lng: -5.6598, TimeRange: "30-45 min", FeeFCFA: 500, Description: "Quartier Medine"},
	{Name: "Sanoubougou", Lat: 11.3330, Lng: -5.6874, TimeRange: "45-60 min", FeeFCFA: 750, Description: "Sanoubougou I et II"},
	{Name: "Hamdallaye", Lat: 11.3068, Lng: -5.6543, TimeRange: "45-60 min", FeeFCFA: 750, Description: "Quartier Hamdallaye"},
	{Name: "Lafiabougou", Lat: 11.3392, Lng: -5.6612, TimeRange: "45-60 min", FeeFCFA: 750, Description: "Quartier Lafiabougou"},
	{Name: "Mancourani", Lat: 11.2985, Lng: -5.6920, TimeRange: "60-90 min", FeeFCFA: 1000, Description: "Mancourani et extension"},
	{Name: "Kaboïla", Lat: 11.3420, Lng: -5.7011, TimeRange: "60-90 min", FeeFCFA: 1000, Description: "Quartier Kaboïla"},
	{Name: "Bougoula", Lat: 11.2790, Lng: -5.6350, TimeRange: "60-90 min", FeeFCFA: 1250, Description: "Bougoula-ville"},
	{Name: "Fanterela", Lat: 11.3550, Lng: -5.6400, TimeRange: "60-90 min", FeeFCFA: 1000, Description: "Fanterela et environs"},
}

// Zones returns the static zone list. The slice is shared; callers must
// not mutate it.
func Zones() []Zone { return zones }

// FindNearestZone returns the closest zone to the given coordinate, or
// nil when the closest center is further than CoverageRadius.
//
// Distance is plain Euclidean over decimal degrees, not geodesic: at the
// scale of one city the difference is irrelevant and this keeps the
// matcher a pure function over the static table. Ties go to the first
// listed zone.
func FindNearestZone(lat, lng float64) *Zone {
	i, dist := nearestIndex(zones, lat, lng)
	if i < 0 || dist > CoverageRadius {
		return nil
	}
	return &zones[i]
}

func nearestIndex(zs []Zone, lat, lng float64) (int, float64) {
	best := -1
	bestDist := math.MaxFloat64
	for i := range zs {
		d := math.Hypot(lat-zs[i].Lat, lng-zs[i].Lng)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist
}

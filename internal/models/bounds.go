package models

// Bounds is a rectangular geographic bounding box (WGS 84), as reported by
// the map surface after a pan, zoom or re-fit.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Contains reports whether the point lies inside the box, edges included.
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// WorldBounds covers every valid coordinate.
func WorldBounds() Bounds {
	return Bounds{MinLat: -90, MinLon: -180, MaxLat: 90, MaxLon: 180}
}

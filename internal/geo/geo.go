// Package geo holds the pure coordinate math used by the tracking simulator:
// haversine distance, linear interpolation, and synthetic route generation.
package geo

import "math"

const earthRadiusKm = 6371

// averageSpeedKmh is the assumed constant vehicle speed for travel time
// estimates. Not a traffic-aware figure.
const averageSpeedKmh = 30

// Point is a [lat, lng] coordinate pair.
type Point [2]float64

// Lat returns the latitude component.
func (p Point) Lat() float64 { return p[0] }

// Lng returns the longitude component.
func (p Point) Lng() float64 { return p[1] }

// Distance returns the haversine distance between two points in kilometers.
func Distance(a, b Point) float64 {
	dLat := (b.Lat() - a.Lat()) * math.Pi / 180
	dLng := (b.Lng() - a.Lng()) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat()*math.Pi/180)*math.Cos(b.Lat()*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// TravelTimeMinutes estimates the minutes needed to cover distanceKm at the
// assumed average speed.
func TravelTimeMinutes(distanceKm float64) int {
	return int(math.Round(distanceKm / averageSpeedKmh * 60))
}

// Interpolate returns the point at the given progress (0..1) on the straight
// line from start to end.
func Interpolate(start, end Point, progress float64) Point {
	return Point{
		start.Lat() + (end.Lat()-start.Lat())*progress,
		start.Lng() + (end.Lng()-start.Lng())*progress,
	}
}

// Route generates steps+1 waypoints from start to end. A small sinusoidal
// offset is applied to the latitude so the polyline does not render as a
// perfectly straight line; it is cosmetic, not a routing result.
func Route(start, end Point, steps int) []Point {
	points := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		progress := float64(i) / float64(steps)
		curvature := math.Sin(progress*math.Pi) * 0.001
		points = append(points, Point{
			start.Lat() + (end.Lat()-start.Lat())*progress + curvature,
			start.Lng() + (end.Lng()-start.Lng())*progress,
		})
	}
	return points
}

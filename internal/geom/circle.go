package geom

import "math"

const earthRadiusM = 6371008.8

// Distance is the great-circle distance in metres between a and b.
func Distance(a, b LatLng) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusM * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Destination walks dist metres from p along bearing (degrees from north).
func Destination(p LatLng, bearing, dist float64) LatLng {
	d := dist / earthRadiusM
	br := toRad(bearing)
	lat1, lng1 := toRad(p.Lat), toRad(p.Lng)
	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(br))
	lng2 := lng1 + math.Atan2(math.Sin(br)*math.Sin(d)*math.Cos(lat1), math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))
	return LatLng{Lat: toDeg(lat2), Lng: toDeg(lng2)}
}

// CircleRing approximates a circle outline with n unclosed vertices.
func CircleRing(center LatLng, radius float64, n int) []LatLng {
	if n < 3 {
		n = 3
	}
	out := make([]LatLng, n)
	for i := range out {
		out[i] = Destination(center, 360*float64(i)/float64(n), radius)
	}
	return out
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

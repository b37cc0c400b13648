package utils

import "math"

const earthRadiusKm = 6378.137

// Distance returns the great-circle distance between two coordinates in
// meters. The kilometre value is rounded to four decimals before the
// final conversion so results match the legacy client math exactly.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	radLat1 := lat1 * math.Pi / 180.0
	radLat2 := lat2 * math.Pi / 180.0
	a := radLat1 - radLat2
	b := lng1*math.Pi/180.0 - lng2*math.Pi/180.0

	s := 2 * math.Asin(math.Sqrt(math.Pow(math.Sin(a/2), 2)+
		math.Cos(radLat1)*math.Cos(radLat2)*math.Pow(math.Sin(b/2), 2)))
	s = s * earthRadiusKm
	s = math.Round(s*10000) / 10000
	return s * 1000
}

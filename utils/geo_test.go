package utils

import (
	"math"
	"testing"
)

func TestDistanceSamePoint(t *testing.T) {
	if d := Distance(39.9042, 116.4074, 39.9042, 116.4074); d != 0 {
		t.Errorf("distance between identical points = %v, want 0", d)
	}
}

func TestDistanceOneDegreeAtEquator(t *testing.T) {
	// One degree of longitude on the equator is R * pi/180 km.
	got := Distance(0, 0, 0, 1)
	want := 111319.5 // after the 4-decimal km rounding
	if math.Abs(got-want) > 0.01 {
		t.Errorf("Distance(0,0,0,1) = %v, want %v", got, want)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	a := Distance(31.2304, 121.4737, 39.9042, 116.4074)
	b := Distance(39.9042, 116.4074, 31.2304, 121.4737)
	if math.Abs(a-b) > 0.01 {
		t.Errorf("distance not symmetric: %v vs %v", a, b)
	}
	// Shanghai to Beijing is roughly 1070 km
	if a < 1000_000 || a > 1150_000 {
		t.Errorf("Shanghai-Beijing distance %v m outside plausible range", a)
	}
}

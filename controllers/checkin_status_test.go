package controllers

import (
	"testing"
	"time"

	"github.com/cppla/fleetcheck/models"
)

func clock(h, m int) time.Time {
	return time.Date(2024, 3, 15, h, m, 0, 0, time.Local)
}

func TestClassifyCheckin(t *testing.T) {
	w := defaultCheckinWindow() // 08:00-08:30, 30 min late threshold

	cases := []struct {
		name string
		at   time.Time
		want string
	}{
		{"well before window", clock(7, 0), models.CheckinNormal},
		{"window start", clock(8, 0), models.CheckinNormal},
		{"inside window", clock(8, 29), models.CheckinNormal},
		{"window end", clock(8, 30), models.CheckinNormal},
		{"late", clock(8, 45), models.CheckinLate},
		{"late boundary", clock(9, 0), models.CheckinLate},
		{"missed", clock(9, 5), models.CheckinMissed},
		{"afternoon", clock(15, 0), models.CheckinMissed},
	}
	for _, c := range cases {
		if got := classifyCheckin(c.at, w); got != c.want {
			t.Errorf("%s: classifyCheckin(%s) = %s, want %s", c.name, c.at.Format("15:04"), got, c.want)
		}
	}
}

func TestClassifyCheckinCustomWindow(t *testing.T) {
	w := checkinWindow{StartTime: "09:00", EndTime: "09:30", LateThreshold: 15}

	if got := classifyCheckin(clock(9, 30), w); got != models.CheckinNormal {
		t.Errorf("09:30 = %s, want normal", got)
	}
	if got := classifyCheckin(clock(9, 40), w); got != models.CheckinLate {
		t.Errorf("09:40 = %s, want late", got)
	}
	if got := classifyCheckin(clock(9, 46), w); got != models.CheckinMissed {
		t.Errorf("09:46 = %s, want missed", got)
	}
}

func TestClassifyCheckinBadConfigFallsBack(t *testing.T) {
	w := checkinWindow{StartTime: "nonsense", EndTime: "", LateThreshold: 0}
	// Defaults apply: 08:45 is inside the late band.
	if got := classifyCheckin(clock(8, 45), w); got != models.CheckinLate {
		t.Errorf("08:45 with broken config = %s, want late", got)
	}
}

func TestWithinAllowedArea(t *testing.T) {
	loc := models.Location{Latitude: 39.9042, Longitude: 116.4074}

	if !withinAllowedArea(loc, nil) {
		t.Error("empty fence list should allow any location")
	}

	near := []checkinArea{{Name: "depot", Latitude: 39.9042, Longitude: 116.4074, Radius: 500}}
	if !withinAllowedArea(loc, near) {
		t.Error("location at fence center should be allowed")
	}

	far := []checkinArea{{Name: "depot", Latitude: 31.2304, Longitude: 121.4737, Radius: 500}}
	if withinAllowedArea(loc, far) {
		t.Error("location 1000 km away should be rejected")
	}

	both := append(far, near...)
	if !withinAllowedArea(loc, both) {
		t.Error("any matching fence should allow the location")
	}
}

package controllers

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cppla/fleetcheck/models"
	"github.com/cppla/fleetcheck/utils"
)

// checkinWindow is the shape of the checkin_time config value.
type checkinWindow struct {
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	LateThreshold int    `json:"lateThreshold"`
}

func defaultCheckinWindow() checkinWindow {
	return checkinWindow{StartTime: "08:00", EndTime: "08:30", LateThreshold: 30}
}

// classifyCheckin grades a check-in against the configured window.
// A check-in before the window opens counts as normal; there is no
// distinct "too early" state.
func classifyCheckin(t time.Time, w checkinWindow) string {
	minutes := t.Hour()*60 + t.Minute()

	def := defaultCheckinWindow()
	start, err := utils.ParseClock(w.StartTime)
	if err != nil {
		start, _ = utils.ParseClock(def.StartTime)
	}
	end, err := utils.ParseClock(w.EndTime)
	if err != nil {
		end, _ = utils.ParseClock(def.EndTime)
	}
	late := w.LateThreshold
	if late <= 0 {
		late = def.LateThreshold
	}

	switch {
	case minutes < start:
		// before the window opens still counts as normal
		return models.CheckinNormal
	case minutes <= end:
		return models.CheckinNormal
	case minutes <= end+late:
		return models.CheckinLate
	default:
		return models.CheckinMissed
	}
}

// checkinArea is one entry of the checkin_area config value.
type checkinArea struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Radius    float64 `json:"radius"`
}

// withinAllowedArea reports whether loc falls inside any configured
// fence. An empty fence list means unrestricted.
func withinAllowedArea(loc models.Location, areas []checkinArea) bool {
	if len(areas) == 0 {
		return true
	}
	for _, area := range areas {
		if utils.Distance(loc.Latitude, loc.Longitude, area.Latitude, area.Longitude) <= area.Radius {
			return true
		}
	}
	return false
}

// configValue reads one system_config value, going through the Redis
// cache first. Both a missing row and a dead cache degrade to the same
// answer: nil bytes, no error.
func configValue(db *gorm.DB, key string) (models.JSONValue, error) {
	cacheKey := "cache:config:" + key
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		return models.JSONValue(b), nil
	}

	var row models.SystemConfig
	err := db.Where("config_key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	utils.CacheSetBytes(cacheKey, row.Value, time.Hour)
	return row.Value, nil
}

// loadCheckinWindow returns the configured window, or the defaults when
// the config row is absent or unreadable.
func loadCheckinWindow(db *gorm.DB) checkinWindow {
	w := defaultCheckinWindow()
	raw, err := configValue(db, models.ConfigKeyCheckinTime)
	if err != nil || len(raw) == 0 {
		return w
	}
	if err := json.Unmarshal(raw, &w); err != nil {
		return defaultCheckinWindow()
	}
	return w
}

// loadCheckinAreas returns the configured geo fences, if any.
func loadCheckinAreas(db *gorm.DB) []checkinArea {
	raw, err := configValue(db, models.ConfigKeyCheckinArea)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var payload struct {
		Areas []checkinArea `json:"areas"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return payload.Areas
}

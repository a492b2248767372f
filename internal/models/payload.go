package models

import (
	"fmt"
	"strings"
)

// TrafficLight is the three-level status attached to a score.
type TrafficLight string

const (
	LightRed    TrafficLight = "red"
	LightYellow TrafficLight = "yellow"
	LightGreen  TrafficLight = "green"
)

var lightRank = map[TrafficLight]int{
	LightRed:    0,
	LightYellow: 1,
	LightGreen:  2,
}

func (l TrafficLight) String() string {
	return string(l)
}

// AtLeast returns true if l is at or above the target level.
func (l TrafficLight) AtLeast(target TrafficLight) bool {
	return lightRank[l] >= lightRank[target]
}

// ParseTrafficLight converts a flag value to a TrafficLight.
func ParseTrafficLight(s string) (TrafficLight, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red":
		return LightRed, nil
	case "yellow":
		return LightYellow, nil
	case "green":
		return LightGreen, nil
	default:
		return LightRed, fmt.Errorf("invalid status %q: must be red, yellow, or green", s)
	}
}

// BreakdownEntry explains how one check affected the final score.
type BreakdownEntry struct {
	ID     string      `json:"id"`
	Status CheckStatus `json:"status"`
	// Weight is the effective weight after the config multiplier and any
	// optional or not-applicable reduction.
	Weight       float64 `json:"weight"`
	Multiplier   float64 `json:"multiplier"`
	Contribution float64 `json:"contribution"`
	// Optional is set when the weight was reduced but the check still counted.
	Optional bool `json:"optional"`
	// NotApplicable is set when the check was excluded from the totals.
	NotApplicable bool `json:"not_applicable"`
}

// ScorePayload is the result of one aggregation. It is built fresh on every
// call and owned by the caller.
type ScorePayload struct {
	Score            int                       `json:"score"`
	Status           TrafficLight              `json:"status"`
	Recommendations  []string                  `json:"recommendations"`
	Breakdown        map[string]BreakdownEntry `json:"breakdown"`
	WeightTotal      float64                   `json:"weight_total"`
	WeightedAchieved float64                   `json:"weighted_achieved"`
}

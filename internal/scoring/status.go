package scoring

import "github.com/spboyer/pagescore/internal/models"

// Score thresholds for the traffic-light status.
const (
	GreenThreshold  = 80
	YellowThreshold = 60
)

// Classify maps a 0-100 score to a traffic-light status.
func Classify(score int) models.TrafficLight {
	switch {
	case score >= GreenThreshold:
		return models.LightGreen
	case score >= YellowThreshold:
		return models.LightYellow
	default:
		return models.LightRed
	}
}

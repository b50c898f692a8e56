package output

import (
	"github.com/goccy/go-json"

	"github.com/agencysim/growth-simulator/internal/domain"
)

// JSONFormatter serializes the scenario comparison as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(comparison *domain.ScenarioComparison) ([]byte, error) {
	return json.MarshalIndent(comparison, "", "  ")
}

package weather

import (
	"strings"

	"github.com/mayankagarwal1234/Weather-chat-assistance/internal/common"
)

// Record is the normalized current-weather snapshot for one city, taken at
// request time. It is never mutated after the client builds it; the chat
// message that carries it owns it.
type Record struct {
	City         string   `json:"city"` // provider-canonicalized name
	Temp         float64  `json:"temp"` // °C
	FeelsLike    float64  `json:"feelsLike"`
	Condition    string   `json:"condition"` // short category, e.g. "Rain"
	Description  string   `json:"description"`
	Humidity     int      `json:"humidity"`  // percent
	WindSpeed    float64  `json:"windSpeed"` // m/s
	VisibilityKm *float64 `json:"visibilityKm,omitempty"`
}

// Icon returns a display glyph for the record's condition category.
func (r Record) Icon() string {
	cond := strings.ToLower(r.Condition)
	switch {
	case common.HasAny(cond, "clear"):
		return "☀️"
	case common.HasAny(cond, "cloud"):
		return "☁️"
	case common.HasAny(cond, "rain", "drizzle"):
		return "🌧️"
	case common.HasAny(cond, "thunder"):
		return "⛈️"
	case common.HasAny(cond, "snow"):
		return "🌨️"
	default:
		return "🌀"
	}
}

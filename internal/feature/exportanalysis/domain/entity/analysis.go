package entity

import "strings"

// ExportAnalysis is the structured result of a full analysis task.
// After normalization Destinations and Regulations are non-empty and Insights is set.
type ExportAnalysis struct {
	Destinations []Destination
	Trends       []Trend
	Regulations  []Regulation
	Insights     string
}

// Destination is a recommended export market.
type Destination struct {
	Country     string
	Flag        string // flag emoji
	Demand      DemandLevel
	Growth      string // e.g. "+15.2%"
	MarketSize  string // e.g. "$2.1B"
	Competition Level
	Barriers    Level
	Reasoning   string
}

// Trend is one period of the demand index.
type Trend struct {
	Period      string // e.g. "Q4 2024"
	Value       int    // 0-100
	Change      string // e.g. "+12%"
	Description string
}

// Regulation lists the entry requirements of a destination.
type Regulation struct {
	Country      string
	Requirements []string
	Timeline     string
	Cost         string
	Notes        string
}

// DemandLevel is the demand rating of a destination.
type DemandLevel string

const (
	DemandVeryHigh DemandLevel = "Very High"
	DemandHigh     DemandLevel = "High"
	DemandMedium   DemandLevel = "Medium"
	DemandLow      DemandLevel = "Low"
)

// Level is a High/Medium/Low rating used for competition and entry barriers.
type Level string

const (
	LevelHigh   Level = "High"
	LevelMedium Level = "Medium"
	LevelLow    Level = "Low"
)

// The Indonesian prompt asks the model for Indonesian ratings, so both vocabularies are accepted.
var demandLevels = map[string]DemandLevel{
	"very high":     DemandVeryHigh,
	"sangat tinggi": DemandVeryHigh,
	"high":          DemandHigh,
	"tinggi":        DemandHigh,
	"medium":        DemandMedium,
	"sedang":        DemandMedium,
	"low":           DemandLow,
	"rendah":        DemandLow,
}

var levels = map[string]Level{
	"high":   LevelHigh,
	"tinggi": LevelHigh,
	"medium": LevelMedium,
	"sedang": LevelMedium,
	"low":    LevelLow,
	"rendah": LevelLow,
}

// ParseDemandLevel maps an English or Indonesian rating to a DemandLevel.
func ParseDemandLevel(s string) (DemandLevel, bool) {
	d, ok := demandLevels[normalizeRating(s)]
	return d, ok
}

// ParseLevel maps an English or Indonesian rating to a Level.
func ParseLevel(s string) (Level, bool) {
	l, ok := levels[normalizeRating(s)]
	return l, ok
}

func normalizeRating(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

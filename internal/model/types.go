package model

// IncidentRecord is one historical event from the source dataset, narrowed to
// the columns the API serves. The full set is loaded once at startup and never
// mutated afterward.
type IncidentRecord struct {
	Year        int     `json:"iyear"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	City        string  `json:"city"`
	CountryID   int     `json:"country"`
	CountryName string  `json:"country_txt"`
	Kills       float64 `json:"nkill"`
	Summary     string  `json:"summary"`
}

// CountryAggregate is a per-country summary derived from the full dataset,
// computed once at load time for the globe visualization.
type CountryAggregate struct {
	Country    string  `json:"country"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Fatalities float64 `json:"fatalities"`
	Incidents  int     `json:"incidents"`
	CountryID  int     `json:"country_id"`
}

// PredictionRequest is a hypothetical incident to estimate fatalities for.
// Field names follow the source dataset's column names, which the dashboard
// sends verbatim.
type PredictionRequest struct {
	Year       int    `json:"iyear"`
	Month      int    `json:"imonth"`
	Day        int    `json:"iday"`
	Country    int    `json:"country"`
	Region     int    `json:"region"`
	AttackType string `json:"attacktype1_txt"`
	TargetType string `json:"targtype1_txt"`
	WeaponType string `json:"weaptype1_txt"`
}

// Prediction statuses.
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
)

// PredictionResult is the outcome of a fatality estimate.
type PredictionResult struct {
	PredictedFatalities float64 `json:"predicted_fatalities"`
	Status              string  `json:"status"`
	Message             string  `json:"message,omitempty"`
}

// Metadata maps country and region ids to display names.
type Metadata struct {
	Countries map[int]string `json:"countries"`
	Regions   map[int]string `json:"regions"`
}

// History is the per-year incident counts for one country. Years and Counts
// are parallel slices sorted by year ascending.
type History struct {
	Years          []int `json:"years"`
	Counts         []int `json:"counts"`
	TotalIncidents int   `json:"total_incidents"`
}

// AdvisoryRequest carries the incident context an advisory is generated from.
type AdvisoryRequest struct {
	Country     string `json:"country"`
	Year        string `json:"year"`
	SummaryText string `json:"summary_text"`
	AttackType  string `json:"attack_type,omitempty"`
}

// Advisory sources.
const (
	SourcePrimary  = "primary"
	SourceFallback = "fallback"
)

// AdvisoryResult is a generated (or fallback) travel safety advisory.
type AdvisoryResult struct {
	Advisory string `json:"advisory"`
	Source   string `json:"source"`
}

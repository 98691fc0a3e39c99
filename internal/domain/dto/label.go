package dto

// LabelAnalysis is what a label photo suggests for a new wine. Nothing is
// stored; the client posts the fields it accepts to /api/wines.
type LabelAnalysis struct {
	Success    bool               `json:"success"`
	Data       LabelData          `json:"data"`
	Confidence map[string]float64 `json:"confidence"`
	RawText    string             `json:"raw_text"`
}

type LabelData struct {
	Name                *string      `json:"name"`
	Vintage             *int         `json:"vintage"`
	WineType            *string      `json:"wine_type"`
	Country             *string      `json:"country"`
	GrapeVarieties      *string      `json:"grape_varieties"`
	AlcoholPercentage   *float64     `json:"alcohol_percentage"`
	SuggestedRegionName *string      `json:"suggested_region_name"`
	MatchedRegion       *RegionMatch `json:"matched_region"`
}

// RegionMatch is an existing region close enough to the name on the label.
type RegionMatch struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Country    string  `json:"country"`
	MatchScore float64 `json:"match_score"`
}

package types

// TaskTemplate is the expected structure for schedule entries generated by
// the advisory model. Offsets are whole-day counts relative to the planting
// date and may be negative (soil preparation before planting).
type TaskTemplate struct {
	Title             string `json:"title"`
	DaysAfterPlanting int    `json:"daysAfterPlanting"`
	Category          string `json:"category"` // free string from the model; normalized during derivation
	Notes             string `json:"notes,omitempty"`
}

// ScheduleRequest carries the crop facts the advisory model needs to
// generate a task schedule.
type ScheduleRequest struct {
	CropName    string
	Variety     string
	PlantedDate string // YYYY-MM-DD
	SoilType    string
	SoilPH      *float64
	SoilTexture string
}

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// SoilType classifies the soil a crop is planted in. The serialized values
// are the Romanian names users see in the planner form.
type SoilType string

const (
	SoilLoamy      SoilType = "Lutos"
	SoilSandy      SoilType = "Nisipos"
	SoilClayey     SoilType = "Argilos"
	SoilCalcareous SoilType = "Calcaros"
	SoilPeaty      SoilType = "Turbos"
)

// SoilTypes lists every valid soil classification, in form display order.
func SoilTypes() []SoilType {
	return []SoilType{SoilLoamy, SoilSandy, SoilClayey, SoilCalcareous, SoilPeaty}
}

// CropStatus represents the lifecycle state of a crop record.
type CropStatus string

const (
	StatusActive    CropStatus = "active"
	StatusHarvested CropStatus = "harvested"
	StatusFailed    CropStatus = "failed"
)

// TaskCategory is the closed taxonomy for planned tasks. Serialized values
// match the original planner's Romanian category names.
type TaskCategory string

const (
	CategoryIrrigation    TaskCategory = "irigare"
	CategoryFertilization TaskCategory = "fertilizare"
	CategoryTreatment     TaskCategory = "tratamente"
	CategoryHarvest       TaskCategory = "recoltare"
)

const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day or timezone component.
// Planting dates and task due dates are pure day values; arithmetic on them
// is whole-day arithmetic.
type Date struct {
	time.Time
}

// NewDate builds a Date from calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return Date{t}, nil
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// AddDays returns the date n calendar days later (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Time.Format(dateLayout)
}

// Equal reports whether two dates name the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(data []byte) error {
	parsed, err := ParseDate(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	return d.UnmarshalText([]byte(s))
}

func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Date) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// PlannedTask is a single dated action belonging to exactly one crop.
// DueDate is fixed at derivation time and never recomputed afterwards;
// only Completed is mutated after creation.
type PlannedTask struct {
	ID        string       `json:"id" validate:"required,uuid4"`
	Title     string       `json:"title" validate:"required"`
	DueDate   Date         `json:"dueDate" validate:"required"`
	Category  TaskCategory `json:"category" validate:"required,oneof=irigare fertilizare tratamente recoltare"`
	Completed bool         `json:"completed"`
	Notes     string       `json:"notes,omitempty"`
}

// Crop is a user-owned planting record together with its derived task plan.
type Crop struct {
	ID          string        `json:"id" validate:"required,uuid4"`
	Name        string        `json:"name" validate:"required,min=1,max=255"`
	Variety     string        `json:"variety,omitempty"`
	PlantedDate Date          `json:"plantedDate" validate:"required"`
	SoilType    SoilType      `json:"soilType" validate:"required,oneof=Lutos Nisipos Argilos Calcaros Turbos"`
	SoilPH      *float64      `json:"soilPH,omitempty"`
	SoilTexture string        `json:"soilTexture,omitempty"`
	AreaSqm     float64       `json:"area"`
	Lat         *float64      `json:"lat,omitempty"`
	Lng         *float64      `json:"lng,omitempty"`
	Status      CropStatus    `json:"status" validate:"required,oneof=active harvested failed"`
	Tasks       []PlannedTask `json:"tasks" validate:"dive"`
	CreatedAt   time.Time     `json:"createdAt" validate:"required"`
	UpdatedAt   time.Time     `json:"updatedAt" validate:"required"`
}

// HasLocation reports whether the user supplied coordinates for this crop.
func (c Crop) HasLocation() bool {
	return c.Lat != nil && c.Lng != nil
}

// CropList is the persisted snapshot shape: the full ordered crop sequence,
// most recently added first.
type CropList struct {
	Crops      []Crop `json:"crops" validate:"dive"`
	TotalCount int    `json:"totalCount"`
}

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// ChatMessage is one entry in an advisory conversation transcript.
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("Validation failed on field '%s': rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%s", strings.Join(errorMessages, "; "))
	}
	return nil
}

// NewCrop builds a crop with defaults applied: active status, empty task list,
// current timestamps. The ID is left for the store to assign.
func NewCrop(name string, planted Date, soil SoilType) *Crop {
	now := time.Now().UTC()
	return &Crop{
		Name:        name,
		PlantedDate: planted,
		SoilType:    soil,
		Status:      StatusActive,
		Tasks:       []PlannedTask{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

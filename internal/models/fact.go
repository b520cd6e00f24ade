package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Header is the fixed column header of the serialized fact table.
var Header = []string{"Question", "Answer", "Location", "Category"}

// Fact is a single trivia record about a municipality.
type Fact struct {
	ID        uuid.UUID `json:"-"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Location  string    `json:"location"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"-"`
}

// Normalize trims surrounding whitespace from every field.
func (f *Fact) Normalize() {
	f.Question = strings.TrimSpace(f.Question)
	f.Answer = strings.TrimSpace(f.Answer)
	f.Location = strings.TrimSpace(f.Location)
	f.Category = strings.TrimSpace(f.Category)
}

// MissingFields returns the JSON names of fields that are empty.
func (f *Fact) MissingFields() []string {
	var missing []string
	if f.Question == "" {
		missing = append(missing, "question")
	}
	if f.Answer == "" {
		missing = append(missing, "answer")
	}
	if f.Location == "" {
		missing = append(missing, "location")
	}
	if f.Category == "" {
		missing = append(missing, "category")
	}
	return missing
}

// Record returns the fact as a row in Header order.
func (f *Fact) Record() []string {
	return []string{f.Question, f.Answer, f.Location, f.Category}
}

// FactFromRecord builds a fact from a row in Header order.
func FactFromRecord(record []string) Fact {
	var f Fact
	if len(record) > 0 {
		f.Question = record[0]
	}
	if len(record) > 1 {
		f.Answer = record[1]
	}
	if len(record) > 2 {
		f.Location = record[2]
	}
	if len(record) > 3 {
		f.Category = record[3]
	}
	return f
}

// Default catalog values used when no config file overrides them.
var (
	DefaultLocations = []string{
		"Markham",
		"Vaughan",
		"Richmond Hill",
		"Aurora",
		"Newmarket",
		"East Gwillimbury",
		"Georgina",
		"Whitchurch-Stouffville",
		"King",
	}

	DefaultCategories = []string{
		"Historic",
		"Physiographic",
		"Cultural",
		"Demographic",
		"Economic",
		"Other",
	}
)

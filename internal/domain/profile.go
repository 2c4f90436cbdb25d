package domain

import "time"

// Profile guarda el tipo y la carta de nacimiento ya resuelta.
// BirthDate usa el formato YYYY-MM-DD.
type Profile struct {
	ID            string    `json:"id"`
	DisplayName   string    `json:"display_name,omitempty"`
	MBTIType      string    `json:"mbti_type"`
	BirthDate     string    `json:"birth_date"`
	Timezone      string    `json:"timezone"`
	BirthStem     string    `json:"birth_stem"`
	BirthBranch   string    `json:"birth_branch"`
	BirthElement  string    `json:"birth_element"`
	BirthPolarity string    `json:"birth_polarity"`
	YearStem      string    `json:"year_stem"`
	YearBranch    string    `json:"year_branch"`
	YearAnimal    string    `json:"year_animal"`
	CreatedAt     time.Time `json:"created_at"`
}

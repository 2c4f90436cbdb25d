package domain

import "time"

// Reflection es la nota de un dia junto con el mensaje que se mostro ese dia.
type Reflection struct {
	ID             string    `json:"id"`
	ProfileID      string    `json:"profile_id"`
	Date           string    `json:"date"`
	Note           string    `json:"note"`
	DayDescription string    `json:"day_description"`
	MainMessage    string    `json:"main_message"`
	EnergyLevel    int       `json:"energy_level"`
	Luck           int       `json:"luck"`
	Element        string    `json:"element"`
	Polarity       string    `json:"polarity"`
	BestFor        []string  `json:"best_for"`
	WatchOutFor    []string  `json:"watch_out_for"`
	SavedAt        time.Time `json:"saved_at"`
}

package engine

import (
	"saju-mbti/internal/bazi"
)

// EnergyBand agrupa el nivel de energia: Favorable (4-5), Neutral (3), Challenging (1-2).
func EnergyBand(level int) string {
	switch {
	case level >= 4:
		return "Favorable"
	case level == 3:
		return "Neutral"
	default:
		return "Challenging"
	}
}

type CalendarDay struct {
	Day          int               `json:"day"`
	Date         string            `json:"date"`
	Pillar       bazi.Pillar       `json:"pillar"`
	Animal       string            `json:"animal"`
	Relationship bazi.Relationship `json:"relationship"`
	EnergyLevel  int               `json:"energy_level"`
	EnergyBand   string            `json:"energy_band"`
	Luck         int               `json:"luck"`
	Description  string            `json:"description"`
	Interaction  string            `json:"interaction"`
	BestFor      []string          `json:"best_for"`
	WatchOutFor  []string          `json:"watch_out_for"`
}

// Month es el calendario de energia de un mes. FirstWeekday: 0 = domingo.
type Month struct {
	Year         int           `json:"year"`
	Month        int           `json:"month"`
	FirstWeekday int           `json:"first_weekday"`
	Days         []CalendarDay `json:"days"`
}

// MonthCalendar resuelve cada dia del mes y lo cruza con el pilar de nacimiento.
func (e *Engine) MonthCalendar(user UserChart, year, month int) (Month, error) {
	if err := e.ready(); err != nil {
		return Month{}, err
	}
	if err := bazi.ValidateDate(year, month, 1); err != nil {
		return Month{}, err
	}
	if err := checkPillar(user.Birth); err != nil {
		return Month{}, err
	}

	first := bazi.Date{Year: year, Month: month, Day: 1}
	n := bazi.DaysInMonth(year, month)
	out := Month{
		Year:         year,
		Month:        month,
		FirstWeekday: int(first.Weekday()),
		Days:         make([]CalendarDay, 0, n),
	}
	for d := 1; d <= n; d++ {
		date := bazi.Date{Year: year, Month: month, Day: d}
		p, err := e.resolver.Pillar(date)
		if err != nil {
			return Month{}, err
		}
		rel := bazi.Classify(user.Birth.Element, user.Birth.Polarity, p.Element, p.Polarity)
		tag := e.tables.Activities[rel]
		out.Days = append(out.Days, CalendarDay{
			Day:          d,
			Date:         date.String(),
			Pillar:       p,
			Animal:       p.Animal(),
			Relationship: rel,
			EnergyLevel:  tag.EnergyLevel,
			EnergyBand:   EnergyBand(tag.EnergyLevel),
			Luck:         tag.Luck,
			Description:  e.tables.DayDescription(p),
			Interaction:  e.tables.StemInteraction(user.Birth.Stem, p.Stem),
			BestFor:      head(tag.BestFor, maxBestFor),
			WatchOutFor:  head(tag.WatchOutFor, maxWatchOutFor),
		})
	}
	return out, nil
}

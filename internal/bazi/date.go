package bazi

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout es el formato de fecha aceptado por la API y la CLI.
const DateLayout = "2006-01-02"

// Date es una fecha calendario sin hora ni zona.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// ParseDate interpreta "YYYY-MM-DD" y valida la ventana soportada.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	d := DateOf(t)
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// DateOf toma la fecha calendario de t en la zona de t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

func (d Date) Validate() error {
	return ValidateDate(d.Year, d.Month, d.Day)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time devuelve la medianoche UTC de la fecha.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays normaliza via time.Date, asi que cruza meses y años.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

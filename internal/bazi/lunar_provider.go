package bazi

import (
	"fmt"

	"github.com/6tail/lunar-go/calendar"
)

// LunarProvider obtiene los pilares de github.com/6tail/lunar-go, que aplica
// el corte de año en Lichun.
type LunarProvider struct{}

func NewLunarProvider() *LunarProvider {
	return &LunarProvider{}
}

func (p *LunarProvider) Name() string { return "lunar-go" }

func (p *LunarProvider) DayPillar(d Date) (Pillar, error) {
	lunar := calendar.NewSolarFromYmd(d.Year, d.Month, d.Day).GetLunar()
	stem, branch, err := parseGanZhi(lunar.GetDayInGanZhi())
	if err != nil {
		return Pillar{}, err
	}
	return NewPillar(stem, branch)
}

func (p *LunarProvider) YearPillar(d Date) (YearPillar, error) {
	lunar := calendar.NewSolarFromYmd(d.Year, d.Month, d.Day).GetLunar()
	stem, branch, err := parseGanZhi(lunar.GetYearInGanZhiExact())
	if err != nil {
		return YearPillar{}, err
	}
	return YearPillar{Stem: stem, Branch: branch, Animal: branch.Animal()}, nil
}

// parseGanZhi separa un par como "甲子" en tronco y rama.
func parseGanZhi(s string) (Stem, Branch, error) {
	runes := []rune(s)
	if len(runes) != 2 {
		return 0, 0, fmt.Errorf("%w: malformed ganzhi %q", ErrProviderFailure, s)
	}
	stem, err := ParseStem(string(runes[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	branch, err := ParseBranch(string(runes[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	return stem, branch, nil
}

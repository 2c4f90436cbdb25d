package engine

import (
	"fmt"
	"strings"

	"saju-mbti/internal/bazi"
	"saju-mbti/internal/mbti"
)

const (
	maxBestFor     = 3
	maxWatchOutFor = 2
)

// UserChart es lo que el motor necesita de un perfil para el mensaje diario.
type UserChart struct {
	Type  mbti.Type   `json:"type"`
	Birth bazi.Pillar `json:"birth"`
}

// DailyMessage es el contenido del dia para un usuario.
type DailyMessage struct {
	Relationship  bazi.Relationship `json:"relationship"`
	MainMessage   string            `json:"main_message"`
	TodayEnergy   string            `json:"today_energy"`
	Interaction   string            `json:"interaction"`
	EnergyLevel   int               `json:"energy_level"`
	Luck          int               `json:"luck"`
	BestFor       []string          `json:"best_for"`
	WatchOutFor   []string          `json:"watch_out_for"`
	TodayPillar   bazi.Pillar       `json:"today_pillar"`
	TodayElement  bazi.Element      `json:"today_element"`
	TodayPolarity bazi.Polarity     `json:"today_polarity"`
	TodayAnimal   string            `json:"today_animal"`
}

// AssembleDailyMessage cruza el pilar de nacimiento con el pilar del dia.
func (e *Engine) AssembleDailyMessage(user UserChart, today bazi.Pillar) (DailyMessage, error) {
	if err := e.ready(); err != nil {
		return DailyMessage{}, err
	}
	if err := checkPillar(user.Birth); err != nil {
		return DailyMessage{}, fmt.Errorf("birth pillar: %w", err)
	}
	if err := checkPillar(today); err != nil {
		return DailyMessage{}, fmt.Errorf("today pillar: %w", err)
	}
	desc, err := e.tables.Type(user.Type)
	if err != nil {
		return DailyMessage{}, err
	}

	rel := bazi.Classify(user.Birth.Element, user.Birth.Polarity, today.Element, today.Polarity)
	tag := e.tables.Activities[rel]
	interaction := e.tables.StemInteraction(user.Birth.Stem, today.Stem)

	return DailyMessage{
		Relationship:  rel,
		MainMessage:   strings.TrimSpace(desc.Template + " " + interaction),
		TodayEnergy:   e.tables.DayDescription(today),
		Interaction:   interaction,
		EnergyLevel:   tag.EnergyLevel,
		Luck:          tag.Luck,
		BestFor:       head(tag.BestFor, maxBestFor),
		WatchOutFor:   head(tag.WatchOutFor, maxWatchOutFor),
		TodayPillar:   today,
		TodayElement:  today.Element,
		TodayPolarity: today.Polarity,
		TodayAnimal:   today.Animal(),
	}, nil
}

// checkPillar rechaza pilares armados a mano con pares fuera del ciclo
// o con elemento/polaridad que no corresponden al tronco.
func checkPillar(p bazi.Pillar) error {
	want, err := bazi.NewPillar(p.Stem, p.Branch)
	if err != nil {
		return err
	}
	if want != p {
		return fmt.Errorf("%w: pillar %s carries %s %s", bazi.ErrUnknownElement, p.Label(), p.Polarity, p.Element)
	}
	return nil
}

func head(items []string, n int) []string {
	if len(items) < n {
		n = len(items)
	}
	out := make([]string, n)
	copy(out, items[:n])
	return out
}

package main

import (
	"fmt"
	"strings"

	"saju-mbti/internal/bazi"
	"saju-mbti/internal/engine"
	"saju-mbti/internal/mbti"
	"saju-mbti/internal/service"
)

// parsePerson acepta TYPE:YYYY-MM-DD o TYPE:Element:Polarity.
func parsePerson(raw string) (service.PersonInput, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	switch len(parts) {
	case 2:
		return service.PersonInput{Type: parts[0], BirthDate: parts[1]}, nil
	case 3:
		return service.PersonInput{Type: parts[0], Element: parts[1], Polarity: parts[2]}, nil
	default:
		return service.PersonInput{}, fmt.Errorf("person %q: want TYPE:DATE or TYPE:ELEMENT:POLARITY", raw)
	}
}

// chartFor resuelve el pilar de nacimiento con el resolver de la app.
func (a *app) chartFor(typeCode, birth string) (engine.UserChart, error) {
	typ, err := mbti.ParseType(typeCode)
	if err != nil {
		return engine.UserChart{}, err
	}
	d, err := bazi.ParseDate(birth)
	if err != nil {
		return engine.UserChart{}, err
	}
	p, err := a.engine.Resolver().Pillar(d)
	if err != nil {
		return engine.UserChart{}, err
	}
	return engine.UserChart{Type: typ, Birth: p}, nil
}

func describePillar(p bazi.Pillar) string {
	return fmt.Sprintf("%s (%s %s, %s)", p.Label(), p.Element, p.Polarity, p.Animal())
}

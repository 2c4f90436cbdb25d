package bazi

import (
	"errors"
	"testing"
)

func TestClassifyScenarios(t *testing.T) {
	tests := []struct {
		name string
		ea   Element
		pa   Polarity
		eb   Element
		pb   Polarity
		want Relationship
	}{
		{"same stem", Wood, Yang, Wood, Yang, Harmony},
		{"same element other polarity", Water, Yin, Water, Yang, Complementary},
		{"wood feeds fire", Wood, Yang, Fire, Yang, Generating},
		{"fire is fed by wood", Fire, Yang, Wood, Yin, BeingGenerated},
		{"wood restrains earth", Wood, Yin, Earth, Yang, Controlling},
		{"wood restrained by metal", Wood, Yang, Metal, Yang, BeingControlled},
		{"water feeds wood", Water, Yang, Wood, Yang, Generating},
		{"water restrains fire", Water, Yin, Fire, Yin, Controlling},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.ea, tt.pa, tt.eb, tt.pb); got != tt.want {
				t.Fatalf("Classify(%s %s, %s %s) = %s; want %s", tt.pa, tt.ea, tt.pb, tt.eb, got, tt.want)
			}
		})
	}
}

// ruleHits cuenta cuantas reglas son verdaderas de forma independiente,
// ignorando el orden, para las reglas que no dependen de otras.
func ruleHits(ea Element, pa Polarity, eb Element, pb Polarity) int {
	hits := 0
	if ea == eb && pa == pb {
		hits++
	}
	if ea == eb && pa != pb {
		hits++
	}
	if ea != eb {
		if ea.Generates() == eb {
			hits++
		}
		if eb.Generates() == ea {
			hits++
		}
		if ea.Controls() == eb {
			hits++
		}
		if eb.Controls() == ea {
			hits++
		}
	}
	return hits
}

func TestClassifyTotalAndExclusive(t *testing.T) {
	polarities := []Polarity{Yang, Yin}
	counts := make(map[Relationship]int)
	total := 0
	for _, ea := range Elements() {
		for _, pa := range polarities {
			for _, eb := range Elements() {
				for _, pb := range polarities {
					total++
					got := Classify(ea, pa, eb, pb)
					if !got.Valid() {
						t.Fatalf("invalid category %d", got)
					}
					if got == Neutral {
						t.Fatalf("neutral should be unreachable for %s %s vs %s %s", pa, ea, pb, eb)
					}
					if hits := ruleHits(ea, pa, eb, pb); hits != 1 {
						t.Fatalf("%s %s vs %s %s: %d rules fired", pa, ea, pb, eb, hits)
					}
					counts[got]++
				}
			}
		}
	}
	if total != 100 {
		t.Fatalf("expected 100 combinations, got %d", total)
	}
	// 5 elementos x 2 polaridades: 10 harmony, 10 complementary, 20 por cada relacion direccional.
	want := map[Relationship]int{
		Harmony:         10,
		Complementary:   10,
		Generating:      20,
		BeingGenerated:  20,
		Controlling:     20,
		BeingControlled: 20,
	}
	for r, n := range want {
		if counts[r] != n {
			t.Fatalf("expected %d %s, got %d", n, r, counts[r])
		}
	}
}

func TestClassifySymmetry(t *testing.T) {
	polarities := []Polarity{Yang, Yin}
	for _, ea := range Elements() {
		for _, pa := range polarities {
			for _, eb := range Elements() {
				for _, pb := range polarities {
					ab := Classify(ea, pa, eb, pb)
					ba := Classify(eb, pb, ea, pa)
					if ab.Inverse() != ba {
						t.Fatalf("%s %s vs %s %s: %s / %s not mirrored", pa, ea, pb, eb, ab, ba)
					}
					if (ab == Harmony) != (ba == Harmony) {
						t.Fatalf("harmony must be symmetric")
					}
				}
			}
		}
	}
}

func TestClassifyInvalidElementDefaultsToNeutral(t *testing.T) {
	if got := Classify(Element(9), Yang, Element(7), Yin); got != Neutral {
		t.Fatalf("expected neutral default, got %s", got)
	}
	if _, err := ClassifyChecked(Element(9), Yang, Wood, Yin); !errors.Is(err, ErrUnknownElement) {
		t.Fatalf("expected ErrUnknownElement, got %v", err)
	}
	if _, err := ClassifyChecked(Wood, Polarity(4), Wood, Yin); !errors.Is(err, ErrUnknownPolarity) {
		t.Fatalf("expected ErrUnknownPolarity, got %v", err)
	}
}

func TestParseElementAndPolarity(t *testing.T) {
	e, err := ParseElement(" metal ")
	if err != nil || e != Metal {
		t.Fatalf("expected Metal, got %v %v", e, err)
	}
	if _, err := ParseElement("Air"); !errors.Is(err, ErrUnknownElement) {
		t.Fatalf("expected ErrUnknownElement, got %v", err)
	}
	p, err := ParsePolarity("YIN")
	if err != nil || p != Yin {
		t.Fatalf("expected Yin, got %v %v", p, err)
	}
	r, err := ParseRelationship("being_generated")
	if err != nil || r != BeingGenerated {
		t.Fatalf("expected being_generated, got %v %v", r, err)
	}
}

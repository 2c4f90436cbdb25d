package bazi

import (
	"fmt"
	"strings"
)

// Relationship clasifica la interaccion entre dos pares (elemento, polaridad).
type Relationship int

const (
	Harmony Relationship = iota
	Complementary
	Generating
	BeingGenerated
	Controlling
	BeingControlled
	Neutral
)

// RelationshipCount es el tamaño del enum Relationship.
const RelationshipCount = 7

var relationshipNames = [RelationshipCount]string{
	"harmony",
	"complementary",
	"generating",
	"being_generated",
	"controlling",
	"being_controlled",
	"neutral",
}

// Relationships devuelve las siete categorias en orden de evaluacion.
func Relationships() []Relationship {
	return []Relationship{Harmony, Complementary, Generating, BeingGenerated, Controlling, BeingControlled, Neutral}
}

func (r Relationship) Valid() bool {
	return r >= Harmony && r <= Neutral
}

func (r Relationship) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Relationship(%d)", int(r))
	}
	return relationshipNames[r]
}

// Inverse devuelve la categoria vista desde el otro lado.
func (r Relationship) Inverse() Relationship {
	switch r {
	case Generating:
		return BeingGenerated
	case BeingGenerated:
		return Generating
	case Controlling:
		return BeingControlled
	case BeingControlled:
		return Controlling
	default:
		return r
	}
}

func ParseRelationship(s string) (Relationship, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range relationshipNames {
		if n == key {
			return Relationship(i), nil
		}
	}
	return 0, fmt.Errorf("unknown relationship %q", s)
}

func (r Relationship) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("unknown relationship %d", int(r))
	}
	return []byte(relationshipNames[r]), nil
}

func (r *Relationship) UnmarshalText(b []byte) error {
	v, err := ParseRelationship(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Classify aplica las reglas en orden; la primera que coincide gana.
// a es el sujeto (la persona), b es el otro lado (la pareja o el dia).
func Classify(elementA Element, polarityA Polarity, elementB Element, polarityB Polarity) Relationship {
	switch {
	case elementA == elementB && polarityA == polarityB:
		return Harmony
	case elementA == elementB:
		return Complementary
	case elementA.Valid() && generating[elementA] == elementB:
		return Generating
	case elementB.Valid() && generating[elementB] == elementA:
		return BeingGenerated
	case elementA.Valid() && controlling[elementA] == elementB:
		return Controlling
	case elementB.Valid() && controlling[elementB] == elementA:
		return BeingControlled
	default:
		return Neutral
	}
}

// ClassifyChecked valida ambos lados antes de clasificar.
func ClassifyChecked(elementA Element, polarityA Polarity, elementB Element, polarityB Polarity) (Relationship, error) {
	if !elementA.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownElement, int(elementA))
	}
	if !elementB.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownElement, int(elementB))
	}
	if !polarityA.Valid() || !polarityB.Valid() {
		return 0, ErrUnknownPolarity
	}
	return Classify(elementA, polarityA, elementB, polarityB), nil
}

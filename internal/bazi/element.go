package bazi

import (
	"errors"
	"fmt"
	"strings"
)

// Element es una de las cinco fases (Wu Xing).
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// ElementCount es el tamaño del enum Element.
const ElementCount = 5

// Polarity es Yang o Yin.
type Polarity int

const (
	Yang Polarity = iota
	Yin
)

var (
	ErrUnknownElement  = errors.New("unknown element")
	ErrUnknownPolarity = errors.New("unknown polarity")
)

var elementNames = [ElementCount]string{"Wood", "Fire", "Earth", "Metal", "Water"}

// Ciclo generador: cada elemento alimenta al siguiente.
var generating = [ElementCount]Element{
	Wood:  Fire,
	Fire:  Earth,
	Earth: Metal,
	Metal: Water,
	Water: Wood,
}

// Ciclo de control: cada elemento restringe a otro.
var controlling = [ElementCount]Element{
	Wood:  Earth,
	Earth: Water,
	Water: Fire,
	Fire:  Metal,
	Metal: Wood,
}

// Elements devuelve los cinco elementos en orden del ciclo generador.
func Elements() []Element {
	return []Element{Wood, Fire, Earth, Metal, Water}
}

func (e Element) Valid() bool {
	return e >= Wood && e <= Water
}

func (e Element) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// Generates devuelve el elemento que e alimenta.
func (e Element) Generates() Element { return generating[e] }

// Controls devuelve el elemento que e restringe.
func (e Element) Controls() Element { return controlling[e] }

// ParseElement acepta el nombre en ingles sin importar mayusculas.
func ParseElement(s string) (Element, error) {
	name := strings.TrimSpace(s)
	for i, n := range elementNames {
		if strings.EqualFold(n, name) {
			return Element(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownElement, s)
}

func (e Element) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownElement, int(e))
	}
	return []byte(elementNames[e]), nil
}

func (e *Element) UnmarshalText(b []byte) error {
	v, err := ParseElement(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

func (p Polarity) Valid() bool {
	return p == Yang || p == Yin
}

func (p Polarity) String() string {
	switch p {
	case Yang:
		return "Yang"
	case Yin:
		return "Yin"
	default:
		return fmt.Sprintf("Polarity(%d)", int(p))
	}
}

func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yang":
		return Yang, nil
	case "yin":
		return Yin, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolarity, s)
	}
}

func (p Polarity) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolarity, int(p))
	}
	return []byte(p.String()), nil
}

func (p *Polarity) UnmarshalText(b []byte) error {
	v, err := ParsePolarity(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

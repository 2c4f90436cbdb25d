package mbti

import (
	"errors"
	"fmt"
	"strings"
)

// Type es un codigo MBTI validado de cuatro letras, ej. "INTJ".
type Type string

var ErrUnknownTypeCode = errors.New("unknown type code")

var allTypes = []Type{
	"INTJ", "INTP", "ENTJ", "ENTP",
	"INFJ", "INFP", "ENFJ", "ENFP",
	"ISTJ", "ISFJ", "ESTJ", "ESFJ",
	"ISTP", "ISFP", "ESTP", "ESFP",
}

// Types devuelve los 16 codigos validos.
func Types() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// ParseType normaliza y valida un codigo.
func ParseType(code string) (Type, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for _, t := range allTypes {
		if string(t) == normalized {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTypeCode, code)
}

func (t Type) Valid() bool {
	for _, v := range allTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (t Type) String() string { return string(t) }

// Letter devuelve la letra del eje por posicion fija.
func (t Type) Letter(a Axis) byte {
	return t[a]
}

func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Axis es una de las cuatro dicotomias.
type Axis int

const (
	Energy Axis = iota
	Information
	Decisions
	Lifestyle
)

const AxisCount = 4

var axisCodes = [AxisCount]string{"EI", "SN", "TF", "JP"}

var axisLabels = [AxisCount]string{"Energy", "Information", "Decisions", "Lifestyle"}

// Axes devuelve los ejes en el orden de las letras del codigo.
func Axes() []Axis {
	return []Axis{Energy, Information, Decisions, Lifestyle}
}

// Code devuelve el codigo canonico del eje, ej. "EI".
func (a Axis) Code() string { return axisCodes[a] }

func (a Axis) Label() string { return axisLabels[a] }

func (a Axis) String() string { return axisCodes[a] }

// ComboKey arma la clave de busqueda: letra doble si coinciden,
// o el codigo canonico del eje si difieren (nunca "IE").
func ComboKey(a Axis, first, second byte) string {
	if first == second {
		return string([]byte{first, first})
	}
	return a.Code()
}

// ComboKeys devuelve las tres claves validas del eje.
func (a Axis) ComboKeys() [3]string {
	code := a.Code()
	return [3]string{
		string([]byte{code[0], code[0]}),
		string([]byte{code[1], code[1]}),
		code,
	}
}

// ParseAxis acepta el codigo canonico del eje ("EI", "SN", "TF", "JP").
func ParseAxis(code string) (Axis, error) {
	for i, c := range axisCodes {
		if c == code {
			return Axis(i), nil
		}
	}
	return 0, fmt.Errorf("unknown axis %q", code)
}

// HasLetter indica si la letra pertenece al eje.
func (a Axis) HasLetter(letter byte) bool {
	code := a.Code()
	return letter == code[0] || letter == code[1]
}

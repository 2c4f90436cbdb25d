package mbti

import "fmt"

// Function es una funcion cognitiva dominante de dos letras.
type Function string

const (
	Ni Function = "Ni"
	Ne Function = "Ne"
	Si Function = "Si"
	Se Function = "Se"
	Ti Function = "Ti"
	Te Function = "Te"
	Fi Function = "Fi"
	Fe Function = "Fe"
)

var dominantFunctions = map[Type]Function{
	"INTJ": Ni,
	"INFJ": Ni,
	"ENTP": Ne,
	"ENFP": Ne,
	"ISTJ": Si,
	"ISFJ": Si,
	"ESTP": Se,
	"ESFP": Se,
	"INTP": Ti,
	"ISTP": Ti,
	"ENTJ": Te,
	"ESTJ": Te,
	"INFP": Fi,
	"ISFP": Fi,
	"ENFJ": Fe,
	"ESFJ": Fe,
}

// DominantFunction devuelve la funcion dominante del tipo.
func DominantFunction(t Type) (Function, error) {
	f, ok := dominantFunctions[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTypeCode, string(t))
	}
	return f, nil
}

// Match clasifica dos funciones dominantes.
type Match int

const (
	SameFunction Match = iota
	SameAxis
	DifferentFunction
)

const MatchCount = 3

var matchNames = [MatchCount]string{"same", "same_axis", "different"}

func (m Match) String() string { return matchNames[m] }

func (m Match) MarshalText() ([]byte, error) {
	if m < 0 || m >= MatchCount {
		return nil, fmt.Errorf("unknown function match %d", int(m))
	}
	return []byte(matchNames[m]), nil
}

func (m *Match) UnmarshalText(b []byte) error {
	v, err := ParseMatch(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMatch acepta "same", "same_axis" o "different".
func ParseMatch(s string) (Match, error) {
	for i, n := range matchNames {
		if n == s {
			return Match(i), nil
		}
	}
	return 0, fmt.Errorf("unknown function match %q", s)
}

// MatchFunctions: misma funcion, mismo eje (Ni/Ne, Ti/Te...) o distinta.
func MatchFunctions(a, b Function) Match {
	if a == b {
		return SameFunction
	}
	if len(a) > 0 && len(b) > 0 && a[0] == b[0] {
		return SameAxis
	}
	return DifferentFunction
}

package mbti

import (
	"errors"
	"fmt"
)

var ErrUnknownLetter = errors.New("unknown preference letter")

// Scores acumula votos por letra durante el cuestionario.
type Scores struct {
	E, I, S, N, T, F, J, P int
}

// Add suma un voto a la letra indicada.
func (s *Scores) Add(letter byte) error {
	switch letter {
	case 'E':
		s.E++
	case 'I':
		s.I++
	case 'S':
		s.S++
	case 'N':
		s.N++
	case 'T':
		s.T++
	case 'F':
		s.F++
	case 'J':
		s.J++
	case 'P':
		s.P++
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLetter, string(letter))
	}
	return nil
}

// Type resuelve el codigo; los empates favorecen la primera letra (E, S, T, J).
func (s Scores) Type() Type {
	pick := func(a, b int, la, lb byte) byte {
		if a >= b {
			return la
		}
		return lb
	}
	code := []byte{
		pick(s.E, s.I, 'E', 'I'),
		pick(s.S, s.N, 'S', 'N'),
		pick(s.T, s.F, 'T', 'F'),
		pick(s.J, s.P, 'J', 'P'),
	}
	return Type(code)
}

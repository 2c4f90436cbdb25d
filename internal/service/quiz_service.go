package service

import (
	"errors"
	"fmt"
	"strings"

	"saju-mbti/internal/content"
	"saju-mbti/internal/mbti"
)

var (
	ErrQuizServiceNotConfigured = errors.New("quiz service not configured")
	ErrQuizInvalidAnswer        = errors.New("quiz invalid answer")
	ErrQuizIncomplete           = errors.New("quiz incomplete")
)

// QuizService sirve el cuestionario estatico y calcula el tipo resultante.
type QuizService struct {
	tables *content.Tables
}

func NewQuizService(tables *content.Tables) *QuizService {
	return &QuizService{tables: tables}
}

// QuizAnswer elige la opcion "a" o "b" de una pregunta.
type QuizAnswer struct {
	QuestionID int    `json:"question_id"`
	Choice     string `json:"choice"`
}

type QuizResult struct {
	Type        mbti.Type               `json:"type"`
	Scores      mbti.Scores             `json:"scores"`
	Description content.TypeDescription `json:"description"`
}

// Questions devuelve las preguntas en orden.
func (s *QuizService) Questions() []content.Question {
	if s == nil || s.tables == nil {
		return nil
	}
	out := make([]content.Question, len(s.tables.Questions))
	copy(out, s.tables.Questions)
	return out
}

// Score exige una respuesta por pregunta; los empates favorecen E, S, T y J.
func (s *QuizService) Score(answers []QuizAnswer) (QuizResult, error) {
	if s == nil || s.tables == nil {
		return QuizResult{}, ErrQuizServiceNotConfigured
	}
	byID := make(map[int]content.Question, len(s.tables.Questions))
	for _, q := range s.tables.Questions {
		byID[q.ID] = q
	}

	var scores mbti.Scores
	answered := make(map[int]bool, len(answers))
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			return QuizResult{}, fmt.Errorf("%w: unknown question %d", ErrQuizInvalidAnswer, a.QuestionID)
		}
		if answered[a.QuestionID] {
			return QuizResult{}, fmt.Errorf("%w: question %d answered twice", ErrQuizInvalidAnswer, a.QuestionID)
		}
		var letter string
		switch strings.ToLower(strings.TrimSpace(a.Choice)) {
		case "a":
			letter = q.OptionA.Letter
		case "b":
			letter = q.OptionB.Letter
		default:
			return QuizResult{}, fmt.Errorf("%w: choice %q for question %d", ErrQuizInvalidAnswer, a.Choice, a.QuestionID)
		}
		if err := scores.Add(letter[0]); err != nil {
			return QuizResult{}, err
		}
		answered[a.QuestionID] = true
	}
	if len(answered) != len(byID) {
		return QuizResult{}, fmt.Errorf("%w: %d of %d answered", ErrQuizIncomplete, len(answered), len(byID))
	}

	typ := scores.Type()
	desc, err := s.tables.Type(typ)
	if err != nil {
		return QuizResult{}, err
	}
	return QuizResult{Type: typ, Scores: scores, Description: desc}, nil
}

// Describe devuelve la ficha de un tipo.
func (s *QuizService) Describe(code string) (mbti.Type, content.TypeDescription, error) {
	if s == nil || s.tables == nil {
		return "", content.TypeDescription{}, ErrQuizServiceNotConfigured
	}
	typ, err := mbti.ParseType(code)
	if err != nil {
		return "", content.TypeDescription{}, err
	}
	desc, err := s.tables.Type(typ)
	return typ, desc, err
}

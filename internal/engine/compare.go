package engine

import (
	"fmt"

	"saju-mbti/internal/mbti"
)

// DimensionResult es la interaccion de un eje entre dos tipos.
type DimensionResult struct {
	Axis      string `json:"axis"`
	Label     string `json:"label"`
	LetterA   string `json:"letter_a"`
	LetterB   string `json:"letter_b"`
	Key       string `json:"key"`
	Score     int    `json:"score"`
	Strength  string `json:"strength"`
	Challenge string `json:"challenge"`
	Tip       string `json:"tip"`
}

// FunctionResult compara las funciones dominantes.
type FunctionResult struct {
	FunctionA   mbti.Function `json:"function_a"`
	FunctionB   mbti.Function `json:"function_b"`
	Match       mbti.Match    `json:"match"`
	Score       int           `json:"score"`
	Description string        `json:"description"`
}

// TypeComparison junta los cuatro ejes, la funcion dominante y el promedio.
type TypeComparison struct {
	Dimensions [mbti.AxisCount]DimensionResult `json:"dimensions"`
	Function   FunctionResult                  `json:"function"`
	Average    float64                         `json:"average"`
}

// CompareDimensions busca la interaccion de cada eje con la clave canonica.
func (e *Engine) CompareDimensions(a, b mbti.Type) ([mbti.AxisCount]DimensionResult, error) {
	var out [mbti.AxisCount]DimensionResult
	if err := e.ready(); err != nil {
		return out, err
	}
	if err := validTypes(a, b); err != nil {
		return out, err
	}
	for _, axis := range mbti.Axes() {
		la, lb := a.Letter(axis), b.Letter(axis)
		key := mbti.ComboKey(axis, la, lb)
		rec, err := e.tables.Dichotomy(axis, key)
		if err != nil {
			return out, err
		}
		out[axis] = DimensionResult{
			Axis:      axis.Code(),
			Label:     axis.Label(),
			LetterA:   string(la),
			LetterB:   string(lb),
			Key:       key,
			Score:     rec.Score,
			Strength:  rec.Strength,
			Challenge: rec.Challenge,
			Tip:       rec.Tip,
		}
	}
	return out, nil
}

// CompareFunctions clasifica las funciones dominantes como same, same_axis o different.
func (e *Engine) CompareFunctions(a, b mbti.Type) (FunctionResult, error) {
	if err := e.ready(); err != nil {
		return FunctionResult{}, err
	}
	fa, err := mbti.DominantFunction(a)
	if err != nil {
		return FunctionResult{}, err
	}
	fb, err := mbti.DominantFunction(b)
	if err != nil {
		return FunctionResult{}, err
	}
	match := mbti.MatchFunctions(fa, fb)
	rec := e.tables.Functions[match]
	return FunctionResult{
		FunctionA:   fa,
		FunctionB:   fb,
		Match:       match,
		Score:       rec.Score,
		Description: rec.Description,
	}, nil
}

// CompareTypes devuelve ejes, funcion y el promedio simple de los cinco puntajes.
func (e *Engine) CompareTypes(a, b mbti.Type) (TypeComparison, error) {
	dims, err := e.CompareDimensions(a, b)
	if err != nil {
		return TypeComparison{}, err
	}
	fn, err := e.CompareFunctions(a, b)
	if err != nil {
		return TypeComparison{}, err
	}
	total := fn.Score
	for _, d := range dims {
		total += d.Score
	}
	return TypeComparison{
		Dimensions: dims,
		Function:   fn,
		Average:    float64(total) / float64(mbti.AxisCount+1),
	}, nil
}

func validTypes(types ...mbti.Type) error {
	for _, t := range types {
		if !t.Valid() {
			return fmt.Errorf("%w: %q", mbti.ErrUnknownTypeCode, string(t))
		}
	}
	return nil
}

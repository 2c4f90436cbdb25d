package engine

import (
	"sort"

	"saju-mbti/internal/bazi"
	"saju-mbti/internal/mbti"
)

const (
	mbtiWeight    = 0.6
	elementWeight = 0.4
)

// PersonProfile es la entrada minima de compatibilidad.
type PersonProfile struct {
	Type     mbti.Type     `json:"type"`
	Element  bazi.Element  `json:"element"`
	Polarity bazi.Polarity `json:"polarity"`
}

// ProfileFromPillar arma el perfil con el elemento del pilar de nacimiento.
func ProfileFromPillar(t mbti.Type, birth bazi.Pillar) PersonProfile {
	return PersonProfile{Type: t, Element: birth.Element, Polarity: birth.Polarity}
}

// ElementResult es la relacion de elementos con su texto.
type ElementResult struct {
	Relationship bazi.Relationship `json:"relationship"`
	Title        string            `json:"title"`
	Score        int               `json:"score"`
	Description  string            `json:"description"`
	Strength     string            `json:"strength"`
	Challenge    string            `json:"challenge"`
}

type CompatibilityReport struct {
	OverallScore     float64                         `json:"overall_score"`
	Label            string                          `json:"label"`
	MBTIScore        float64                         `json:"mbti_score"`
	Dimensions       [mbti.AxisCount]DimensionResult `json:"dimensions"`
	Function         FunctionResult                  `json:"function"`
	Element          ElementResult                   `json:"element"`
	Strengths        []string                        `json:"strengths"`
	Challenges       []string                        `json:"challenges"`
	Activities       []string                        `json:"activities"`
	CommunicationTip string                          `json:"communication_tip"`
}

// ScoreLabel traduce el puntaje a una etiqueta; el limite inferior de cada nivel es inclusivo.
func ScoreLabel(score float64) string {
	switch {
	case score >= 4.5:
		return "Extraordinary Connection"
	case score >= 3.5:
		return "Strong Connection"
	case score >= 2.5:
		return "Growing Connection"
	case score >= 1.5:
		return "Unique Connection"
	default:
		return "Intriguing Connection"
	}
}

// Aggregate calcula el reporte de compatibilidad de dos personas.
func (e *Engine) Aggregate(a, b PersonProfile) (CompatibilityReport, error) {
	if err := e.ready(); err != nil {
		return CompatibilityReport{}, err
	}
	rel, err := bazi.ClassifyChecked(a.Element, a.Polarity, b.Element, b.Polarity)
	if err != nil {
		return CompatibilityReport{}, err
	}
	cmp, err := e.CompareTypes(a.Type, b.Type)
	if err != nil {
		return CompatibilityReport{}, err
	}

	compat := e.tables.Compat[rel]
	overall := mbtiWeight*cmp.Average + elementWeight*float64(compat.Score)

	// Orden descendente estable: los empates conservan el orden de los ejes.
	ranked := make([]DimensionResult, len(cmp.Dimensions))
	copy(ranked, cmp.Dimensions[:])
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	strengths := []string{compat.Strength}
	for _, d := range ranked[:2] {
		strengths = append(strengths, d.Strength)
	}
	challenges := []string{compat.Challenge}
	for _, d := range ranked[len(ranked)-2:] {
		challenges = append(challenges, d.Challenge)
	}

	activities := make([]string, len(compat.Activities))
	copy(activities, compat.Activities)

	return CompatibilityReport{
		OverallScore: overall,
		Label:        ScoreLabel(overall),
		MBTIScore:    cmp.Average,
		Dimensions:   cmp.Dimensions,
		Function:     cmp.Function,
		Element: ElementResult{
			Relationship: rel,
			Title:        compat.Title,
			Score:        compat.Score,
			Description:  compat.Description,
			Strength:     compat.Strength,
			Challenge:    compat.Challenge,
		},
		Strengths:        strengths,
		Challenges:       challenges,
		Activities:       activities,
		CommunicationTip: compat.CommunicationTip,
	}, nil
}

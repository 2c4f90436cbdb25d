package content

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"saju-mbti/internal/bazi"
	"saju-mbti/internal/mbti"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

var ErrIncompleteTable = errors.New("incomplete content table")

// ElementCompat es el registro de compatibilidad por relacion de elementos,
// junto con las actividades sugeridas para la pareja.
type ElementCompat struct {
	Title            string   `yaml:"title" json:"title"`
	Score            int      `yaml:"score" json:"score"`
	Description      string   `yaml:"description" json:"description"`
	Strength         string   `yaml:"strength" json:"strength"`
	Challenge        string   `yaml:"challenge" json:"challenge"`
	Activities       []string `yaml:"activities" json:"activities"`
	CommunicationTip string   `yaml:"communication_tip" json:"communication_tip"`
}

// ActivityTag describe el dia segun la relacion con el elemento de nacimiento.
type ActivityTag struct {
	EnergyLevel int      `yaml:"energy_level" json:"energy_level"`
	Luck        int      `yaml:"luck" json:"luck"`
	BestFor     []string `yaml:"best_for" json:"best_for"`
	WatchOutFor []string `yaml:"watch_out_for" json:"watch_out_for"`
}

type DichotomyInteraction struct {
	Score     int    `yaml:"score" json:"score"`
	Strength  string `yaml:"strength" json:"strength"`
	Challenge string `yaml:"challenge" json:"challenge"`
	Tip       string `yaml:"tip" json:"tip"`
}

type FunctionInteraction struct {
	Score       int    `yaml:"score" json:"score"`
	Description string `yaml:"description" json:"description"`
}

// TypeDescription agrupa la frase base del mensaje diario y la ficha del tipo.
type TypeDescription struct {
	Title           string   `yaml:"title" json:"title"`
	Template        string   `yaml:"template" json:"-"`
	Summary         string   `yaml:"summary" json:"summary"`
	Characteristics []string `yaml:"characteristics" json:"characteristics"`
	Strengths       []string `yaml:"strengths" json:"strengths"`
	WorldView       string   `yaml:"world_view" json:"world_view"`
}

type Option struct {
	Text   string `yaml:"text" json:"text"`
	Letter string `yaml:"letter" json:"letter"`
}

type Question struct {
	ID      int    `yaml:"id" json:"id"`
	Text    string `yaml:"question" json:"question"`
	Axis    string `yaml:"axis" json:"axis"`
	OptionA Option `yaml:"option_a" json:"option_a"`
	OptionB Option `yaml:"option_b" json:"option_b"`
}

// Tables contiene todo el contenido estatico indexado por los enums del dominio.
// Se carga una vez y es de solo lectura.
type Tables struct {
	Compat           [bazi.RelationshipCount]ElementCompat
	Activities       [bazi.RelationshipCount]ActivityTag
	Dichotomies      [mbti.AxisCount][3]DichotomyInteraction
	Functions        [mbti.MatchCount]FunctionInteraction
	StemInteractions [bazi.StemCount][bazi.StemCount]string
	DayDescriptions  [bazi.StemCount][bazi.BranchCount]string
	Types            map[mbti.Type]TypeDescription
	Questions        []Question
}

// Load lee y valida todas las tablas embebidas.
func Load() (*Tables, error) {
	t := &Tables{}
	steps := []struct {
		file string
		fn   func([]byte) error
	}{
		{"element_compat.yaml", t.loadCompat},
		{"activity_tags.yaml", t.loadActivities},
		{"dichotomy.yaml", t.loadDichotomies},
		{"functions.yaml", t.loadFunctions},
		{"stem_interactions.yaml", t.loadStemInteractions},
		{"day_descriptions.yaml", t.loadDayDescriptions},
		{"types.yaml", t.loadTypes},
		{"quiz.yaml", t.loadQuiz},
	}
	for _, step := range steps {
		data, err := dataFS.ReadFile("data/" + step.file)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", step.file, err)
		}
		if err := step.fn(data); err != nil {
			return nil, fmt.Errorf("load %s: %w", step.file, err)
		}
	}
	return t, nil
}

// Dichotomy busca la interaccion del eje por clave de combinacion ("EE", "EI"...).
func (t *Tables) Dichotomy(axis mbti.Axis, key string) (DichotomyInteraction, error) {
	idx, ok := comboIndex(axis, key)
	if !ok {
		return DichotomyInteraction{}, fmt.Errorf("%w: no dichotomy entry %s/%s", ErrIncompleteTable, axis, key)
	}
	return t.Dichotomies[axis][idx], nil
}

// DayDescription devuelve el texto del dia del ciclo.
func (t *Tables) DayDescription(p bazi.Pillar) string {
	return t.DayDescriptions[p.Stem][p.Branch]
}

// StemInteraction devuelve el texto para (tronco de nacimiento, tronco del dia).
func (t *Tables) StemInteraction(birth, day bazi.Stem) string {
	return t.StemInteractions[birth][day]
}

// Type devuelve la ficha del tipo.
func (t *Tables) Type(code mbti.Type) (TypeDescription, error) {
	d, ok := t.Types[code]
	if !ok {
		return TypeDescription{}, fmt.Errorf("%w: %q", mbti.ErrUnknownTypeCode, string(code))
	}
	return d, nil
}

func comboIndex(axis mbti.Axis, key string) (int, bool) {
	if axis < 0 || axis >= mbti.AxisCount {
		return 0, false
	}
	for i, k := range axis.ComboKeys() {
		if k == key {
			return i, true
		}
	}
	return 0, false
}

func (t *Tables) loadCompat(data []byte) error {
	var doc struct {
		Relationships map[string]ElementCompat `yaml:"relationships"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	for _, rel := range bazi.Relationships() {
		rec, ok := doc.Relationships[rel.String()]
		if !ok {
			return fmt.Errorf("%w: missing relationship %s", ErrIncompleteTable, rel)
		}
		if err := checkScore(rec.Score); err != nil {
			return fmt.Errorf("%s: %w", rel, err)
		}
		if blank(rec.Title, rec.Description, rec.Strength, rec.Challenge, rec.CommunicationTip) || len(rec.Activities) == 0 {
			return fmt.Errorf("%w: relationship %s has empty fields", ErrIncompleteTable, rel)
		}
		t.Compat[rel] = rec
	}
	return nil
}

func (t *Tables) loadActivities(data []byte) error {
	var doc struct {
		Tags map[string]ActivityTag `yaml:"tags"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	for _, rel := range bazi.Relationships() {
		tag, ok := doc.Tags[rel.String()]
		if !ok {
			return fmt.Errorf("%w: missing activity tag %s", ErrIncompleteTable, rel)
		}
		if err := checkScore(tag.EnergyLevel); err != nil {
			return fmt.Errorf("%s energy: %w", rel, err)
		}
		if err := checkScore(tag.Luck); err != nil {
			return fmt.Errorf("%s luck: %w", rel, err)
		}
		if len(tag.BestFor) == 0 || len(tag.WatchOutFor) == 0 {
			return fmt.Errorf("%w: activity tag %s has empty lists", ErrIncompleteTable, rel)
		}
		t.Activities[rel] = tag
	}
	return nil
}

func (t *Tables) loadDichotomies(data []byte) error {
	var doc struct {
		Axes map[string]map[string]DichotomyInteraction `yaml:"axes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	for _, axis := range mbti.Axes() {
		combos, ok := doc.Axes[axis.Code()]
		if !ok {
			return fmt.Errorf("%w: missing axis %s", ErrIncompleteTable, axis)
		}
		for i, key := range axis.ComboKeys() {
			rec, ok := combos[key]
			if !ok {
				return fmt.Errorf("%w: missing combo %s/%s", ErrIncompleteTable, axis, key)
			}
			if err := checkScore(rec.Score); err != nil {
				return fmt.Errorf("%s/%s: %w", axis, key, err)
			}
			if blank(rec.Strength, rec.Challenge) {
				return fmt.Errorf("%w: combo %s/%s has empty text", ErrIncompleteTable, axis, key)
			}
			t.Dichotomies[axis][i] = rec
		}
		if len(combos) != 3 {
			return fmt.Errorf("%w: axis %s has %d combos, want 3", ErrIncompleteTable, axis, len(combos))
		}
	}
	return nil
}

func (t *Tables) loadFunctions(data []byte) error {
	var doc struct {
		Interactions map[string]FunctionInteraction `yaml:"interactions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	for i := 0; i < mbti.MatchCount; i++ {
		m := mbti.Match(i)
		rec, ok := doc.Interactions[m.String()]
		if !ok {
			return fmt.Errorf("%w: missing function interaction %s", ErrIncompleteTable, m)
		}
		if err := checkScore(rec.Score); err != nil {
			return fmt.Errorf("%s: %w", m, err)
		}
		if blank(rec.Description) {
			return fmt.Errorf("%w: function interaction %s has empty text", ErrIncompleteTable, m)
		}
		t.Functions[m] = rec
	}
	return nil
}

func (t *Tables) loadStemInteractions(data []byte) error {
	var doc struct {
		Interactions map[string]map[string]string `yaml:"interactions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	count := 0
	for birthSym, row := range doc.Interactions {
		birth, err := bazi.ParseStem(birthSym)
		if err != nil {
			return err
		}
		for daySym, text := range row {
			day, err := bazi.ParseStem(daySym)
			if err != nil {
				return err
			}
			if blank(text) {
				return fmt.Errorf("%w: empty interaction %s-%s", ErrIncompleteTable, birth, day)
			}
			t.StemInteractions[birth][day] = strings.TrimSpace(text)
			count++
		}
	}
	if count != bazi.StemCount*bazi.StemCount {
		return fmt.Errorf("%w: %d stem interactions, want %d", ErrIncompleteTable, count, bazi.StemCount*bazi.StemCount)
	}
	return nil
}

func (t *Tables) loadDayDescriptions(data []byte) error {
	var doc struct {
		Days map[string]string `yaml:"days"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	for label, text := range doc.Days {
		runes := []rune(label)
		if len(runes) != 2 {
			return fmt.Errorf("%w: bad day label %q", ErrIncompleteTable, label)
		}
		stem, err := bazi.ParseStem(string(runes[0]))
		if err != nil {
			return err
		}
		branch, err := bazi.ParseBranch(string(runes[1]))
		if err != nil {
			return err
		}
		if _, err := bazi.NewPillar(stem, branch); err != nil {
			return err
		}
		if blank(text) {
			return fmt.Errorf("%w: empty day description %s", ErrIncompleteTable, label)
		}
		t.DayDescriptions[stem][branch] = strings.TrimSpace(text)
	}
	if len(doc.Days) != bazi.CycleLength {
		return fmt.Errorf("%w: %d day descriptions, want %d", ErrIncompleteTable, len(doc.Days), bazi.CycleLength)
	}
	return nil
}

func (t *Tables) loadTypes(data []byte) error {
	var doc struct {
		Types map[string]TypeDescription `yaml:"types"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	t.Types = make(map[mbti.Type]TypeDescription, len(doc.Types))
	for code, desc := range doc.Types {
		typ, err := mbti.ParseType(code)
		if err != nil {
			return err
		}
		if blank(desc.Title, desc.Template, desc.Summary, desc.WorldView) {
			return fmt.Errorf("%w: type %s has empty fields", ErrIncompleteTable, typ)
		}
		t.Types[typ] = desc
	}
	for _, typ := range mbti.Types() {
		if _, ok := t.Types[typ]; !ok {
			return fmt.Errorf("%w: missing type %s", ErrIncompleteTable, typ)
		}
	}
	return nil
}

func (t *Tables) loadQuiz(data []byte) error {
	var doc struct {
		Questions []Question `yaml:"questions"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	perAxis := make(map[mbti.Axis]int)
	seen := make(map[int]bool)
	for _, q := range doc.Questions {
		axis, err := mbti.ParseAxis(q.Axis)
		if err != nil {
			return fmt.Errorf("question %d: %w", q.ID, err)
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %d", q.ID)
		}
		seen[q.ID] = true
		for _, opt := range []Option{q.OptionA, q.OptionB} {
			if len(opt.Letter) != 1 || !axis.HasLetter(opt.Letter[0]) {
				return fmt.Errorf("question %d: letter %q does not belong to %s", q.ID, opt.Letter, axis)
			}
		}
		if q.OptionA.Letter == q.OptionB.Letter {
			return fmt.Errorf("question %d: both options score %s", q.ID, q.OptionA.Letter)
		}
		perAxis[axis]++
	}
	for _, axis := range mbti.Axes() {
		if perAxis[axis] == 0 {
			return fmt.Errorf("%w: no questions for axis %s", ErrIncompleteTable, axis)
		}
	}
	t.Questions = doc.Questions
	return nil
}

func checkScore(v int) error {
	if v < 1 || v > 5 {
		return fmt.Errorf("%w: score %d outside 1-5", ErrIncompleteTable, v)
	}
	return nil
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

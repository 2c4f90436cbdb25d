package bazi

import (
	"errors"
	"fmt"
	"time"
)

// Stem es uno de los diez troncos celestiales.
type Stem int

// Branch es una de las doce ramas terrestres.
type Branch int

const (
	StemCount   = 10
	BranchCount = 12
	CycleLength = 60
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrUnknownStem     = errors.New("unknown stem")
	ErrUnknownBranch   = errors.New("unknown branch")
	ErrProviderFailure = errors.New("pillar provider failure")
)

// referenceJDN es el dia juliano del 2000-01-01, definido como 甲子.
const referenceJDN = 2451545

const (
	minYear = 1900
	maxYear = 2100
)

var stemSymbols = [StemCount]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}

var branchSymbols = [BranchCount]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}

var branchAnimals = [BranchCount]string{
	"Rat", "Ox", "Tiger", "Rabbit", "Dragon", "Snake",
	"Horse", "Goat", "Monkey", "Rooster", "Dog", "Pig",
}

type stemAttrs struct {
	element  Element
	polarity Polarity
}

var stemTable = [StemCount]stemAttrs{
	{Wood, Yang},  // 甲
	{Wood, Yin},   // 乙
	{Fire, Yang},  // 丙
	{Fire, Yin},   // 丁
	{Earth, Yang}, // 戊
	{Earth, Yin},  // 己
	{Metal, Yang}, // 庚
	{Metal, Yin},  // 辛
	{Water, Yang}, // 壬
	{Water, Yin},  // 癸
}

func (s Stem) Valid() bool { return s >= 0 && s < StemCount }

func (s Stem) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemSymbols[s]
}

func (s Stem) Element() Element   { return stemTable[s].element }
func (s Stem) Polarity() Polarity { return stemTable[s].polarity }

func ParseStem(symbol string) (Stem, error) {
	for i, sym := range stemSymbols {
		if sym == symbol {
			return Stem(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStem, symbol)
}

func (s Stem) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStem, int(s))
	}
	return []byte(stemSymbols[s]), nil
}

func (s *Stem) UnmarshalText(b []byte) error {
	v, err := ParseStem(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (b Branch) Valid() bool { return b >= 0 && b < BranchCount }

func (b Branch) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchSymbols[b]
}

// Animal devuelve el animal del zodiaco asociado a la rama.
func (b Branch) Animal() string { return branchAnimals[b] }

func ParseBranch(symbol string) (Branch, error) {
	for i, sym := range branchSymbols {
		if sym == symbol {
			return Branch(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBranch, symbol)
}

func (b Branch) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBranch, int(b))
	}
	return []byte(branchSymbols[b]), nil
}

func (b *Branch) UnmarshalText(data []byte) error {
	v, err := ParseBranch(string(data))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Pillar es el par tronco/rama de un dia con sus atributos derivados.
type Pillar struct {
	Stem     Stem     `json:"stem"`
	Branch   Branch   `json:"branch"`
	Element  Element  `json:"element"`
	Polarity Polarity `json:"polarity"`
}

// NewPillar construye un pilar validando que el par exista en el ciclo de 60.
func NewPillar(stem Stem, branch Branch) (Pillar, error) {
	if !stem.Valid() {
		return Pillar{}, fmt.Errorf("%w: %d", ErrUnknownStem, int(stem))
	}
	if !branch.Valid() {
		return Pillar{}, fmt.Errorf("%w: %d", ErrUnknownBranch, int(branch))
	}
	// Tronco y rama avanzan juntos, asi que siempre comparten paridad.
	if int(stem)%2 != int(branch)%2 {
		return Pillar{}, fmt.Errorf("%s%s is not part of the sexagenary cycle", stem, branch)
	}
	return Pillar{
		Stem:     stem,
		Branch:   branch,
		Element:  stem.Element(),
		Polarity: stem.Polarity(),
	}, nil
}

// Animal devuelve el animal de la rama del dia.
func (p Pillar) Animal() string { return p.Branch.Animal() }

// Label devuelve el par en caracteres, ej. "甲子".
func (p Pillar) Label() string { return p.Stem.String() + p.Branch.String() }

// CycleIndex devuelve la posicion 0..59 dentro del ciclo sexagenario.
func (p Pillar) CycleIndex() int {
	for i := 0; i < CycleLength; i++ {
		if i%StemCount == int(p.Stem) && i%BranchCount == int(p.Branch) {
			return i
		}
	}
	return -1
}

// YearPillar es el par tronco/rama de un año y su animal.
type YearPillar struct {
	Stem   Stem   `json:"stem"`
	Branch Branch `json:"branch"`
	Animal string `json:"animal"`
}

// ResolvePillar calcula el pilar del dia con el numero de dia juliano.
func ResolvePillar(year, month, day int) (Pillar, error) {
	if err := ValidateDate(year, month, day); err != nil {
		return Pillar{}, err
	}
	offset := julianDayNumber(year, month, day) - referenceJDN
	stem := Stem(((offset % StemCount) + StemCount) % StemCount)
	branch := Branch(((offset % BranchCount) + BranchCount) % BranchCount)
	return Pillar{
		Stem:     stem,
		Branch:   branch,
		Element:  stem.Element(),
		Polarity: stem.Polarity(),
	}, nil
}

// ResolveYearPillar usa el año calendario, sin corte de año nuevo lunar.
// 1984 es 甲子 (Rata).
func ResolveYearPillar(year int) (YearPillar, error) {
	if year < minYear || year > maxYear {
		return YearPillar{}, fmt.Errorf("%w: year %d outside %d-%d", ErrInvalidDate, year, minYear, maxYear)
	}
	stem := Stem(((year-4)%StemCount + StemCount) % StemCount)
	branch := Branch(((year-4)%BranchCount + BranchCount) % BranchCount)
	return YearPillar{Stem: stem, Branch: branch, Animal: branch.Animal()}, nil
}

// ResolveToday resuelve el pilar de la fecha calendario de now en su propia zona.
func ResolveToday(now time.Time) (Pillar, error) {
	y, m, d := now.Date()
	return ResolvePillar(y, int(m), d)
}

// ValidateDate verifica una fecha gregoriana proleptica dentro de la ventana soportada.
func ValidateDate(year, month, day int) error {
	if year < minYear || year > maxYear {
		return fmt.Errorf("%w: year %d outside %d-%d", ErrInvalidDate, year, minYear, maxYear)
	}
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, year, month, day)
	}
	return nil
}

// DaysInMonth devuelve la cantidad de dias del mes (month 1..12).
func DaysInMonth(year, month int) int {
	switch month {
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func julianDayNumber(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}

package mbti

import (
	"errors"
	"testing"
)

func TestParseType(t *testing.T) {
	got, err := ParseType(" intj ")
	if err != nil || got != "INTJ" {
		t.Fatalf("expected INTJ, got %q %v", got, err)
	}
	for _, bad := range []string{"", "INTX", "INT", "INTJP", "XXXX"} {
		if _, err := ParseType(bad); !errors.Is(err, ErrUnknownTypeCode) {
			t.Fatalf("ParseType(%q) expected ErrUnknownTypeCode, got %v", bad, err)
		}
	}
	if Type("intj").Valid() {
		t.Fatalf("lowercase literal must not be valid without parsing")
	}
	if len(Types()) != 16 {
		t.Fatalf("expected 16 types, got %d", len(Types()))
	}
}

func TestComboKeyCanonical(t *testing.T) {
	tests := []struct {
		axis          Axis
		first, second byte
		want          string
	}{
		{Energy, 'E', 'E', "EE"},
		{Energy, 'I', 'I', "II"},
		{Energy, 'E', 'I', "EI"},
		{Energy, 'I', 'E', "EI"},
		{Information, 'N', 'S', "SN"},
		{Decisions, 'F', 'T', "TF"},
		{Lifestyle, 'P', 'J', "JP"},
		{Lifestyle, 'P', 'P', "PP"},
	}
	for _, tt := range tests {
		if got := ComboKey(tt.axis, tt.first, tt.second); got != tt.want {
			t.Fatalf("ComboKey(%s, %c, %c) = %q; want %q", tt.axis, tt.first, tt.second, got, tt.want)
		}
	}
	if keys := Lifestyle.ComboKeys(); keys != [3]string{"JJ", "PP", "JP"} {
		t.Fatalf("unexpected combo keys %v", keys)
	}
}

func TestDominantFunctionCoversAllTypes(t *testing.T) {
	counts := make(map[Function]int)
	for _, typ := range Types() {
		f, err := DominantFunction(typ)
		if err != nil {
			t.Fatalf("%s: %v", typ, err)
		}
		counts[f]++
	}
	if len(counts) != 8 {
		t.Fatalf("expected 8 functions, got %d", len(counts))
	}
	for f, n := range counts {
		if n != 2 {
			t.Fatalf("expected two types per function, %s has %d", f, n)
		}
	}
	if _, err := DominantFunction("ABCD"); !errors.Is(err, ErrUnknownTypeCode) {
		t.Fatalf("expected ErrUnknownTypeCode, got %v", err)
	}
}

func TestMatchFunctions(t *testing.T) {
	tests := []struct {
		a, b Function
		want Match
	}{
		{Ni, Ni, SameFunction},
		{Ni, Ne, SameAxis},
		{Te, Ti, SameAxis},
		{Fi, Te, DifferentFunction},
		{Se, Ne, DifferentFunction},
	}
	for _, tt := range tests {
		if got := MatchFunctions(tt.a, tt.b); got != tt.want {
			t.Fatalf("MatchFunctions(%s, %s) = %s; want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestScoresType(t *testing.T) {
	var s Scores
	for _, l := range []byte("IINNNTFFJPP") {
		if err := s.Add(l); err != nil {
			t.Fatalf("add %c: %v", l, err)
		}
	}
	if got := s.Type(); got != "INFP" {
		t.Fatalf("expected INFP, got %s", got)
	}

	var tie Scores
	if got := tie.Type(); got != "ESTJ" {
		t.Fatalf("ties should favour E/S/T/J, got %s", got)
	}
	if err := tie.Add('X'); !errors.Is(err, ErrUnknownLetter) {
		t.Fatalf("expected ErrUnknownLetter, got %v", err)
	}
}

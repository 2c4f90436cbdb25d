package bazi

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type stubProvider struct {
	day      Pillar
	year     YearPillar
	err      error
	panicMsg string
	calls    int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) DayPillar(Date) (Pillar, error) {
	s.calls++
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.day, s.err
}

func (s *stubProvider) YearPillar(Date) (YearPillar, error) {
	s.calls++
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	return s.year, s.err
}

func TestResolverWithoutProviderMatchesFormula(t *testing.T) {
	r := NewResolver(zap.NewNop(), nil)
	if r.ProviderName() != "builtin" {
		t.Fatalf("expected builtin provider name, got %s", r.ProviderName())
	}
	d := Date{1993, 4, 17}
	got, err := r.Pillar(d)
	if err != nil {
		t.Fatalf("pillar: %v", err)
	}
	want, _ := ResolvePillar(1993, 4, 17)
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestResolverUsesProviderResult(t *testing.T) {
	stub := &stubProvider{
		day:  Pillar{Stem: 4, Branch: 6},
		year: YearPillar{Stem: 9, Branch: 3},
	}
	r := NewResolver(zap.NewNop(), stub)

	p, err := r.Pillar(Date{2000, 1, 1})
	if err != nil {
		t.Fatalf("pillar: %v", err)
	}
	if p.Label() != "戊午" {
		t.Fatalf("expected provider pillar 戊午, got %s", p.Label())
	}
	// Elemento y polaridad se derivan del tronco aunque el proveedor no los complete.
	if p.Element != Earth || p.Polarity != Yang {
		t.Fatalf("expected Yang Earth, got %s %s", p.Polarity, p.Element)
	}

	yp, err := r.YearPillar(Date{2024, 1, 15})
	if err != nil {
		t.Fatalf("year pillar: %v", err)
	}
	if yp.Stem.String()+yp.Branch.String() != "癸卯" || yp.Animal != "Rabbit" {
		t.Fatalf("unexpected year pillar %+v", yp)
	}
}

func TestResolverFallsBackOnProviderFailure(t *testing.T) {
	want, _ := ResolvePillar(2000, 1, 1)
	wantYear, _ := ResolveYearPillar(2000)

	tests := []struct {
		name     string
		provider *stubProvider
	}{
		{name: "error", provider: &stubProvider{err: errors.New("boom")}},
		{name: "panic", provider: &stubProvider{panicMsg: "nil pointer"}},
		{name: "parity mismatch", provider: &stubProvider{day: Pillar{Stem: 0, Branch: 1}, year: YearPillar{Stem: 1, Branch: 0}}},
		{name: "out of range", provider: &stubProvider{day: Pillar{Stem: 12, Branch: 0}, year: YearPillar{Stem: 0, Branch: 14}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(zap.NewNop(), tt.provider)
			got, err := r.Pillar(Date{2000, 1, 1})
			if err != nil {
				t.Fatalf("provider failure must not surface, got %v", err)
			}
			if got != want {
				t.Fatalf("expected fallback %+v, got %+v", want, got)
			}
			gotYear, err := r.YearPillar(Date{2000, 1, 1})
			if err != nil {
				t.Fatalf("provider failure must not surface, got %v", err)
			}
			if gotYear != wantYear {
				t.Fatalf("expected fallback %+v, got %+v", wantYear, gotYear)
			}
			if tt.provider.calls != 2 {
				t.Fatalf("expected provider to be tried once per call, got %d", tt.provider.calls)
			}
		})
	}
}

func TestResolverValidatesBeforeProvider(t *testing.T) {
	stub := &stubProvider{day: Pillar{Stem: 0, Branch: 0}}
	r := NewResolver(zap.NewNop(), stub)
	if _, err := r.Pillar(Date{2023, 2, 29}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if stub.calls != 0 {
		t.Fatalf("provider must not be called for invalid dates")
	}
}

func TestResolverToday(t *testing.T) {
	r := NewResolver(nil, nil)
	p, err := r.Today(time.Date(2000, 1, 1, 23, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("today: %v", err)
	}
	if p.Label() != "甲子" {
		t.Fatalf("expected 甲子, got %s", p.Label())
	}
}

func TestParseGanZhi(t *testing.T) {
	s, b, err := parseGanZhi("丙午")
	if err != nil || s != 2 || b != 6 {
		t.Fatalf("unexpected parse %v %v %v", s, b, err)
	}
	for _, bad := range []string{"", "丙", "丙午未", "AB", "午丙"} {
		if _, _, err := parseGanZhi(bad); !errors.Is(err, ErrProviderFailure) {
			t.Fatalf("parseGanZhi(%q) expected ErrProviderFailure, got %v", bad, err)
		}
	}
}

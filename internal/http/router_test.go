package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"saju-mbti/internal/content"
	"saju-mbti/internal/domain"
	"saju-mbti/internal/engine"
	"saju-mbti/internal/service"
)

const unknownProfileID = "00000000-0000-0000-0000-000000000000"

type mockProfileRepo struct {
	profiles map[string]domain.Profile
}

func (m *mockProfileRepo) Create(_ context.Context, profile domain.Profile) error {
	m.profiles[profile.ID] = profile
	return nil
}

func (m *mockProfileRepo) GetByID(_ context.Context, id string) (domain.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return domain.Profile{}, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockProfileRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.profiles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.profiles, id)
	return nil
}

type mockReflectionRepo struct {
	items map[string]domain.Reflection
}

func (m *mockReflectionRepo) Upsert(_ context.Context, r domain.Reflection) (string, error) {
	key := r.ProfileID + "|" + r.Date
	if prev, ok := m.items[key]; ok {
		r.ID = prev.ID
	}
	m.items[key] = r
	return r.ID, nil
}

func (m *mockReflectionRepo) ListByProfile(_ context.Context, profileID string, limit int) ([]domain.Reflection, error) {
	var out []domain.Reflection
	for _, r := range m.items {
		if r.ProfileID == profileID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockReflectionRepo) Delete(_ context.Context, profileID, date string) error {
	key := profileID + "|" + date
	if _, ok := m.items[key]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.items, key)
	return nil
}

type mockPinger struct {
	err error
}

func (m mockPinger) Ping(context.Context) error { return m.err }

type routerOptions struct {
	limiter        service.RateLimiter
	trustedProxies []string
	db             Pinger
}

func setupRouter(t *testing.T, opts routerOptions) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tables, err := content.Load()
	if err != nil {
		t.Fatalf("expected content to load, got %v", err)
	}
	logger := zap.NewNop()
	eng := engine.New(tables, nil)
	profiles := service.NewProfileService(logger, &mockProfileRepo{profiles: make(map[string]domain.Profile)}, eng.Resolver(), "UTC")
	insights := service.NewInsightService(logger, eng, profiles)
	reflections := service.NewReflectionService(logger, &mockReflectionRepo{items: make(map[string]domain.Reflection)}, insights)
	shares := service.NewShareService("test-secret", time.Hour, nil)
	quiz := service.NewQuizService(tables)

	return NewRouter(logger, opts.limiter, opts.trustedProxies, opts.db,
		NewProfileHandler(logger, profiles, insights, reflections),
		NewInsightHandler(logger, insights, shares, quiz),
	)
}

func performRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func performRequestFrom(r http.Handler, path, remoteAddr, forwardedFor string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("expected json body, got %q: %v", rec.Body.String(), err)
	}
}

func createTestProfile(t *testing.T, r http.Handler) domain.Profile {
	t.Helper()
	rec := performRequest(r, http.MethodPost, "/profiles", map[string]string{
		"display_name": "Ana",
		"mbti_type":    "INTJ",
		"birth_date":   "2000-01-01",
		"timezone":     "Asia/Tokyo",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var p domain.Profile
	decode(t, rec, &p)
	return p
}

func TestHealthz(t *testing.T) {
	cases := []struct {
		name string
		db   Pinger
		want int
	}{
		{name: "no db", db: nil, want: http.StatusOK},
		{name: "db up", db: mockPinger{}, want: http.StatusOK},
		{name: "db down", db: mockPinger{err: errors.New("connection refused")}, want: http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouter(t, routerOptions{db: tc.db})
			rec := performRequest(r, http.MethodGet, "/healthz", nil)
			if rec.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestPillarsEndpoint(t *testing.T) {
	r := setupRouter(t, routerOptions{})

	rec := performRequest(r, http.MethodGet, "/pillars/2000-01-01", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var info service.PillarInfo
	decode(t, rec, &info)
	if info.Label != "甲子" || info.Animal != "Rat" {
		t.Fatalf("expected 甲子 Rat, got %s %s", info.Label, info.Animal)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Fatalf("expected json content type, got %q", rec.Header().Get("Content-Type"))
	}

	rec = performRequest(r, http.MethodGet, "/pillars/2023-02-29", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestProfileLifecycle(t *testing.T) {
	r := setupRouter(t, routerOptions{})
	p := createTestProfile(t, r)
	if p.BirthStem != "甲" || p.BirthElement != "Wood" {
		t.Fatalf("unexpected birth chart %+v", p)
	}

	rec := performRequest(r, http.MethodGet, "/profiles/"+p.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = performRequest(r, http.MethodGet, "/profiles/"+p.ID+"/daily?date=2000-01-03", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var daily service.DailyInsight
	decode(t, rec, &daily)
	if daily.Day != "2000-01-03" || daily.TodayPillar.Label() != "丙寅" {
		t.Fatalf("unexpected daily day %s pillar %s", daily.Day, daily.TodayPillar.Label())
	}
	if daily.MainMessage == "" || daily.Greeting == "" {
		t.Fatalf("expected message and greeting, got %+v", daily)
	}

	rec = performRequest(r, http.MethodGet, "/profiles/"+p.ID+"/calendar?year=2024&month=2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var month engine.Month
	decode(t, rec, &month)
	if len(month.Days) != 29 {
		t.Fatalf("expected 29 days, got %d", len(month.Days))
	}

	rec = performRequest(r, http.MethodGet, "/profiles/"+p.ID+"/calendar?year=2024", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without month, got %d", rec.Code)
	}
	rec = performRequest(r, http.MethodGet, "/profiles/"+p.ID+"/calendar?year=2024&month=13", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for month 13, got %d", rec.Code)
	}

	rec = performRequest(r, http.MethodDelete, "/profiles/"+p.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	rec = performRequest(r, http.MethodGet, "/profiles/"+p.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestCreateProfileValidation(t *testing.T) {
	r := setupRouter(t, routerOptions{})
	cases := []struct {
		name string
		body map[string]string
	}{
		{name: "missing birth date", body: map[string]string{"mbti_type": "INTJ"}},
		{name: "unknown type", body: map[string]string{"mbti_type": "XXXX", "birth_date": "2000-01-01"}},
		{name: "bad date", body: map[string]string{"mbti_type": "INTJ", "birth_date": "01/01/2000"}},
		{name: "bad timezone", body: map[string]string{"mbti_type": "INTJ", "birth_date": "2000-01-01", "timezone": "Mars/Olympus"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := performRequest(r, http.MethodPost, "/profiles", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestUnknownProfileIs404(t *testing.T) {
	r := setupRouter(t, routerOptions{})
	paths := []string{
		"/profiles/" + unknownProfileID,
		"/profiles/not-a-uuid",
		"/profiles/" + unknownProfileID + "/daily",
		"/profiles/" + unknownProfileID + "/reflections",
	}
	for _, path := range paths {
		rec := performRequest(r, http.MethodGet, path, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404 for %s, got %d", path, rec.Code)
		}
	}
}

func TestCompatibilityEndpoint(t *testing.T) {
	r := setupRouter(t, routerOptions{})

	rec := performRequest(r, http.MethodPost, "/compatibility", map[string]any{
		"a": map[string]string{"type": "INTJ", "birth_date": "2000-01-01"},
		"b": map[string]string{"type": "intj", "element": "Wood", "polarity": "Yang"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var report engine.CompatibilityReport
	decode(t, rec, &report)
	if report.OverallScore != 4.52 || report.Label != "Extraordinary Connection" {
		t.Fatalf("expected 4.52 Extraordinary Connection, got %v %s", report.OverallScore, report.Label)
	}

	rec = performRequest(r, http.MethodPost, "/compatibility", map[string]any{
		"a": map[string]string{"type": "INTJ", "element": "Metal", "polarity": "Yang"},
		"b": map[string]string{"type": "ENFP", "element": "Plasma", "polarity": "Yin"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown element, got %d", rec.Code)
	}
}

func TestProfileCompatibility(t *testing.T) {
	r := setupRouter(t, routerOptions{})
	p := createTestProfile(t, r)

	rec := performRequest(r, http.MethodPost, "/profiles/"+p.ID+"/compatibility", map[string]string{
		"type":       "INTJ",
		"birth_date": "2000-01-01",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var report engine.CompatibilityReport
	decode(t, rec, &report)
	if report.OverallScore != 4.52 {
		t.Fatalf("expected 4.52, got %v", report.OverallScore)
	}

	rec = performRequest(r, http.MethodPost, "/profiles/"+p.ID+"/compatibility", map[string]string{"type": "INTJ"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without birth date or element, got %d", rec.Code)
	}
}

func TestShareFlow(t *testing.T) {
	r := setupRouter(t, routerOptions{})
	pair := map[string]any{
		"a": map[string]string{"name": "Ana", "type": "INTJ", "birth_date": "2000-01-01"},
		"b": map[string]string{"name": "Bo", "type": "INTJ", "birth_date": "2000-01-01"},
	}

	rec := performRequest(r, http.MethodPost, "/compatibility/share", pair)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Token string `json:"token"`
	}
	decode(t, rec, &created)
	if created.Token == "" {
		t.Fatalf("expected token")
	}

	rec = performRequest(r, http.MethodGet, "/compatibility/shared/"+created.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var shared sharedResponse
	decode(t, rec, &shared)
	if shared.A.Name != "Ana" || shared.Report.OverallScore != 4.52 {
		t.Fatalf("unexpected shared payload %+v", shared)
	}

	rec = performRequest(r, http.MethodDelete, "/compatibility/shared/"+created.Token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	rec = performRequest(r, http.MethodGet, "/compatibility/shared/"+created.Token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 after revoke, got %d", rec.Code)
	}
	rec = performRequest(r, http.MethodGet, "/compatibility/shared/garbage", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for garbage token, got %d", rec.Code)
	}
}

func TestShareRejectsInvalidPair(t *testing.T) {
	r := setupRouter(t, routerOptions{})
	rec := performRequest(r, http.MethodPost, "/compatibility/share", map[string]any{
		"a": map[string]string{"type": "INTJ", "birth_date": "2000-01-01"},
		"b": map[string]string{"type": "QQQQ", "birth_date": "2000-01-01"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestQuizEndpoints(t *testing.T) {
	r := setupRouter(t, routerOptions{})

	rec := performRequest(r, http.MethodGet, "/quiz/questions", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var qs struct {
		Questions []content.Question `json:"questions"`
	}
	decode(t, rec, &qs)
	if len(qs.Questions) != 12 {
		t.Fatalf("expected 12 questions, got %d", len(qs.Questions))
	}

	answers := make([]service.QuizAnswer, 0, len(qs.Questions))
	for _, q := range qs.Questions {
		answers = append(answers, service.QuizAnswer{QuestionID: q.ID, Choice: "b"})
	}
	rec = performRequest(r, http.MethodPost, "/quiz/score", map[string]any{"answers": answers})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var result service.QuizResult
	decode(t, rec, &result)
	if result.Type != "INFP" || result.Description.Title == "" {
		t.Fatalf("expected INFP with description, got %+v", result)
	}

	rec = performRequest(r, http.MethodPost, "/quiz/score", map[string]any{"answers": answers[:5]})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for incomplete quiz, got %d", rec.Code)
	}
}

func TestDescribeType(t *testing.T) {
	r := setupRouter(t, routerOptions{})

	rec := performRequest(r, http.MethodGet, "/types/infp", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var body struct {
		Type        string                  `json:"type"`
		Description content.TypeDescription `json:"description"`
	}
	decode(t, rec, &body)
	if body.Type != "INFP" || body.Description.Title != "The Mediator" {
		t.Fatalf("unexpected type body %+v", body)
	}

	rec = performRequest(r, http.MethodGet, "/types/ABCD", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestReflectionEndpoints(t *testing.T) {
	r := setupRouter(t, routerOptions{})
	p := createTestProfile(t, r)
	base := "/profiles/" + p.ID + "/reflections"

	rec := performRequest(r, http.MethodPut, base+"/2024-03-02", map[string]string{"note": "felt focused"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var saved domain.Reflection
	decode(t, rec, &saved)
	if saved.Date != "2024-03-02" || saved.MainMessage == "" {
		t.Fatalf("expected snapshot of the day, got %+v", saved)
	}

	rec = performRequest(r, http.MethodPut, base+"/2024-03-02", map[string]string{"note": "focused, then tired"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var replaced domain.Reflection
	decode(t, rec, &replaced)
	if replaced.ID != saved.ID || replaced.Note != "focused, then tired" {
		t.Fatalf("expected same id %s with new note, got %+v", saved.ID, replaced)
	}

	rec = performRequest(r, http.MethodPut, base+"/2024-03-01", map[string]string{"note": "slow day"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = performRequest(r, http.MethodGet, base, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var list struct {
		Reflections []domain.Reflection `json:"reflections"`
	}
	decode(t, rec, &list)
	if len(list.Reflections) != 2 || list.Reflections[0].Date != "2024-03-02" {
		t.Fatalf("expected newest first, got %+v", list.Reflections)
	}

	rec = performRequest(r, http.MethodGet, base+"?limit=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for bad limit, got %d", rec.Code)
	}

	rec = performRequest(r, http.MethodPut, base+"/2024-03-03", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without note, got %d", rec.Code)
	}

	rec = performRequest(r, http.MethodDelete, base+"/2024-03-01", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rec.Code)
	}
	rec = performRequest(r, http.MethodDelete, base+"/2024-03-01", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 on second delete, got %d", rec.Code)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := setupRouter(t, routerOptions{limiter: service.NewMemoryRateLimiter(time.Minute, 2)})

	for i := 0; i < 2; i++ {
		rec := performRequest(r, http.MethodGet, "/types/INTJ", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i, rec.Code)
		}
	}
	rec := performRequest(r, http.MethodGet, "/types/INTJ", nil)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}

	rec = performRequest(r, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthz to skip the limiter, got %d", rec.Code)
	}
}

func TestRateLimitIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	r := setupRouter(t, routerOptions{limiter: service.NewMemoryRateLimiter(time.Minute, 1)})

	rec := performRequestFrom(r, "/types/INTJ", "203.0.113.7:40000", "198.51.100.1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", rec.Code)
	}
	for i := 2; i <= 50; i++ {
		forwarded := fmt.Sprintf("198.51.100.%d", i)
		rec := performRequestFrom(r, "/types/INTJ", "203.0.113.7:40000", forwarded)
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("request with X-Forwarded-For %s: expected status 429, got %d", forwarded, rec.Code)
		}
	}
}

func TestRateLimitUsesForwardedForFromTrustedProxy(t *testing.T) {
	r := setupRouter(t, routerOptions{
		limiter:        service.NewMemoryRateLimiter(time.Minute, 1),
		trustedProxies: []string{"203.0.113.7"},
	})

	for i := 1; i <= 3; i++ {
		forwarded := fmt.Sprintf("198.51.100.%d", i)
		rec := performRequestFrom(r, "/types/INTJ", "203.0.113.7:40000", forwarded)
		if rec.Code != http.StatusOK {
			t.Fatalf("client %s behind trusted proxy: expected status 200, got %d", forwarded, rec.Code)
		}
	}
	rec := performRequestFrom(r, "/types/INTJ", "203.0.113.7:40000", "198.51.100.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected repeated client to be limited, got %d", rec.Code)
	}
}

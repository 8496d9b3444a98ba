package engine

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

type stubGateway struct {
	configured bool
	reply      string
	err        error
	calls      int
}

func (g *stubGateway) Configured() bool { return g.configured }

func (g *stubGateway) Call(context.Context, []Message, float64, int) (string, error) {
	g.calls++
	return g.reply, g.err
}

func validAnalysisJSON(t *testing.T, score, years int) string {
	t.Helper()
	a := Analysis{
		OverallScore:    score,
		Category:        "whatever the model said",
		Summary:         "Strong candidate.",
		Strengths:       []string{"a", "b", "c"},
		Weaknesses:      []string{"x", "y"},
		SkillsMatch:     80,
		ExperienceLevel: "also model-provided",
		ExperienceYears: years,
		KeySkills:       []string{"Python", "SQL"},
		Education:       "B.Sc. Computer Science",
		Recommendations: []string{"interview", "reference check"},
		RedFlags:        []string{},
		ContactInfo:     ContactInfo{Name: "Jane Doe", Email: "jane@example.com", Phone: "+1 555 0100"},
	}
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return string(data)
}

func TestAnalyzeFallsBackOnMalformedOutput(t *testing.T) {
	gw := &stubGateway{configured: true, reply: "I am not JSON, sorry!"}
	e := New(gw, stubExtractor{})

	const text = "Jane Doe resume with Python experience"
	got := e.Analyze(context.Background(), text, "")
	want := e.Fallback(text)

	if gw.calls != 1 {
		t.Fatalf("expected exactly one gateway call, got %d", gw.calls)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("malformed output should yield fallback result:\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestAnalyzeFallsBackOnTransportError(t *testing.T) {
	gw := &stubGateway{configured: true, err: errors.New("connection refused")}
	e := New(gw, stubExtractor{})

	const text = "some resume"
	if got, want := e.Analyze(context.Background(), text, "jd"), e.Fallback(text); !reflect.DeepEqual(got, want) {
		t.Fatalf("transport error should yield fallback result")
	}
}

func TestAnalyzeFallsBackWhenUnconfigured(t *testing.T) {
	gw := &stubGateway{configured: false}
	e := New(gw, stubExtractor{})

	const text = "another resume"
	got := e.Analyze(context.Background(), text, "")
	if gw.calls != 0 {
		t.Fatalf("unconfigured gateway must not be called")
	}
	if !reflect.DeepEqual(got, e.Fallback(text)) {
		t.Fatalf("unconfigured gateway should yield fallback result")
	}
}

func TestAnalyzeParsesAndNormalizesAIOutput(t *testing.T) {
	gw := &stubGateway{configured: true, reply: validAnalysisJSON(t, 88, 5)}
	e := New(gw, stubExtractor{})

	a := e.Analyze(context.Background(), "resume", "jd")

	if a.OverallScore != 88 {
		t.Fatalf("expected score 88, got %d", a.OverallScore)
	}
	// Category and level are always re-derived, never trusted from the model.
	if a.Category != CategoryHighlyQualified {
		t.Fatalf("expected derived category %q, got %q", CategoryHighlyQualified, a.Category)
	}
	if a.ExperienceLevel != LevelMid {
		t.Fatalf("expected derived level %q, got %q", LevelMid, a.ExperienceLevel)
	}
	if a.ContactInfo.Name != "Jane Doe" {
		t.Fatalf("expected contact carried through, got %+v", a.ContactInfo)
	}
}

func TestAnalyzeRejectsMissingRequiredKeys(t *testing.T) {
	gw := &stubGateway{configured: true, reply: `{"overall_score": 80, "summary": "missing the rest"}`}
	e := New(gw, stubExtractor{})

	const text = "resume text"
	if got, want := e.Analyze(context.Background(), text, ""), e.Fallback(text); !reflect.DeepEqual(got, want) {
		t.Fatalf("incomplete AI output should yield fallback result")
	}
}

func TestCategoryAndLevelThresholds(t *testing.T) {
	categoryCases := []struct {
		score int
		want  string
	}{
		{100, CategoryHighlyQualified},
		{85, CategoryHighlyQualified},
		{84, CategoryQualified},
		{70, CategoryQualified},
		{69, CategoryNotAFit},
		{0, CategoryNotAFit},
	}
	for _, tc := range categoryCases {
		if got := CategoryFor(tc.score); got != tc.want {
			t.Errorf("CategoryFor(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}

	levelCases := []struct {
		years int
		want  string
	}{
		{0, LevelEntry},
		{1, LevelJunior},
		{3, LevelJunior},
		{4, LevelMid},
		{6, LevelMid},
		{7, LevelSenior},
		{20, LevelSenior},
	}
	for _, tc := range levelCases {
		if got := LevelFor(tc.years); got != tc.want {
			t.Errorf("LevelFor(%d) = %q, want %q", tc.years, got, tc.want)
		}
	}
}

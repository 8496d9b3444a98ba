package candidates

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"resume-screener/internal/bias"
	"resume-screener/internal/engine"
	"resume-screener/internal/parser"
	localstore "resume-screener/internal/shared/storage/object/local"
)

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	doc := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` + body + `</w:t></w:r></w:p></w:body></w:document>`
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return &Service{
		Store:    localstore.New(t.TempDir()),
		Repo:     NewMemoryRepo(),
		Engine:   engine.New(engine.NewGeminiGateway("", ""), parser.New()),
		Detector: bias.New(),
	}
}

func TestUploadProcessesDocxResume(t *testing.T) {
	svc := newTestService(t)
	data := buildDocx(t, "Jane Doe jane@example.com 5 years of experience with Python and Docker")

	cand, err := svc.Upload(context.Background(), "resume.docx", "backend engineer", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if cand.ID == "" {
		t.Fatalf("expected candidate id")
	}
	if cand.Analysis.OverallScore < 60 || cand.Analysis.OverallScore > 95 {
		t.Fatalf("score out of range: %d", cand.Analysis.OverallScore)
	}
	if cand.Analysis.Category == "" || cand.Analysis.ExperienceLevel == "" {
		t.Fatalf("expected derived fields, got %+v", cand.Analysis)
	}
	if !strings.Contains(cand.ResumeText, "Jane Doe") {
		t.Fatalf("expected extracted resume text, got %q", cand.ResumeText)
	}
	if cand.BlindResume == "" || strings.Contains(cand.BlindResume, "jane@example.com") {
		t.Fatalf("expected redacted blind resume, got %q", cand.BlindResume)
	}

	stored, err := svc.Get(context.Background(), cand.ID)
	if err != nil {
		t.Fatalf("Get after upload: %v", err)
	}
	if stored.FileName != "resume.docx" {
		t.Fatalf("unexpected stored file name: %q", stored.FileName)
	}
	if stored.JobDescription != "backend engineer" {
		t.Fatalf("unexpected job description: %q", stored.JobDescription)
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Upload(context.Background(), "resume.txt", "", strings.NewReader("plain text"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	_, err = svc.Upload(context.Background(), "", "", strings.NewReader("plain text"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
}

func TestStatisticsAggregatesPool(t *testing.T) {
	svc := newTestService(t)
	repo := svc.Repo.(*MemoryRepo)

	scores := []struct {
		id    string
		score int
	}{
		{"a", 90},
		{"b", 75},
		{"c", 50},
	}
	for _, s := range scores {
		cand := Candidate{ID: s.id}
		cand.Analysis.OverallScore = s.score
		cand.Analysis.Category = engine.CategoryFor(s.score)
		if err := repo.Create(context.Background(), cand); err != nil {
			t.Fatalf("seed repo: %v", err)
		}
	}

	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.TotalCandidates != 3 {
		t.Fatalf("expected 3 candidates, got %d", stats.TotalCandidates)
	}
	if stats.HighlyQualified != 1 || stats.Qualified != 1 {
		t.Fatalf("unexpected category counts: %+v", stats)
	}
	want := float64(90+75+50) / 3
	if stats.AverageScore != want {
		t.Fatalf("expected average %.2f, got %.2f", want, stats.AverageScore)
	}
}

func TestStatisticsEmptyPool(t *testing.T) {
	svc := newTestService(t)

	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics: %v", err)
	}
	if stats.TotalCandidates != 0 || stats.AverageScore != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}

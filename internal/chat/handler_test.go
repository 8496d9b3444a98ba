package chat_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/bootstrap"
	"resume-screener/internal/shared/config"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func uploadCandidate(t *testing.T, router *gin.Engine, text string) string {
	t.Helper()

	var zbuf bytes.Buffer
	zw := zip.NewWriter(&zbuf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	doc := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body></w:document>`
	if _, err := w.Write([]byte(doc)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fileWriter, err := writer.CreateFormFile("file", "resume.docx")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write(zbuf.Bytes()); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("upload expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		CandidateID string `json:"candidate_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	return created.CandidateID
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCandidateChatRespondsFromProfile(t *testing.T) {
	app := newTestApp(t)
	candidateID := uploadCandidate(t, app.Router, "Jane Doe 5 years of experience with Python and Docker")

	resp := postJSON(t, app.Router, "/api/chat", map[string]string{
		"candidate_id": candidateID,
		"message":      "How much experience does this candidate have?",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var payload struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode chat response: %v", err)
	}
	if !strings.Contains(payload.Response, "years of experience") {
		t.Fatalf("unexpected chat reply: %q", payload.Response)
	}
}

func TestCandidateChatValidation(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app.Router, "/api/chat", map[string]string{"message": "hi"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing candidate_id, got %d", resp.Code)
	}

	resp = postJSON(t, app.Router, "/api/chat", map[string]string{
		"candidate_id": "missing",
		"message":      "hi",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown candidate, got %d", resp.Code)
	}
}

func TestHRChatEmptyPool(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app.Router, "/api/hr-chat", map[string]string{"message": "Who are the top candidates?"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var payload struct {
		Response  string `json:"response"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode hr-chat response: %v", err)
	}
	if !strings.Contains(payload.Response, "upload some resumes") {
		t.Fatalf("unexpected empty-pool reply: %q", payload.Response)
	}
	if payload.Timestamp == "" {
		t.Fatalf("expected timestamp in response")
	}
}

func TestHRChatPersistsHistory(t *testing.T) {
	app := newTestApp(t)
	uploadCandidate(t, app.Router, "Jane Doe 7 years of experience with Golang and Kubernetes")

	resp := postJSON(t, app.Router, "/api/hr-chat", map[string]string{"message": "Show me statistics"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode hr-chat response: %v", err)
	}
	if !strings.Contains(payload.Response, "Candidate Statistics") {
		t.Fatalf("unexpected statistics reply: %q", payload.Response)
	}

	histReq := httptest.NewRequest(http.MethodGet, "/api/hr-chat/history", nil)
	histResp := httptest.NewRecorder()
	app.Router.ServeHTTP(histResp, histReq)
	if histResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", histResp.Code)
	}

	var history struct {
		History []struct {
			Message  string `json:"message"`
			Response string `json:"response"`
		} `json:"history"`
	}
	if err := json.NewDecoder(histResp.Body).Decode(&history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history.History) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(history.History))
	}
	if history.History[0].Message != "Show me statistics" {
		t.Fatalf("unexpected history message: %q", history.History[0].Message)
	}
	if history.History[0].Response != payload.Response {
		t.Fatalf("history reply does not match chat reply")
	}
}

func TestHRChatValidation(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app.Router, "/api/hr-chat", map[string]string{"message": "   "})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank message, got %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/hr-chat/history?limit=abc", nil)
	histResp := httptest.NewRecorder()
	app.Router.ServeHTTP(histResp, req)
	if histResp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", histResp.Code)
	}
}

package server

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/teamsdoc/docfix/pkg/docfix"
)

// testDocx builds a minimal but valid DOCX in memory.
func testDocx(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	doc, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	doc.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body><w:p><w:pPr><w:spacing w:before="600"/></w:pPr><w:r><w:t>hi</w:t></w:r></w:p></w:body></w:document>`))
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// multipartUpload builds a multipart body with an optional file field and an
// optional options field.
func multipartUpload(t *testing.T, filename string, file []byte, options string) (body *bytes.Buffer, contentType string) {
	t.Helper()
	body = &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if file != nil {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(file)
	}
	if options != "" {
		if err := mw.WriteField("options", options); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return body, mw.FormDataContentType()
}

func newTestServer() *Server {
	return New(docfix.DefaultConfig())
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("error body is not JSON: %v (%s)", err, rec.Body.String())
	}
	return payload["error"]
}

func TestHandleFix_Success(t *testing.T) {
	body, contentType := multipartUpload(t, "report.docx", testDocx(t), "")
	req := httptest.NewRequest(http.MethodPost, "/api/fix", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestServer().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != docxContentType {
		t.Errorf("Content-Type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "report_teams.docx") {
		t.Errorf("Content-Disposition = %q, want derived filename", got)
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
	if !docfix.IsPackage(rec.Body.Bytes()) {
		t.Error("response body is not a valid package")
	}
}

func TestHandleFix_OptionsField(t *testing.T) {
	body, contentType := multipartUpload(t, "report.docx", testDocx(t), `{"fix_spacing": false}`)
	req := httptest.NewRequest(http.MethodPost, "/api/fix", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestServer().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestHandleFix_InvalidOptionsFallBackToDefaults(t *testing.T) {
	body, contentType := multipartUpload(t, "report.docx", testDocx(t), `{broken`)
	req := httptest.NewRequest(http.MethodPost, "/api/fix", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestServer().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (invalid options are ignored)", rec.Code)
	}
}

func TestHandleFix_NoFile(t *testing.T) {
	body, contentType := multipartUpload(t, "", nil, `{}`)
	req := httptest.NewRequest(http.MethodPost, "/api/fix", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestServer().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := decodeError(t, rec); msg != "no file received" {
		t.Errorf("error = %q", msg)
	}
}

func TestHandleFix_NotADocx(t *testing.T) {
	body, contentType := multipartUpload(t, "report.docx", []byte("just some text"), "")
	req := httptest.NewRequest(http.MethodPost, "/api/fix", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newTestServer().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if msg := decodeError(t, rec); !strings.Contains(msg, "not a valid .docx") {
		t.Errorf("error = %q", msg)
	}
}

func TestHandleFix_TooLarge(t *testing.T) {
	config := docfix.DefaultConfig()
	config.MaxUploadSize = 64
	srv := New(config)

	body, contentType := multipartUpload(t, "report.docx", testDocx(t), "")
	req := httptest.NewRequest(http.MethodPost, "/api/fix", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestHandleFix_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/fix", nil)
	rec := httptest.NewRecorder()

	newTestServer().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestHandleFix_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/fix", nil)
	rec := httptest.NewRecorder()

	newTestServer().Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "POST") {
		t.Errorf("Access-Control-Allow-Methods = %q", got)
	}
}

func TestHandleFix_CustomOrigin(t *testing.T) {
	config := docfix.DefaultConfig()
	config.AllowedOrigin = "https://teams.example.com"
	srv := New(config)

	body, contentType := multipartUpload(t, "report.docx", testDocx(t), "")
	req := httptest.NewRequest(http.MethodPost, "/api/fix", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://teams.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

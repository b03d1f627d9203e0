package iris

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

func TestFileUploadMissingPathFailsLocally(t *testing.T) {
	var requests int32
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer server.Close()

	client := newHTTPClient(testConfig(server.URL), newAuth(testConfig(server.URL)))
	defer client.close()

	_, err := client.upload(context.Background(), "/api/v1/bloqs/7/documents", FileUpload{Path: "/no/such/file.pdf"}, nil, nil)
	var localErr *LocalError
	if !errors.As(err, &localErr) {
		t.Fatalf("expected LocalError, got %v", err)
	}
	if got := atomic.LoadInt32(&requests); got != 0 {
		t.Fatalf("expected no network calls, got %d", got)
	}
}

func TestFileUploadDirectoryFailsLocally(t *testing.T) {
	_, _, err := FileUpload{Path: t.TempDir()}.open()
	var localErr *LocalError
	if !errors.As(err, &localErr) {
		t.Fatalf("expected LocalError for directory, got %v", err)
	}
}

func TestFileUploadMultipartShape(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	if err := os.WriteFile(path, []byte("pdf-bytes"), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		files := r.MultipartForm.File["file"]
		if len(files) != 1 {
			t.Errorf("expected one part named \"file\", got %d", len(files))
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if files[0].Filename != "report.pdf" {
			t.Errorf("filename = %q, want base name", files[0].Filename)
		}
		f, err := files[0].Open()
		if err != nil {
			t.Errorf("open part: %v", err)
		} else {
			content, _ := io.ReadAll(f)
			f.Close()
			if string(content) != "pdf-bytes" {
				t.Errorf("content = %q", content)
			}
		}

		if got := r.FormValue("source"); got != "crm" {
			t.Errorf("source field = %q", got)
		}
		// Non-scalar fields arrive JSON-encoded.
		if got := r.FormValue("tags"); got != `["a","b"]` {
			t.Errorf("tags field = %q", got)
		}
		if got := r.FormValue("priority"); got != "3" {
			t.Errorf("priority field = %q", got)
		}

		_, _ = w.Write([]byte(`{"data":{"id":"doc-1","filename":"report.pdf"}}`))
	}))
	defer server.Close()

	client := newHTTPClient(testConfig(server.URL), newAuth(testConfig(server.URL)))
	defer client.close()

	raw, err := client.upload(context.Background(), "/api/v1/bloqs/7/documents", FileUpload{Path: path}, map[string]any{
		"source":   "crm",
		"tags":     []string{"a", "b"},
		"priority": 3,
	}, nil)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if !strings.Contains(string(raw), `"doc-1"`) {
		t.Errorf("unexpected response payload: %s", raw)
	}
}

func TestFileUploadFromReader(t *testing.T) {
	server := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		files := r.MultipartForm.File["file"]
		if len(files) != 1 || files[0].Filename != "notes.txt" {
			t.Errorf("unexpected file parts: %v", files)
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newHTTPClient(testConfig(server.URL), newAuth(testConfig(server.URL)))
	defer client.close()

	upload := FileUpload{Reader: strings.NewReader("hello"), Filename: "notes.txt"}
	if _, err := client.upload(context.Background(), "/api/v1/bloqs/7/documents", upload, nil, nil); err != nil {
		t.Fatalf("upload failed: %v", err)
	}
}

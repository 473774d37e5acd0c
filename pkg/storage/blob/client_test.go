package blob

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/campuseats/ordering-gateway/pkg/config"
)

func TestUploadReturnsObjectURL(t *testing.T) {
	t.Parallel()

	var gotPath, gotContentType, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		payload, _ := io.ReadAll(r.Body)
		gotBody = string(payload)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client, err := NewClient(config.BlobConfig{BaseURL: srv.URL, Bucket: "media", Timeout: time.Second}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url, err := client.Upload(context.Background(), "products/arepa.png", "image/png", strings.NewReader("png-bytes"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if url != srv.URL+"/media/products/arepa.png" {
		t.Fatalf("unexpected object url %q", url)
	}
	if gotPath != "/media/products/arepa.png" {
		t.Fatalf("unexpected upload path %q", gotPath)
	}
	if gotContentType != "image/png" {
		t.Fatalf("unexpected content type %q", gotContentType)
	}
	if gotBody != "png-bytes" {
		t.Fatalf("unexpected body %q", gotBody)
	}
}

func TestUploadRejectedStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	client, err := NewClient(config.BlobConfig{BaseURL: srv.URL, Bucket: "media"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.Upload(context.Background(), "x.png", "image/png", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for rejected upload")
	}
}

func TestNewClientRequiresAbsoluteURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(config.BlobConfig{BaseURL: ""}, nil); err == nil {
		t.Fatal("expected error for missing base url")
	}
	if _, err := NewClient(config.BlobConfig{BaseURL: "not-a-url"}, nil); err == nil {
		t.Fatal("expected error for relative base url")
	}
}

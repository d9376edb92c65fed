package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_DIR", dir)
	t.Setenv("PUBLIC_BASE_URL", "")

	store, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	url, err := store.Save("scan.png", []byte("payload"))
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if url != PublicPathPrefix+"/scan.png" {
		t.Errorf("Save url = %q, want %q", url, PublicPathPrefix+"/scan.png")
	}

	data, err := os.ReadFile(filepath.Join(dir, "scan.png"))
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("saved content = %q, want %q", data, "payload")
	}

	if err := store.Remove("scan.png"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "scan.png")); !os.IsNotExist(err) {
		t.Error("file still exists after Remove")
	}
}

func TestSaveWithBaseURL(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())
	t.Setenv("PUBLIC_BASE_URL", "https://cdn.example.com")

	store, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	url, err := store.Save("a.jpg", []byte{1})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if !strings.HasPrefix(url, "https://cdn.example.com"+PublicPathPrefix) {
		t.Errorf("url = %q, missing base URL prefix", url)
	}
}

func TestSaveStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("UPLOAD_DIR", dir)
	t.Setenv("PUBLIC_BASE_URL", "")

	store, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if _, err := store.Save("../../etc/evil.png", []byte("x")); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "evil.png")); err != nil {
		t.Errorf("expected file to land inside the upload dir: %v", err)
	}
}

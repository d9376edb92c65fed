package utils

import (
	"errors"
	"mime/multipart"
	"testing"
	"time"
)

func TestNewULIDFromTimestamp(t *testing.T) {
	u := New()

	earlier, err := u.NewULIDFromTimestamp(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("NewULIDFromTimestamp returned error: %v", err)
	}
	later, err := u.NewULIDFromTimestamp(time.Now())
	if err != nil {
		t.Fatalf("NewULIDFromTimestamp returned error: %v", err)
	}

	if len(earlier) != 26 || len(later) != 26 {
		t.Fatalf("ULID lengths = %d, %d, want 26", len(earlier), len(later))
	}
	if earlier >= later {
		t.Errorf("ULIDs not ordered by timestamp: %s >= %s", earlier, later)
	}
}

func TestValidateUploadSize(t *testing.T) {
	u := New()

	if err := u.ValidateUploadSize(nil); !errors.Is(err, ErrNoFileUploaded) {
		t.Errorf("nil file error = %v, want ErrNoFileUploaded", err)
	}

	small := &multipart.FileHeader{Size: 1024}
	if err := u.ValidateUploadSize(small); err != nil {
		t.Errorf("small file error = %v, want nil", err)
	}

	huge := &multipart.FileHeader{Size: 6 * 1024 * 1024}
	if err := u.ValidateUploadSize(huge); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("huge file error = %v, want ErrFileTooLarge", err)
	}
}

func TestFileExtension(t *testing.T) {
	u := New()

	cases := []struct {
		fileName string
		want     string
	}{
		{"lesion.PNG", "png"},
		{"scan.jpeg", "jpeg"},
		{"photo.jpg", "jpg"},
		{"noextension", "jpg"},
		{"archive.tar.gz", "gz"},
	}

	for _, tc := range cases {
		if got := u.FileExtension(tc.fileName); got != tc.want {
			t.Errorf("FileExtension(%q) = %q, want %q", tc.fileName, got, tc.want)
		}
	}
}

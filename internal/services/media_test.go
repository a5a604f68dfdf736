package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// uploadRequest builds a multipart request carrying one file under the
// "image" field so tests can exercise the real FormFile path.
func uploadRequest(t *testing.T, filename, contentType string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest("POST", "/image-upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	file, header, err := req.FormFile("image")
	if err != nil {
		t.Fatalf("FormFile: %v", err)
	}
	t.Cleanup(func() { file.Close() })
	return file, header
}

func TestMediaStoreSaveAndDelete(t *testing.T) {
	store, err := NewMediaStore(t.TempDir(), "http://localhost:8000/")
	if err != nil {
		t.Fatalf("NewMediaStore: %v", err)
	}

	file, header := uploadRequest(t, "wall.jpg", "image/jpeg", []byte("jpeg-bytes"))
	url, err := store.Save(file, header)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(url, "http://localhost:8000/uploads/") {
		t.Fatalf("unexpected URL: %s", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("extension not preserved: %s", url)
	}

	name := url[strings.LastIndex(url, "/")+1:]
	data, err := os.ReadFile(filepath.Join(store.dir, name))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}

	if err := store.DeleteByURL(url); err != nil {
		t.Fatalf("DeleteByURL: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.dir, name)); !os.IsNotExist(err) {
		t.Fatal("file still present after delete")
	}

	// Deleting again is a soft failure.
	if err := store.DeleteByURL(url); err != ErrFileNotFound {
		t.Fatalf("second delete: got %v, want ErrFileNotFound", err)
	}
}

func TestMediaStoreSaveGeneratesUniqueNames(t *testing.T) {
	store, err := NewMediaStore(t.TempDir(), "http://localhost:8000")
	if err != nil {
		t.Fatalf("NewMediaStore: %v", err)
	}

	file1, header1 := uploadRequest(t, "same.png", "image/png", []byte("a"))
	file2, header2 := uploadRequest(t, "same.png", "image/png", []byte("b"))

	url1, err := store.Save(file1, header1)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	url2, err := store.Save(file2, header2)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if url1 == url2 {
		t.Fatal("two uploads of the same filename collided")
	}
}

func TestMediaStoreRejectsNonImages(t *testing.T) {
	store, err := NewMediaStore(t.TempDir(), "http://localhost:8000")
	if err != nil {
		t.Fatalf("NewMediaStore: %v", err)
	}

	file, header := uploadRequest(t, "notes.txt", "text/plain", []byte("hello"))
	if _, err := store.Save(file, header); err != ErrNotAnImage {
		t.Fatalf("got %v, want ErrNotAnImage", err)
	}
}

func TestFilenameFromURLRejectsEscapes(t *testing.T) {
	tests := []struct {
		url  string
		want string
		ok   bool
	}{
		{"http://localhost:8000/uploads/abc.png", "abc.png", true},
		{"abc.png", "abc.png", true},
		{"http://localhost:8000/uploads/..", "", false},
		{"", "", false},
		{"/", "", false},
	}
	for _, tt := range tests {
		got, ok := filenameFromURL(tt.url)
		if ok != tt.ok || got != tt.want {
			t.Errorf("filenameFromURL(%q) = %q, %v; want %q, %v", tt.url, got, ok, tt.want, tt.ok)
		}
	}
}

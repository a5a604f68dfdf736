package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrFileNotFound is the soft failure for deleting an image that
	// is already gone.
	ErrFileNotFound = errors.New("image file not found")
	// ErrNotAnImage rejects uploads whose type is not image/*.
	ErrNotAnImage = errors.New("only image files are allowed")
)

// MediaStore keeps uploaded images in a local directory and addresses
// them by URLs of the form {baseURL}/uploads/{filename}.
type MediaStore struct {
	dir     string
	baseURL string
}

func NewMediaStore(dir, baseURL string) (*MediaStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &MediaStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save stores an uploaded file under a generated unique name and
// returns the public URL for it.
func (m *MediaStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if !isImage(header) {
		return "", ErrNotAnImage
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(m.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return m.baseURL + "/uploads/" + name, nil
}

// DeleteByURL removes the stored file an image URL points at.
// Returns ErrFileNotFound when the file does not exist.
func (m *MediaStore) DeleteByURL(imageURL string) error {
	name, ok := filenameFromURL(imageURL)
	if !ok {
		return ErrFileNotFound
	}

	target := filepath.Join(m.dir, name)
	if _, err := os.Stat(target); os.IsNotExist(err) {
		return ErrFileNotFound
	}
	return os.Remove(target)
}

// filenameFromURL derives the bare stored filename from an image URL,
// refusing anything that could escape the upload directory.
func filenameFromURL(imageURL string) (string, bool) {
	name := path.Base(imageURL)
	if name == "" || name == "." || name == ".." || name == "/" {
		return "", false
	}
	if strings.ContainsAny(name, `\/`) {
		return "", false
	}
	return name, true
}

func isImage(header *multipart.FileHeader) bool {
	if strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		return true
	}
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return true
	}
	return false
}

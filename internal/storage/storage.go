// Package storage owns upload files on local disk. Services persist only the
// descriptors it returns.
package storage

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hanseo-dev/siteoffice/internal/model"
)

type Store struct {
	baseDir string
}

func New(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Save writes an uploaded file under baseDir/subdir with a collision-free
// stored name, keeping the original extension.
func (s *Store) Save(c *gin.Context, subdir string, file *multipart.FileHeader) (*model.StoredFile, error) {
	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	original := SanitizeFileName(NormalizeOriginalName(file.Filename))
	ext := filepath.Ext(original)
	stored := fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)

	if err := c.SaveUploadedFile(file, filepath.Join(dir, stored)); err != nil {
		return nil, err
	}

	return &model.StoredFile{
		Filename:     stored,
		OriginalName: original,
		MimeType:     file.Header.Get("Content-Type"),
		SizeBytes:    file.Size,
	}, nil
}

// Remove deletes a stored file. A file already gone is not an error.
func (s *Store) Remove(subdir, filename string) error {
	if filename == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, subdir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the on-disk location of a stored file, for download handlers.
func (s *Store) Path(subdir, filename string) string {
	return filepath.Join(s.baseDir, subdir, filename)
}

// NormalizeOriginalName repairs multipart filenames that arrived as latin1
// bytes of UTF-8 text, which mangles Korean names. If reinterpreting produces
// two or more replacement characters the raw name is kept.
func NormalizeOriginalName(name string) string {
	if name == "" {
		return ""
	}

	raw := make([]byte, 0, len(name))
	for _, r := range name {
		if r > 0xFF {
			// Already decoded multibyte text; nothing to repair.
			return name
		}
		raw = append(raw, byte(r))
	}
	if !utf8.Valid(raw) {
		return name
	}

	fixed := string(raw)
	if strings.Count(fixed, "�") >= 2 {
		return name
	}
	return fixed
}

// SanitizeFileName strips characters that are unsafe in paths or on Windows.
func SanitizeFileName(name string) string {
	replacer := strings.NewReplacer(
		"\\", "_",
		"/", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	return strings.TrimSpace(replacer.Replace(name))
}

package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/responder/core/internal/domain/entities"
	"github.com/responder/core/internal/infrastructure/config"
)

const filePerm = 0o644

// File is the single JSON document holding the whole question collection
type File struct {
	path string
}

// New returns a handle to the file at path. The file is not touched.
func New(path string) *File {
	return &File{path: path}
}

// Open returns a handle after checking that the file holds a well-formed
// collection. A missing file is created empty when CreateIfMissing is set;
// anything else wrong with it is an error.
func Open(cfg config.StorageConfig) (*File, error) {
	f := New(cfg.Path)

	if _, err := os.Stat(cfg.Path); errors.Is(err, fs.ErrNotExist) && cfg.CreateIfMissing {
		if err := Init(cfg.Path, false); err != nil {
			return nil, err
		}
	}

	if err := f.HealthCheck(); err != nil {
		return nil, err
	}

	return f, nil
}

// Init writes an empty collection to path. An existing file is kept unless force is set.
func Init(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create directory %s: %w", entities.ErrStorage, dir, err)
		}
	}

	return New(path).Write([]entities.Question{})
}

// Path returns the location of the file
func (f *File) Path() string {
	return f.path
}

// Read loads and decodes the whole collection
func (f *File) Read() ([]entities.Question, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", entities.ErrStorage, f.path, err)
	}

	questions, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", entities.ErrStorage, f.path, err)
	}

	return questions, nil
}

// Write replaces the whole file with the given collection. The data goes to a
// temporary file in the same directory first and is renamed over the target.
func (f *File) Write(questions []entities.Question) error {
	data, err := Encode(questions)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", entities.ErrStorage, f.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", entities.ErrStorage, f.path, err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if syncErr := tmp.Sync(); err == nil {
		err = syncErr
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpName, filePerm)
	}
	if err == nil {
		err = os.Rename(tmpName, f.path)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %w", entities.ErrStorage, f.path, err)
	}

	return nil
}

// HealthCheck verifies the file is readable and well-formed
func (f *File) HealthCheck() error {
	if _, err := f.Read(); err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	return nil
}

// GetFileInfo returns file statistics for health reporting
func (f *File) GetFileInfo() map[string]interface{} {
	info := map[string]interface{}{
		"path": f.path,
	}

	st, err := os.Stat(f.path)
	if err != nil {
		info["error"] = err.Error()
		return info
	}
	info["size_bytes"] = st.Size()
	info["modified_at"] = st.ModTime().UTC().Format(time.RFC3339)

	if questions, err := f.Read(); err == nil {
		answers := 0
		for _, q := range questions {
			answers += len(q.Answers)
		}
		info["questions"] = len(questions)
		info["answers"] = answers
	}

	return info
}

// Decode parses a stored collection. The document must be a JSON array;
// null, objects and scalars are rejected.
func Decode(data []byte) ([]entities.Question, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, entities.ErrInvalidCollection
	}

	var questions []entities.Question
	if err := json.Unmarshal(trimmed, &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidCollection, err)
	}

	for i := range questions {
		questions[i].Normalize()
	}

	return questions, nil
}

// Encode serializes a collection the way it is kept on disk (tab indented)
func Encode(questions []entities.Question) ([]byte, error) {
	if questions == nil {
		questions = []entities.Question{}
	}
	for i := range questions {
		questions[i].Normalize()
	}
	return json.MarshalIndent(questions, "", "\t")
}

package descriptor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/openeaw/openglyph-recipe/internal/config"
	"github.com/openeaw/openglyph-recipe/internal/domain/recipe"
)

// Repository defines persistence operations for the package descriptor.
type Repository interface {
	Load(ctx context.Context) (*recipe.Descriptor, error)
	Save(ctx context.Context, d *recipe.Descriptor) error
}

// FileRepository persists the descriptor to a YAML file on disk.
type FileRepository struct {
	// path is the filesystem location of the descriptor.
	path string
}

var (
	// ErrNotFound is returned when the descriptor file does not exist yet.
	ErrNotFound = errors.New("descriptor not found")
	// errDescriptorIsNotSet is returned when Save receives nil.
	errDescriptorIsNotSet = errors.New("descriptor is not set")
)

// NewFileRepository creates a repository that reads/writes YAML at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the descriptor location.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the descriptor from disk.
func (r *FileRepository) Load(_ context.Context) (*recipe.Descriptor, error) {
	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read descriptor: %w", err)
	}

	var d recipe.Descriptor
	if err = yaml.Unmarshal(contents, &d); err != nil {
		return nil, fmt.Errorf("decode descriptor: %w", err)
	}

	return &d, nil
}

// Save writes the descriptor to disk, creating parent directories.
func (r *FileRepository) Save(_ context.Context, d *recipe.Descriptor) error {
	if d == nil {
		return errDescriptorIsNotSet
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode descriptor: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create descriptor folder: %w", err)
	}

	if err = os.WriteFile(r.path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write descriptor: %w", err)
	}

	return nil
}

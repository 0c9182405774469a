package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/rollerblade/internal/logfields"
)

// Scratch is a uniquely named temporary file path plus its companions.
type Scratch struct {
	path       string
	companions []string
}

// NewScratch reserves a unique scratch path in baseDir (os.TempDir() when
// empty). The file itself is not created; companion suffixes such as ".map"
// are removed alongside it on Cleanup.
func NewScratch(baseDir string, companionSuffixes ...string) *Scratch {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	p := filepath.Join(baseDir, fmt.Sprintf("rollerblade-%s", uuid.NewString()))

	companions := make([]string, 0, len(companionSuffixes))
	for _, suffix := range companionSuffixes {
		companions = append(companions, p+suffix)
	}
	return &Scratch{path: p, companions: companions}
}

// Path returns the scratch file path.
func (s *Scratch) Path() string {
	return s.path
}

// Companion returns the path of the companion with suffix.
func (s *Scratch) Companion(suffix string) string {
	return s.path + suffix
}

// Read reads the scratch file, or the companion with suffix when given.
func (s *Scratch) Read(suffix string) ([]byte, error) {
	// #nosec G304 -- path is generated by NewScratch.
	data, err := os.ReadFile(s.path + suffix)
	if err != nil {
		return nil, fmt.Errorf("read scratch file: %w", err)
	}
	return data, nil
}

// Cleanup removes the scratch file and its companions. Files that were never
// created are ignored.
func (s *Scratch) Cleanup() error {
	var errs []error
	for _, p := range append([]string{s.path}, s.companions...) {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to remove scratch file: %w", err))
			continue
		}
		slog.Debug("Removed scratch file", logfields.Path(p))
	}
	return errors.Join(errs...)
}

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store keeps uploaded output and source files under a media root with a
// deterministic naming scheme, so a resubmission overwrites the previous
// upload for the same (challenge, user, set).
type Store struct {
	Root string
}

func NewStore(root string) *Store {
	return &Store{Root: root}
}

// SaveOutput persists a submitted output file and returns its path relative
// to the media root: output/p{challenge}-{user}-{set-prefix}.out
func (s *Store) SaveOutput(challengeID, userID uint, setTitle string, data []byte) (string, error) {
	rel := filepath.Join("output", fmt.Sprintf("p%03d-%d-%s.out", challengeID, userID, setPrefix(setTitle)))
	return rel, s.write(rel, data)
}

// SaveSource persists submitted source code and returns its path relative to
// the media root: source/p{challenge}-{username}-{set-prefix}{ext}
func (s *Store) SaveSource(challengeID uint, username, setTitle, ext string, data []byte) (string, error) {
	rel := filepath.Join("source", fmt.Sprintf("p%03d-%s-%s%s", challengeID, username, setPrefix(setTitle), ext))
	return rel, s.write(rel, data)
}

// Read returns the contents of a previously stored file. Paths that escape
// the media root are rejected.
func (s *Store) Read(rel string) ([]byte, error) {
	full := filepath.Join(s.Root, filepath.Clean(rel))
	if !strings.HasPrefix(full, filepath.Clean(s.Root)+string(os.PathSeparator)) {
		return nil, fmt.Errorf("invalid file path: %s", rel)
	}
	return os.ReadFile(full)
}

// Remove deletes a previously stored file. Paths that escape the media root
// are rejected; a file that is already gone is not an error.
func (s *Store) Remove(rel string) error {
	full := filepath.Join(s.Root, filepath.Clean(rel))
	if !strings.HasPrefix(full, filepath.Clean(s.Root)+string(os.PathSeparator)) {
		return fmt.Errorf("invalid file path: %s", rel)
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) write(rel string, data []byte) error {
	full := filepath.Join(s.Root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rel, err)
	}
	return nil
}

// InputFilename is the attachment name served on a begin request:
// pq-p{challenge}-{set}-{attempt}.in
func InputFilename(challengeID uint, setTitle string, attempt int) string {
	return fmt.Sprintf("pq-p%d-%s-%d.in", challengeID, strings.ToLower(setTitle), attempt)
}

// setPrefix is the lowercased first three characters of a set title
func setPrefix(title string) string {
	title = strings.ToLower(title)
	if len(title) > 3 {
		title = title[:3]
	}
	return title
}

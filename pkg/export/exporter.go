// Package export serializes the collector's accumulated sessions and
// events into a single JSON artifact on disk.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"

	"github.com/VyankateshD206/aiobs/pkg/model"
)

// suffixLength is the random filename suffix that keeps artifacts from
// consecutive flushes within one second distinct.
const suffixLength = 8

// Exporter writes export artifacts into a target directory. It is pure
// with respect to collector state: clearing accumulated sessions and
// events is the collector's job, never the exporter's.
type Exporter struct {
	dir string
}

// New creates an exporter writing into dir. An empty dir means the
// current working directory.
func New(dir string) *Exporter {
	if dir == "" {
		dir = "."
	}
	return &Exporter{dir: dir}
}

// Dir returns the directory artifacts are written to.
func (e *Exporter) Dir() string {
	return e.dir
}

// Export builds the artifact with a fresh generated_at timestamp and
// writes it atomically, returning the final path. An empty snapshot is
// a valid export: the artifact then carries zero sessions and events.
func (e *Exporter) Export(sessions []model.Session, events []model.ObservedEvent) (string, error) {
	if sessions == nil {
		sessions = []model.Session{}
	}
	if events == nil {
		events = []model.ObservedEvent{}
	}

	artifact := model.Export{
		Sessions:    sessions,
		Events:      events,
		GeneratedAt: model.UnixSeconds(time.Now()),
		Version:     model.ExportVersion,
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal export: %w", err)
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(e.dir, artifactName())

	// Write to a temporary file, then rename, so a reader never
	// observes a partially written artifact.
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return "", fmt.Errorf("failed to rename temp file: %w", err)
	}

	log.Debug().
		Str("path", path).
		Int("sessions", len(sessions)).
		Int("events", len(events)).
		Msg("Export artifact written")

	return path, nil
}

// artifactName builds a timestamp-derived, unique artifact filename.
func artifactName() string {
	stamp := time.Now().UTC().Format("20060102T150405Z")
	suffix, err := gonanoid.New(suffixLength)
	if err != nil {
		// crypto/rand failure; fall back to a nanosecond-derived suffix.
		suffix = fmt.Sprintf("%08x", time.Now().UnixNano()&0xffffffff)
	}
	return fmt.Sprintf("aiobs-%s-%s.json", stamp, suffix)
}

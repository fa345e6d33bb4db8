package sink

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"autocaption/domain"
)

const SidecarSuffix = ".caption.txt"

// SidecarSink writes the caption next to the media file as <file>.caption.txt,
// where the component that posts to the channel picks it up.
type SidecarSink struct {
	log *slog.Logger
}

func NewSidecarSink(log *slog.Logger) SidecarSink {
	return SidecarSink{log: log}
}

// Consume writes to a temporary file first so readers never see half a caption.
func (s SidecarSink) Consume(_ context.Context, edit domain.CaptionEdit) error {
	if edit.Path == "" {
		s.log.Debug("No local file, sidecar skipped", "event", edit.EventID)
		return nil
	}
	target := edit.Path + SidecarSuffix
	tmp, err := os.CreateTemp(filepath.Dir(target), ".caption-*")
	if err != nil {
		return fmt.Errorf("failed to create sidecar: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(edit.Caption); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write sidecar: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to publish sidecar: %w", err)
	}
	s.log.Debug("Sidecar written", "path", target)
	return nil
}

// SidecarPath is where Consume writes the caption of mediaPath.
func SidecarPath(mediaPath string) string {
	return mediaPath + SidecarSuffix
}

// Package metadata turns a raw file description and an optional probe result into the
// technical facts shown in captions.
package metadata

import (
	"fmt"

	"autocaption/domain"

	"github.com/samber/lo"
)

// Extract never fails. A nil or partial probe degrades to zero values.
func Extract(file domain.RawFile, probe *domain.ProbeResult) domain.MediaMetrics {
	width, height := dimensions(file, probe)
	title, artist := audioTags(file, probe)
	return domain.MediaMetrics{
		DurationFormatted: FormatDuration(duration(file, probe)),
		Width:             width,
		Height:            height,
		ResolutionLabel:   Resolution(width, height),
		QualityLabel:      QualityLabelFor(width, height),
		EmbeddedTitle:     title,
		EmbeddedArtist:    artist,
	}
}

// QualityLabelFor maps dimensions to a label, first matching threshold wins.
func QualityLabelFor(width, height int) domain.QualityLabel {
	switch {
	case height >= 2160 || width >= 3840:
		return domain.Quality4K
	case height >= 1080:
		return domain.QualityFHD
	case height >= 720:
		return domain.QualityHD
	default:
		return domain.QualitySD
	}
}

// FormatDuration renders whole seconds as HH:MM:SS. Hours are not capped at 24.
func FormatDuration(seconds float64) string {
	total := int64(seconds)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func Resolution(width, height int) string {
	return fmt.Sprintf("%dx%d", width, height)
}

func dimensions(file domain.RawFile, probe *domain.ProbeResult) (int, int) {
	if probe != nil {
		for _, t := range probe.Tracks {
			if t.Type == domain.TrackVideo && t.Width > 0 && t.Height > 0 {
				return t.Width, t.Height
			}
		}
	}
	return lo.FromPtr(file.Width), lo.FromPtr(file.Height)
}

func duration(file domain.RawFile, probe *domain.ProbeResult) float64 {
	if file.DurationSeconds != nil && *file.DurationSeconds > 0 {
		return *file.DurationSeconds
	}
	if probe == nil {
		return 0
	}
	if probe.DurationSeconds > 0 {
		return probe.DurationSeconds
	}
	for _, t := range probe.Tracks {
		if t.DurationSeconds > 0 {
			return t.DurationSeconds
		}
	}
	return 0
}

// audioTags prefers the probed audio track and falls back to what the platform reported.
func audioTags(file domain.RawFile, probe *domain.ProbeResult) (string, string) {
	title := lo.FromPtr(file.EmbeddedTitle)
	artist := lo.FromPtr(file.EmbeddedArtist)
	if audio, ok := probe.FirstTrack(domain.TrackAudio); ok {
		if audio.Title != "" {
			title = audio.Title
		}
		if audio.Performer != "" {
			artist = audio.Performer
		}
	}
	return title, artist
}

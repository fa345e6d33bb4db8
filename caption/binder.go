// Package caption binds media facts to template variables and renders caption templates.
package caption

import (
	"fmt"
	"strconv"
	"time"

	"autocaption/domain"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"
)

const timestampLayout = "2006-01-02 15:04:05"

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// Binder assembles the variable set of one caption. It holds no per request state.
type Binder struct {
	location *time.Location
}

// NewBinder uses loc for the greeting and timestamp. A nil loc means UTC.
func NewBinder(loc *time.Location) Binder {
	if loc == nil {
		loc = time.UTC
	}
	return Binder{location: loc}
}

// Bind returns a value for every name of the vocabulary, "" when unknown.
func (b Binder) Bind(
	file domain.RawFile,
	tags domain.FilenameTags,
	metrics domain.MediaMetrics,
	originalCaption string,
	now time.Time,
) domain.VariableSet {
	local := now.In(b.location)
	return domain.NewVariableSet(map[string]string{
		domain.VarFilename:        file.Filename,
		domain.VarFilesize:        HumanReadableSize(file.SizeBytes),
		domain.VarCaption:         originalCaption,
		domain.VarOriginalCaption: originalCaption,
		domain.VarLanguage:        tags.Language,
		domain.VarYear:            tags.Year,
		domain.VarQuality:         tags.Quality,
		domain.VarSeason:          padded(tags.Season),
		domain.VarEpisode:         padded(tags.Episode),
		domain.VarExt:             tags.Extension,
		domain.VarMimeType:        file.MimeType,
		domain.VarTitle:           metrics.EmbeddedTitle,
		domain.VarArtist:          metrics.EmbeddedArtist,
		domain.VarWish:            Wish(local.Hour()),
		domain.VarDuration:        metrics.DurationFormatted,
		domain.VarWidth:           strconv.Itoa(metrics.Width),
		domain.VarHeight:          strconv.Itoa(metrics.Height),
		domain.VarResolution:      metrics.ResolutionLabel,
		domain.VarCleanTitle:      tags.CleanTitle,
		domain.VarQualityLabel:    string(metrics.QualityLabel),
		domain.VarTimestamp:       local.Format(timestampLayout),
		domain.VarCaptionLanguage: DetectLanguage(originalCaption),
	})
}

// HumanReadableSize uses 1024 steps, one decimal above bytes: 1536 -> "1.5KB".
func HumanReadableSize(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%dB", max(bytes, 0))
	}
	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f%s", value, sizeUnits[unit])
}

// Wish maps an hour of the day (0-23) to a greeting.
func Wish(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Good Morning"
	case hour >= 12 && hour < 17:
		return "Good Afternoon"
	case hour >= 17 && hour < 21:
		return "Good Evening"
	default:
		return "Good Night"
	}
}

// DetectLanguage returns the ISO 639-1 code of text, "" when it cannot tell.
func DetectLanguage(text string) string {
	if text == "" {
		return ""
	}
	return whatlanggo.Detect(text).Lang.Iso6391()
}

func padded(n *int) string {
	return lo.Ternary(n == nil, "", fmt.Sprintf("%02d", lo.FromPtr(n)))
}

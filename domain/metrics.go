package domain

type QualityLabel string

const (
	QualitySD  QualityLabel = "SD"
	QualityHD  QualityLabel = "HD"
	QualityFHD QualityLabel = "FHD"
	Quality4K  QualityLabel = "4K"
)

// Rank orders labels SD < HD < FHD < 4K.
func (q QualityLabel) Rank() int {
	switch q {
	case Quality4K:
		return 3
	case QualityFHD:
		return 2
	case QualityHD:
		return 1
	default:
		return 0
	}
}

// MediaMetrics are the technical facts derived from a file and its probe result.
type MediaMetrics struct {
	DurationFormatted string
	Width             int
	Height            int
	ResolutionLabel   string
	QualityLabel      QualityLabel
	EmbeddedTitle     string
	EmbeddedArtist    string
}

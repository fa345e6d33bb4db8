package caption

import (
	"time"

	"autocaption/domain"
	"autocaption/metadata"
	"autocaption/parser"

	"github.com/samber/lo"
)

const sampleFilename = "Movie.Title.2020.1080p.BluRay.Hindi.English.mkv"

// SampleVariables binds a made-up movie so templates can be checked and previewed
// without a real file.
func (b Binder) SampleVariables(now time.Time) domain.VariableSet {
	file := domain.RawFile{
		Filename:        sampleFilename,
		SizeBytes:       2_254_857_830,
		MimeType:        "video/x-matroska",
		DurationSeconds: lo.ToPtr(7265.0),
		Width:           lo.ToPtr(1920),
		Height:          lo.ToPtr(1080),
	}
	return b.Bind(file, parser.Parse(file.Filename), metadata.Extract(file, nil), "Sample caption", now)
}

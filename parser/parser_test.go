package parser

import (
	"testing"

	"autocaption/domain"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestParse_Episode(t *testing.T) {
	req := require.New(t)

	tags := Parse("Show.Name.S02E05.1080p.WEBRip.mkv")

	req.NotNil(tags.Season)
	req.NotNil(tags.Episode)
	req.Equal(2, *tags.Season)
	req.Equal(5, *tags.Episode)
	req.Equal("1080p", tags.Quality)
	req.Equal("MKV", tags.Extension)
	req.Equal("Show Name", tags.CleanTitle)
	req.Empty(tags.Year)
}

func TestParse_Movie(t *testing.T) {
	req := require.New(t)

	tags := Parse("Movie.Title.2020.1080p.mkv")

	req.Equal("2020", tags.Year)
	req.Equal("1080p", tags.Quality)
	req.Equal("MKV", tags.Extension)
	req.Nil(tags.Season)
	req.Nil(tags.Episode)
	req.Equal("Movie Title", tags.CleanTitle)
}

func TestParse_EmptyFilename(t *testing.T) {
	req := require.New(t)
	req.Equal(domain.FilenameTags{}, Parse(""))
	req.Equal(domain.FilenameTags{}, Parse("   "))
}

func TestParse_NoExtension(t *testing.T) {
	req := require.New(t)

	tags := Parse("Some Movie 1999 720p")

	req.Empty(tags.Extension)
	req.Equal("1999", tags.Year)
	req.Equal("720p", tags.Quality)
	req.Equal("Some Movie", tags.CleanTitle)
}

func TestParse_Languages(t *testing.T) {
	req := require.New(t)

	tags := Parse("Film.2019.Hindi.English.Hindi.720p.x264.mp4")

	req.Equal("Hindi, English", tags.Language)
	req.Equal("MP4", tags.Extension)
	req.Equal("Film", tags.CleanTitle)
}

func TestParse_LastYearWins(t *testing.T) {
	req := require.New(t)

	tags := Parse("Blade.Runner.2049.2017.mkv")

	req.Equal("2017", tags.Year)
	req.Equal("Blade Runner 2049", tags.CleanTitle)
}

func TestParse_QualityPriority(t *testing.T) {
	testCases := []struct {
		name     string
		filename string
		want     string
	}{
		{"resolution beats source", "Movie.BluRay.1080p.mkv", "1080p"},
		{"higher resolution first", "Movie.720p.2160p.mkv", "2160p"},
		{"canonical spelling", "Movie.WEB-DL.mkv", "WEB-DL"},
		{"uhd alias", "Movie.UHD.mkv", "4K"},
		{"token boundary", "Camera.Obscura.mkv", ""},
		{"nothing", "holiday.jpg", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Parse(tc.filename).Quality)
		})
	}
}

func TestParse_SeasonEpisodeForms(t *testing.T) {
	testCases := []struct {
		name     string
		filename string
		season   *int
		episode  *int
	}{
		{"compact", "show.s1e2.mkv", lo.ToPtr(1), lo.ToPtr(2)},
		{"cross", "show.3x07.avi", lo.ToPtr(3), lo.ToPtr(7)},
		{"words", "Show Season 4 Episode 12.mp4", lo.ToPtr(4), lo.ToPtr(12)},
		{"season only", "Show.S03.Complete.mkv", lo.ToPtr(3), nil},
		{"episode only", "Show.Ep.9.mkv", nil, lo.ToPtr(9)},
		{"none", "Movie.2001.mkv", nil, nil},
		{"multi episode", "Show.S01E01E02.720p.mkv", lo.ToPtr(1), lo.ToPtr(1)},
		{"multi episode with dash", "Show.S02E03-E04.mkv", lo.ToPtr(2), lo.ToPtr(3)},
		{"episode range only", "Show.E05E06.mkv", nil, lo.ToPtr(5)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			tags := Parse(tc.filename)
			req.Equal(tc.season, tags.Season)
			req.Equal(tc.episode, tags.Episode)
		})
	}
}

func TestParse_MultiEpisodeCleanTitle(t *testing.T) {
	req := require.New(t)
	tags := Parse("Show.Name.S01E01E02.720p.mkv")
	req.Equal("Show Name", tags.CleanTitle)
	req.Equal("720p", tags.Quality)
}

func TestParse_ExtensionRules(t *testing.T) {
	testCases := []struct {
		filename string
		want     string
	}{
		{"clip.mp4", "MP4"},
		{"archive.tar.gz", "GZ"},
		{"version.1.2", ""},
		{"notes.verylongext", ""},
		{"trailing.", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.filename, func(t *testing.T) {
			require.Equal(t, tc.want, Parse(tc.filename).Extension)
		})
	}
}

func TestParse_ResolutionIsNotAYear(t *testing.T) {
	req := require.New(t)
	req.Empty(Parse("Clip.2000p.mkv").Year)
	req.Empty(Parse("Clip.1920i.mkv").Year)
}

// Package parser infers tags (year, quality, season, episode, language, extension and
// a clean title) from a raw media filename. Parsing never fails: a tag that cannot be
// found is simply left empty.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"autocaption/domain"

	"github.com/samber/lo"
)

const (
	minYear = 1900
	maxYear = 2099
)

var (
	qualities = mustVocabulary(qualityTerms)
	languages = mustVocabulary(languageTerms)
	junk      = mustVocabulary(junkTerms)
)

// Patterns run on normalized text: lower case, dots and underscores as spaces.
// Multi-episode names (s01e01e02, s01e01-e02) report their first episode.
var (
	seasonEpisodeRx = regexp.MustCompile(`\bs(\d{1,2}) ?e(\d{1,3})(?:-?e\d{1,3})*\b`)
	crossEpisodeRx  = regexp.MustCompile(`\b(\d{1,2})x(\d{2,3})\b`)
	seasonWordRx    = regexp.MustCompile(`\bseason ?(\d{1,2})\b`)
	seasonShortRx   = regexp.MustCompile(`\bs(\d{1,2})\b`)
	episodeWordRx   = regexp.MustCompile(`\b(?:episode|ep) ?(\d{1,3})\b`)
	episodeShortRx  = regexp.MustCompile(`\be(\d{1,3})(?:-?e\d{1,3})*\b`)
)

// span is a half-open range of rune indexes in the filename.
type span struct {
	start, end int
}

// Parse extracts every tag it can recognise from filename.
// Each extractor reads the original name on its own, so overlapping matches do not
// hide each other; only the clean title accumulates the removals.
func Parse(filename string) domain.FilenameTags {
	if strings.TrimSpace(filename) == "" {
		return domain.FilenameTags{}
	}

	original := []rune(filename)
	text := normalizeRunes(original)
	var removed []span

	var tags domain.FilenameTags

	ext, extSpan, hasExt := extractExtension(original)
	if hasExt {
		tags.Extension = ext
		removed = append(removed, extSpan)
		// The extension is not part of the searchable name.
		text = text[:extSpan.start]
	}

	if q, ok := qualities.best(text); ok {
		tags.Quality = q.canonical
	}
	for _, h := range qualities.find(text) {
		removed = append(removed, span{h.start, h.end})
	}

	season, episode, seSpans := extractSeasonEpisode(string(text))
	tags.Season, tags.Episode = season, episode
	removed = append(removed, seSpans...)

	langs, langSpans := extractLanguages(text)
	tags.Language = strings.Join(langs, ", ")
	removed = append(removed, langSpans...)

	if year, ySpan, ok := extractYear(text); ok {
		tags.Year = year
		removed = append(removed, ySpan)
	}

	for _, h := range junk.find(text) {
		removed = append(removed, span{h.start, h.end})
	}

	tags.CleanTitle = cleanTitle(original, removed)
	return tags
}

// extractExtension reads the last dot separated segment.
// Segments that are too long, purely numeric or not alphanumeric are not extensions.
func extractExtension(name []rune) (string, span, bool) {
	dot := -1
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			dot = i
			break
		}
	}
	if dot < 0 {
		return "", span{}, false
	}
	seg := name[dot+1:]
	if len(seg) == 0 || len(seg) > 5 {
		return "", span{}, false
	}
	hasLetter := false
	for _, r := range seg {
		if !isWordRune(r) || r > unicode.MaxASCII {
			return "", span{}, false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	if !hasLetter {
		return "", span{}, false
	}
	return strings.ToUpper(string(seg)), span{dot, len(name)}, true
}

// extractYear returns the last plausible 4 digit year bounded by non digits.
// A number directly followed by "p" or "i" is a resolution, not a year.
func extractYear(text []rune) (string, span, bool) {
	var (
		year  string
		found span
		ok    bool
	)
	for i := 0; i < len(text); {
		if !unicode.IsDigit(text[i]) {
			i++
			continue
		}
		j := i
		for j < len(text) && unicode.IsDigit(text[j]) {
			j++
		}
		if j-i == 4 && (j == len(text) || (text[j] != 'p' && text[j] != 'i')) {
			candidate := string(text[i:j])
			if n, err := strconv.Atoi(candidate); err == nil && n >= minYear && n <= maxYear {
				year, found, ok = candidate, span{i, j}, true
			}
		}
		i = j
	}
	return year, found, ok
}

func extractSeasonEpisode(text string) (*int, *int, []span) {
	var (
		season, episode *int
		spans           []span
	)
	if m := seasonEpisodeRx.FindStringSubmatchIndex(text); m != nil {
		season = atoiPtr(text[m[2]:m[3]])
		episode = atoiPtr(text[m[4]:m[5]])
		return season, episode, append(spans, runeSpan(text, m[0], m[1]))
	}
	if m := crossEpisodeRx.FindStringSubmatchIndex(text); m != nil {
		season = atoiPtr(text[m[2]:m[3]])
		episode = atoiPtr(text[m[4]:m[5]])
		return season, episode, append(spans, runeSpan(text, m[0], m[1]))
	}

	for _, rx := range []*regexp.Regexp{seasonWordRx, seasonShortRx} {
		if m := rx.FindStringSubmatchIndex(text); m != nil {
			season = atoiPtr(text[m[2]:m[3]])
			spans = append(spans, runeSpan(text, m[0], m[1]))
			break
		}
	}
	for _, rx := range []*regexp.Regexp{episodeWordRx, episodeShortRx} {
		if m := rx.FindStringSubmatchIndex(text); m != nil {
			episode = atoiPtr(text[m[2]:m[3]])
			spans = append(spans, runeSpan(text, m[0], m[1]))
			break
		}
	}
	return season, episode, spans
}

func extractLanguages(text []rune) ([]string, []span) {
	hits := languages.find(text)
	spans := lo.Map(hits, func(h hit, _ int) span {
		return span{h.start, h.end}
	})
	names := lo.Uniq(lo.Map(hits, func(h hit, _ int) string {
		return h.canonical
	}))
	return names, spans
}

// cleanTitle blanks every removed span of the original name, turns separators into
// spaces and collapses the remaining words.
func cleanTitle(original []rune, removed []span) string {
	work := make([]rune, len(original))
	copy(work, original)
	for _, s := range removed {
		for i := max(s.start, 0); i < s.end && i < len(work); i++ {
			work[i] = ' '
		}
	}
	for i, r := range work {
		switch r {
		case '.', '_', '[', ']', '(', ')', '{', '}':
			work[i] = ' '
		}
	}
	words := lo.FilterMap(strings.Fields(string(work)), func(w string, _ int) (string, bool) {
		w = strings.Trim(w, "-+,")
		return w, w != ""
	})
	return strings.Join(words, " ")
}

func runeSpan(text string, start, end int) span {
	s := utf8.RuneCountInString(text[:start])
	return span{s, s + utf8.RuneCountInString(text[start:end])}
}

func atoiPtr(s string) *int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

package parser

import (
	"sort"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

type term struct {
	canonical string
	aliases   []string
}

// vocabulary finds whole-token occurrences of a fixed word list with a single
// Aho-Corasick pass. Terms listed first have the highest priority.
type vocabulary struct {
	matcher   *goahocorasick.Machine
	canonical map[string]string
	priority  map[string]int
}

type hit struct {
	start     int // rune index, inclusive
	end       int // rune index, exclusive
	canonical string
	priority  int
}

func mustVocabulary(terms []term) *vocabulary {
	v, err := newVocabulary(terms)
	if err != nil {
		panic(err)
	}
	return v
}

func newVocabulary(terms []term) (*vocabulary, error) {
	v := &vocabulary{
		canonical: make(map[string]string),
		priority:  make(map[string]int),
	}
	keys := make([]string, 0)
	for i, t := range terms {
		for _, alias := range t.aliases {
			key := string(normalizeRunes([]rune(alias)))
			if key == "" {
				continue
			}
			if _, dup := v.canonical[key]; dup {
				continue
			}
			v.canonical[key] = t.canonical
			v.priority[key] = i
			keys = append(keys, key)
		}
	}
	// The double array trie behind the automaton wants sorted keys.
	sort.Strings(keys)
	patterns := make([][]rune, len(keys))
	for i, k := range keys {
		patterns[i] = []rune(k)
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	v.matcher = m
	return v, nil
}

// find returns every bounded occurrence in text, ordered by position.
// text must already be normalized with normalizeRunes.
func (v *vocabulary) find(text []rune) []hit {
	if len(text) == 0 {
		return nil
	}
	terms := v.matcher.MultiPatternSearch(text, false)
	hits := make([]hit, 0, len(terms))
	for _, t := range terms {
		start := t.Pos
		end := start + len(t.Word)
		if start < 0 || end > len(text) || !isBounded(text, start, end) {
			continue
		}
		key := string(t.Word)
		hits = append(hits, hit{
			start:     start,
			end:       end,
			canonical: v.canonical[key],
			priority:  v.priority[key],
		})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].start != hits[j].start {
			return hits[i].start < hits[j].start
		}
		return hits[i].end > hits[j].end
	})
	return hits
}

// best returns the hit of the highest priority term, leftmost on ties.
func (v *vocabulary) best(text []rune) (hit, bool) {
	hits := v.find(text)
	if len(hits) == 0 {
		return hit{}, false
	}
	best := hits[0]
	for _, h := range hits[1:] {
		if h.priority < best.priority {
			best = h
		}
	}
	return best, true
}

func isBounded(text []rune, start, end int) bool {
	if start > 0 && isWordRune(text[start-1]) {
		return false
	}
	if end < len(text) && isWordRune(text[end]) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// normalizeRunes lower-cases and turns dots and underscores into spaces.
// The output always has the same length as the input so indexes map back.
func normalizeRunes(input []rune) []rune {
	out := make([]rune, len(input))
	for i, r := range input {
		switch r {
		case '.', '_':
			out[i] = ' '
		default:
			out[i] = unicode.ToLower(r)
		}
	}
	return out
}

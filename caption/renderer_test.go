package caption

import (
	"errors"
	"html"
	"testing"
	"time"

	"autocaption/domain"
	"autocaption/metadata"
	"autocaption/parser"

	"github.com/stretchr/testify/require"
)

func vars(values map[string]string) domain.VariableSet {
	return domain.NewVariableSet(values)
}

func TestRender_Conditional(t *testing.T) {
	req := require.New(t)
	tpl := "{% if year %}Year: {{year}}{% endif %}"

	out, err := Render(tpl, vars(map[string]string{"year": "2020"}))
	req.NoError(err)
	req.Equal("Year: 2020", out)

	out, err = Render(tpl, vars(map[string]string{"year": ""}))
	req.NoError(err)
	req.Equal("", out)
}

func TestRender_Placeholders(t *testing.T) {
	testCases := []struct {
		name     string
		template string
		want     string
	}{
		{"spaced", "{{ filename }}", "a.mkv"},
		{"tight", "{{filename}}", "a.mkv"},
		{"legacy", "File: {filename}", "File: a.mkv"},
		{"stray braces", "{ not a var } {}", "{ not a var } {}"},
		{"else branch", "{% if year %}{{year}}{% else %}no year{% endif %}", "no year"},
		{"negation", "{% if not year %}unknown{% endif %}", "unknown"},
		{"nested", "{% if filename %}[{% if year %}{{year}}{% else %}-{% endif %}]{% endif %}", "[-]"},
		{"plain text", "no placeholders", "no placeholders"},
		{"empty", "", ""},
	}
	values := vars(map[string]string{"filename": "a.mkv", "year": ""})
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			out, err := Render(tc.template, values)
			req.NoError(err)
			req.Equal(tc.want, out)
		})
	}
}

func TestRender_UnknownVariable(t *testing.T) {
	testCases := []struct {
		name     string
		template string
	}{
		{"placeholder", "{{ nope }}"},
		{"legacy placeholder", "{nope}"},
		{"condition", "{% if nope %}x{% endif %}"},
		{"branch not taken", "{% if year %}{{ nope }}{% endif %}"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			out, err := Render(tc.template, vars(map[string]string{"year": ""}))
			req.Empty(out)
			var unknown *UnknownVariableError
			req.True(errors.As(err, &unknown))
			req.Equal("nope", unknown.Name)
		})
	}
}

func TestRender_SyntaxErrors(t *testing.T) {
	testCases := []struct {
		name     string
		template string
	}{
		{"unclosed if", "{% if year %}x"},
		{"stray endif", "x{% endif %}"},
		{"stray else", "{% else %}"},
		{"double else", "{% if year %}a{% else %}b{% else %}c{% endif %}"},
		{"unclosed tag", "{% if year"},
		{"unclosed placeholder", "{{ year"},
		{"bad placeholder", "{{ year | upper }}"},
		{"unknown block", "{% for x in y %}{% endfor %}"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)
			_, err := Render(tc.template, vars(map[string]string{"year": "1999"}))
			var syntax *SyntaxError
			req.True(errors.As(err, &syntax), "got %v", err)
		})
	}
}

func TestRender_Idempotent(t *testing.T) {
	req := require.New(t)
	values := vars(map[string]string{"filename": "a.mkv", "year": "2020", "caption": ""})
	first, err := Render(domain.DefaultTemplate+"{{year}}", withVocabulary(values))
	req.NoError(err)
	second, err := Render(domain.DefaultTemplate+"{{year}}", withVocabulary(values))
	req.NoError(err)
	req.Equal(first, second)
}

func TestRender_Escaper(t *testing.T) {
	req := require.New(t)
	out, err := Render("<b>{{ caption }}</b>", vars(map[string]string{"caption": "a < b & c"}), WithEscaper(html.EscapeString))
	req.NoError(err)
	req.Equal("<b>a &lt; b &amp; c</b>", out)
}

func TestNames(t *testing.T) {
	req := require.New(t)
	names, err := Names("{{a}} {b} {% if not c %}{{a}}{% else %}{{d}}{% endif %}")
	req.NoError(err)
	req.Equal([]string{"a", "b", "c", "d"}, names)
}

func TestEndToEnd_DefaultTemplate(t *testing.T) {
	req := require.New(t)
	file := domain.RawFile{Filename: "Movie.Title.2020.1080p.mkv", SizeBytes: 1073741824}
	probe := &domain.ProbeResult{
		DurationSeconds: 5400,
		Tracks:          []domain.Track{{Type: domain.TrackVideo, Width: 1920, Height: 1080}},
	}

	tags := parser.Parse(file.Filename)
	metrics := metadata.Extract(file, probe)
	set := NewBinder(time.UTC).Bind(file, tags, metrics, "", time.Now())
	out, err := Render(domain.DefaultTemplate, set)

	req.NoError(err)
	req.Contains(out, "2020")
	req.Contains(out, "1080p")
	req.Contains(out, "FHD")
	req.Contains(out, "1920x1080")
	req.Contains(out, "1.0GB")
	req.Contains(out, "01:30:00")
	req.NotContains(out, "{{")
	req.NotContains(out, "{%")
}

func withVocabulary(base domain.VariableSet) domain.VariableSet {
	values := make(map[string]string, len(domain.Vocabulary))
	for _, v := range domain.Vocabulary {
		values[v.Name] = base.Get(v.Name)
	}
	return domain.NewVariableSet(values)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"autocaption/caption"
	"autocaption/domain"
	"autocaption/domain/mimetypes"
	caperrors "autocaption/errors"
	"autocaption/infrastructure/storage"
	"autocaption/metadata"
	"autocaption/parser"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

type ParseMode string

const (
	ParseModeHTML ParseMode = "HTML"
	ParseModeText ParseMode = "TEXT"
)

// CaptionSettings tunes how captions are produced.
type CaptionSettings struct {
	ProbeTimeout      time.Duration
	ParseMode         ParseMode
	MaxCaptionLength  int
	FallbackToDefault bool
	Location          *time.Location
}

type CaptionService struct {
	log       *slog.Logger
	validator *validator.Validate
	templates storage.ITemplateRepository
	prober    metadata.Prober
	binder    caption.Binder
	settings  CaptionSettings
	now       func() time.Time
}

// NewCaptionService accepts a nil prober, captions then rely on platform metadata only.
func NewCaptionService(
	log *slog.Logger,
	templates storage.ITemplateRepository,
	prober metadata.Prober,
	settings CaptionSettings,
) *CaptionService {
	return &CaptionService{
		log:       log,
		validator: validator.New(),
		templates: templates,
		prober:    prober,
		binder:    caption.NewBinder(settings.Location),
		settings:  settings,
		now:       time.Now,
	}
}

// Caption runs the whole pipeline for one media item.
// ok is false when the item is skipped; err then says why.
func (s *CaptionService) Caption(ctx context.Context, evt domain.MediaEvent) (domain.CaptionEdit, bool, error) {
	if err := s.validator.Struct(evt); err != nil {
		return domain.CaptionEdit{}, false, fmt.Errorf("%w: %v", caperrors.ErrInvalidEvent, err)
	}
	if evt.File.Filename == "" && evt.File.Path == "" {
		return domain.CaptionEdit{}, false, caperrors.ErrNoMedia
	}

	template := s.templateFor(evt.ChannelID)

	file := evt.File
	file.MimeType = mimetypes.Resolve(file.MimeType, file.Path, file.Filename)

	tags, probe := s.inspect(ctx, file)
	metrics := metadata.Extract(file, probe)
	vars := s.binder.Bind(file, tags, metrics, evt.ExistingCaption, s.now())

	text, fallback, err := s.render(template, vars)
	if err != nil {
		s.log.Warn("Caption skipped",
			"channel", evt.ChannelID,
			"message", evt.MessageID,
			"file", file.Filename,
			"error", err)
		return domain.CaptionEdit{}, false, err
	}

	return domain.CaptionEdit{
		EventID:   evt.ID.String(),
		ChannelID: evt.ChannelID,
		MessageID: evt.MessageID,
		GroupID:   evt.GroupID,
		Path:      file.Path,
		Caption:   s.truncate(text),
		Fallback:  fallback,
	}, true, nil
}

func (s *CaptionService) templateFor(channelID domain.ChannelID) string {
	tpl, err := s.templates.Get(channelID)
	switch {
	case err == nil:
		return tpl.Template
	case errors.Is(err, caperrors.ErrTemplateNotFound):
		return domain.DefaultTemplate
	default:
		s.log.Error("Template lookup failed, using default", "channel", channelID, "error", err)
		return domain.DefaultTemplate
	}
}

// inspect parses the filename and probes the file concurrently.
// A failed or slow probe only costs the probed facts.
func (s *CaptionService) inspect(ctx context.Context, file domain.RawFile) (domain.FilenameTags, *domain.ProbeResult) {
	var (
		wg    sync.WaitGroup
		tags  domain.FilenameTags
		probe *domain.ProbeResult
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		tags = parser.Parse(file.Filename)
	}()

	if s.prober != nil && file.Path != "" && mimetypes.IsMedia(mimetypes.ToMIME(file.MimeType)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			probeCtx := ctx
			if s.settings.ProbeTimeout > 0 {
				var cancel context.CancelFunc
				probeCtx, cancel = context.WithTimeout(ctx, s.settings.ProbeTimeout)
				defer cancel()
			}
			result, err := s.prober.Probe(probeCtx, file.Path)
			if err != nil {
				s.log.Debug("Probe unavailable", "path", file.Path, "error", err)
				return
			}
			probe = result
		}()
	}

	wg.Wait()
	return tags, probe
}

func (s *CaptionService) render(template string, vars domain.VariableSet) (string, bool, error) {
	var opts []caption.Option
	if s.settings.ParseMode == ParseModeHTML {
		opts = append(opts, caption.WithEscaper(html.EscapeString))
	}

	text, err := caption.Render(template, vars, opts...)
	if err == nil {
		return text, false, nil
	}
	if !s.settings.FallbackToDefault || template == domain.DefaultTemplate {
		return "", false, err
	}

	s.log.Info("Channel template failed, falling back to default", "error", err)
	text, fallbackErr := caption.Render(domain.DefaultTemplate, vars, opts...)
	if fallbackErr != nil {
		return "", false, errors.Join(err, fallbackErr)
	}
	return text, true, nil
}

// truncate cuts the caption to the configured number of characters.
// In HTML mode it never leaves half an entity or tag behind, and closes the
// elements the cut left open; those end tags come on top of the limit.
func (s *CaptionService) truncate(text string) string {
	limit := s.settings.MaxCaptionLength
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	cut := string([]rune(text)[:limit])
	if s.settings.ParseMode != ParseModeHTML {
		return cut
	}
	if i := strings.LastIndexAny(cut, "&<"); i >= 0 && !strings.ContainsAny(cut[i:], ";>") {
		cut = cut[:i]
	}
	return closeTags(cut)
}

// closeTags appends the end tags of every element still open in an HTML fragment.
// Values are escaped before rendering, so every '<' left comes from the template.
func closeTags(fragment string) string {
	var open []string
	for rest := fragment; ; {
		start := strings.IndexByte(rest, '<')
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start:], '>')
		if end < 0 {
			break
		}
		tag := strings.TrimSpace(rest[start+1 : start+end])
		rest = rest[start+end+1:]

		switch {
		case strings.HasPrefix(tag, "/"):
			name := strings.ToLower(strings.TrimSpace(tag[1:]))
			if i := lo.LastIndexOf(open, name); i >= 0 {
				open = open[:i]
			}
		case strings.HasSuffix(tag, "/"):
		default:
			name, _, _ := strings.Cut(tag, " ")
			if name != "" {
				open = append(open, strings.ToLower(name))
			}
		}
	}

	var sb strings.Builder
	sb.WriteString(fragment)
	for i := len(open) - 1; i >= 0; i-- {
		sb.WriteString("</" + open[i] + ">")
	}
	return sb.String()
}


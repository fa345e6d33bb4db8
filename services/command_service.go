package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"autocaption/caption"
	"autocaption/domain"
	caperrors "autocaption/errors"
	"autocaption/infrastructure/storage"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const welcomeText = "Hi! Add me as an admin to your channel and every media post gets a caption.\n" +
	"/setcaption <template> sets the caption layout of this channel.\n" +
	"/variables lists what a template can use."

type ICommandService interface {
	Handle(cmd domain.ChannelCommand) (string, error)
}

// CommandService answers channel administration commands.
type CommandService struct {
	log       *slog.Logger
	validator *validator.Validate
	templates storage.ITemplateRepository
	binder    caption.Binder
}

func NewCommandService(log *slog.Logger, templates storage.ITemplateRepository, loc *time.Location) *CommandService {
	return &CommandService{
		log:       log,
		validator: validator.New(),
		templates: templates,
		binder:    caption.NewBinder(loc),
	}
}

// Handle returns the reply to post back to the channel.
func (s *CommandService) Handle(cmd domain.ChannelCommand) (string, error) {
	if err := s.validator.Struct(cmd); err != nil {
		return "", fmt.Errorf("invalid command: %w", err)
	}

	switch cmd.Name {
	case domain.CommandStart:
		return welcomeText, nil
	case domain.CommandVariables:
		return variablesText(), nil
	case domain.CommandSetCaption:
		return s.setCaption(cmd)
	case domain.CommandShowCaption:
		return s.showCaption(cmd.ChannelID)
	case domain.CommandDelCaption:
		if err := s.templates.Delete(cmd.ChannelID); err != nil {
			return "", err
		}
		s.log.Info("Template removed", "channel", cmd.ChannelID)
		return "Caption template removed, the default one is used again.", nil
	default:
		return "", fmt.Errorf("%w: %s", caperrors.ErrUnknownCommand, cmd.Name)
	}
}

// setCaption refuses templates that would fail on every media item.
func (s *CommandService) setCaption(cmd domain.ChannelCommand) (string, error) {
	if strings.TrimSpace(cmd.Args) == "" {
		return "Usage: /setcaption <template>\nExample: /setcaption {{filename}} {% if year %}({{year}}){% endif %}", nil
	}

	names, err := caption.Names(cmd.Args)
	var syntax *caption.SyntaxError
	if errors.As(err, &syntax) {
		return fmt.Sprintf("Template rejected: %s", syntax.Msg), nil
	}
	if err != nil {
		return "", err
	}
	if unknown := lo.Reject(names, func(name string, _ int) bool {
		return domain.IsVocabulary(name)
	}); len(unknown) > 0 {
		quoted := lo.Map(unknown, func(name string, _ int) string {
			return fmt.Sprintf("%q", name)
		})
		return fmt.Sprintf("Unknown variable %s. Send /variables to see the list.", strings.Join(quoted, ", ")), nil
	}

	preview, err := caption.Render(cmd.Args, s.binder.SampleVariables(cmd.SentAt))
	if err != nil {
		return "", err
	}

	if _, err := s.templates.Set(cmd.ChannelID, cmd.Args, cmd.SentAt); err != nil {
		return "", err
	}
	s.log.Info("Template updated", "channel", cmd.ChannelID)
	return "Caption template saved. Preview:\n\n" + preview, nil
}

func (s *CommandService) showCaption(channelID domain.ChannelID) (string, error) {
	tpl, err := s.templates.Get(channelID)
	if errors.Is(err, caperrors.ErrTemplateNotFound) {
		return "No template set, using the default:\n\n" + domain.DefaultTemplate, nil
	}
	if err != nil {
		return "", err
	}
	return "Current template:\n\n" + tpl.Template, nil
}

func variablesText() string {
	lines := lo.Map(domain.Vocabulary, func(v domain.Variable, _ int) string {
		return fmt.Sprintf("{{%s}} - %s", v.Name, v.Description)
	})
	return "Available variables:\n" + strings.Join(lines, "\n") +
		"\n\nConditionals: {% if year %}...{% else %}...{% endif %}"
}

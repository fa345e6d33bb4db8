package services

import (
	"log/slog"
	"testing"
	"time"

	"autocaption/domain"
	caperrors "autocaption/errors"
	"autocaption/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newCommandService(t *testing.T) (*CommandService, *mocks.MockITemplateRepository) {
	ctrl := gomock.NewController(t)
	templates := mocks.NewMockITemplateRepository(ctrl)
	return NewCommandService(logs.GetLoggerFromLevel(slog.LevelDebug), templates, time.UTC), templates
}

func command(name domain.CommandName, args string) domain.ChannelCommand {
	return domain.ChannelCommand{ChannelID: 42, Name: name, Args: args, SentAt: time.Now()}
}

func TestCommandService_Start(t *testing.T) {
	req := require.New(t)
	service, _ := newCommandService(t)

	reply, err := service.Handle(command(domain.CommandStart, ""))

	req.NoError(err)
	req.Contains(reply, "/setcaption")
}

func TestCommandService_Variables(t *testing.T) {
	req := require.New(t)
	service, _ := newCommandService(t)

	reply, err := service.Handle(command(domain.CommandVariables, ""))

	req.NoError(err)
	for _, v := range domain.Vocabulary {
		req.Contains(reply, "{{"+v.Name+"}}")
	}
}

func TestCommandService_SetCaption(t *testing.T) {
	req := require.New(t)
	service, templates := newCommandService(t)
	tpl := "{{clean_title}} {% if year %}({{year}}){% endif %}"

	templates.EXPECT().Set(domain.ChannelID(42), tpl, gomock.Any()).Return(domain.ChannelTemplate{Template: tpl}, nil)

	reply, err := service.Handle(command(domain.CommandSetCaption, tpl))

	req.NoError(err)
	req.Contains(reply, "saved")
	req.Contains(reply, "Movie Title (2020)")
}

func TestCommandService_SetCaptionRejected(t *testing.T) {
	tests := []struct {
		description string
		args        string
		want        string
	}{
		{"Should explain usage without a template", "  ", "Usage"},
		{"Should name the unknown variable", "{{ director }}", "director"},
		{"Should name every unknown variable at once", "{{ director }} {{year}} {% if rating %}*{% endif %}", `"director", "rating"`},
		{"Should reject malformed blocks", "{% if year %}", "rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			service, _ := newCommandService(t)

			reply, err := service.Handle(command(domain.CommandSetCaption, tt.args))

			req.NoError(err)
			req.Contains(reply, tt.want)
		})
	}
}

func TestCommandService_ShowCaption(t *testing.T) {
	req := require.New(t)
	service, templates := newCommandService(t)

	templates.EXPECT().Get(domain.ChannelID(42)).Return(domain.ChannelTemplate{}, caperrors.ErrTemplateNotFound)
	reply, err := service.Handle(command(domain.CommandShowCaption, ""))
	req.NoError(err)
	req.Contains(reply, domain.DefaultTemplate)

	templates.EXPECT().Get(domain.ChannelID(42)).Return(domain.ChannelTemplate{Template: "{{filename}}"}, nil)
	reply, err = service.Handle(command(domain.CommandShowCaption, ""))
	req.NoError(err)
	req.Contains(reply, "{{filename}}")
}

func TestCommandService_DelCaption(t *testing.T) {
	req := require.New(t)
	service, templates := newCommandService(t)

	templates.EXPECT().Delete(domain.ChannelID(42)).Return(nil)

	reply, err := service.Handle(command(domain.CommandDelCaption, ""))

	req.NoError(err)
	req.Contains(reply, "default")
}

func TestCommandService_UnknownCommand(t *testing.T) {
	req := require.New(t)
	service, _ := newCommandService(t)

	_, err := service.Handle(command("/frobnicate", ""))

	req.ErrorIs(err, caperrors.ErrUnknownCommand)
}

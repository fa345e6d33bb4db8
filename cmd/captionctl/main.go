package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"autocaption/caption"
	"autocaption/domain"
	"autocaption/domain/mimetypes"
	"autocaption/infrastructure/storage"
	"autocaption/metadata"
	"autocaption/parser"
	"autocaption/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitUsage   = 2
)

const usage = `captionctl <command> [flags]

Commands:
  command   -channel ID "/setcaption ..."   run a channel command against the store
  caption   -channel ID FILE                caption a local file with the channel template
  preview   -template TPL [FILE]            render a template with sample or real values
  templates                                 list the templates stored per channel
  variables                                 list the template variables with sample values`

// Config is read from the environment (and .env) the same way the captioner does.
// The store is opened exclusively: stop the captioner before running write commands.
type Config struct {
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"WARN"`
	BadgerFilepath string        `envconfig:"BADGER_FILEPATH" default:"./data/badger"`
	FfprobePath    string        `envconfig:"FFPROBE_PATH" default:"ffprobe"`
	ProbeTimeout   time.Duration `envconfig:"PROBE_TIMEOUT" default:"10s"`
	Timezone       string        `envconfig:"TIMEZONE" default:"UTC"`
	ParseMode      string        `envconfig:"PARSE_MODE" default:"HTML"`
	Colours        bool          `envconfig:"CAPTIONCTL_COLOURS" default:"true"`
}

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "captionctl: %v\n", err)
	}
	os.Exit(code)
}

func run(args []string) (int, error) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		return exitUsage, nil
	}

	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return exitUsage, fmt.Errorf("config error: %w", err)
	}
	location, err := time.LoadLocation(config.Timezone)
	if err != nil {
		return exitUsage, fmt.Errorf("TIMEZONE %q: %w", config.Timezone, err)
	}

	switch args[0] {
	case "command":
		return runCommand(config, location, args[1:])
	case "caption":
		return runCaption(config, location, args[1:])
	case "preview":
		return runPreview(config, location, args[1:])
	case "templates":
		return runTemplates(config)
	case "variables":
		return runVariables(config, location)
	default:
		fmt.Fprintln(os.Stderr, usage)
		return exitUsage, fmt.Errorf("unknown command %q", args[0])
	}
}

func runCommand(config Config, location *time.Location, args []string) (int, error) {
	fs := flag.NewFlagSet("command", flag.ContinueOnError)
	channel := fs.Int64("channel", 0, "Channel ID the command is sent to")
	if err := fs.Parse(args); err != nil {
		return exitUsage, err
	}
	text := strings.Join(fs.Args(), " ")
	cmd, ok := domain.ParseCommand(domain.ChannelID(*channel), text, time.Now())
	if !ok {
		return exitUsage, fmt.Errorf("%q is not a command", text)
	}

	db, err := openDB(config.BadgerFilepath)
	if err != nil {
		return exitRuntime, err
	}
	defer db.Close()

	logger := logs.GetLoggerFromString(config.LogLevel)
	service := services.NewCommandService(logger, storage.NewTemplateRepository(db, logger), location)
	reply, err := service.Handle(cmd)
	if err != nil {
		return exitRuntime, err
	}
	header(config, fmt.Sprintf("%s @ channel %d", cmd.Name, cmd.ChannelID))
	fmt.Println(reply)
	return exitOK, nil
}

func runCaption(config Config, location *time.Location, args []string) (int, error) {
	fs := flag.NewFlagSet("caption", flag.ContinueOnError)
	channel := fs.Int64("channel", 0, "Channel whose template is used")
	existing := fs.String("caption", "", "Caption already attached to the message")
	if err := fs.Parse(args); err != nil {
		return exitUsage, err
	}
	if fs.NArg() != 1 {
		return exitUsage, errors.New("caption expects exactly one file")
	}
	file, err := localFile(fs.Arg(0))
	if err != nil {
		return exitRuntime, err
	}

	db, err := openDB(config.BadgerFilepath)
	if err != nil {
		return exitRuntime, err
	}
	defer db.Close()

	logger := logs.GetLoggerFromString(config.LogLevel)
	service := services.NewCaptionService(logger,
		storage.NewTemplateRepository(db, logger),
		metadata.NewFfprobeProber(logger, config.FfprobePath),
		services.CaptionSettings{
			ProbeTimeout:      config.ProbeTimeout,
			ParseMode:         services.ParseMode(config.ParseMode),
			FallbackToDefault: true,
			Location:          location,
		})

	edit, ok, err := service.Caption(context.Background(), domain.MediaEvent{
		ID:              uuid.New(),
		ChannelID:       domain.ChannelID(*channel),
		File:            file,
		ExistingCaption: *existing,
		ReceivedAt:      time.Now(),
	})
	if !ok {
		return exitRuntime, fmt.Errorf("caption skipped: %w", err)
	}
	header(config, lo.Ternary(edit.Fallback, file.Filename+" (default template)", file.Filename))
	fmt.Println(edit.Caption)
	return exitOK, nil
}

func runPreview(config Config, location *time.Location, args []string) (int, error) {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	template := fs.String("template", domain.DefaultTemplate, "Template to render")
	probe := fs.Bool("probe", false, "Probe the file with ffprobe")
	if err := fs.Parse(args); err != nil {
		return exitUsage, err
	}

	binder := caption.NewBinder(location)
	vars := binder.SampleVariables(time.Now())
	title := "sample movie"
	if fs.NArg() > 0 {
		file, err := localFile(fs.Arg(0))
		if err != nil {
			return exitRuntime, err
		}
		var result *domain.ProbeResult
		if *probe {
			ctx, cancel := context.WithTimeout(context.Background(), config.ProbeTimeout)
			defer cancel()
			prober := metadata.NewFfprobeProber(logs.GetLoggerFromString(config.LogLevel), config.FfprobePath)
			if result, err = prober.Probe(ctx, file.Path); err != nil {
				return exitRuntime, err
			}
		}
		vars = binder.Bind(file, parser.Parse(file.Filename), metadata.Extract(file, result), "", time.Now())
		title = file.Filename
	}

	names, err := caption.Names(*template)
	if err != nil {
		return exitRuntime, err
	}
	text, err := caption.Render(*template, vars)
	if err != nil {
		return exitRuntime, err
	}
	header(config, "preview: "+title)
	fmt.Println(text)
	fmt.Printf("\nvariables used: %s\n", strings.Join(names, ", "))
	return exitOK, nil
}

func runTemplates(config Config) (int, error) {
	db, err := openDB(config.BadgerFilepath)
	if err != nil {
		return exitRuntime, err
	}
	defer db.Close()

	templates, err := storage.NewTemplateRepository(db, logs.GetLoggerFromString(config.LogLevel)).List()
	if err != nil {
		return exitRuntime, err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Channel", "Updated", "Template"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, tpl := range templates {
		table.Append([]string{
			strconv.FormatInt(int64(tpl.ChannelID), 10),
			tpl.UpdatedAt.Format("2006-01-02 15:04"),
			strings.ReplaceAll(tpl.Template, "\n", `\n`),
		})
	}
	header(config, fmt.Sprintf("%d channel templates", len(templates)))
	table.Render()
	return exitOK, nil
}

func runVariables(config Config, location *time.Location) (int, error) {
	vars := caption.NewBinder(location).SampleVariables(time.Now())

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Variable", "Sample", "Description"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, v := range domain.Vocabulary {
		value, _ := vars.Lookup(v.Name)
		table.Append([]string{"{{" + v.Name + "}}", value, v.Description})
	}
	header(config, strconv.Itoa(vars.Len())+" variables")
	table.Render()
	return exitOK, nil
}

// localFile describes a file on disk the way an inbox task would.
func localFile(path string) (domain.RawFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.RawFile{}, err
	}
	if info.IsDir() {
		return domain.RawFile{}, fmt.Errorf("%s is a directory", path)
	}
	name := filepath.Base(path)
	return domain.RawFile{
		Filename:  name,
		Path:      path,
		SizeBytes: info.Size(),
		MimeType:  mimetypes.Resolve("", path, name),
	}, nil
}

func header(config Config, title string) {
	line := fmt.Sprintf("  ====== %s ======", title)
	if config.Colours {
		line = color.New(color.BgBlack, color.FgGreen).Render(line)
	}
	fmt.Println(line)
}

func openDB(path string) (*badger.DB, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("database opening failed: %w", err)
	}
	return db, nil
}

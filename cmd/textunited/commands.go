package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"textunited-client/internal/client"
	"textunited-client/internal/config"
	"textunited-client/internal/language"
	"textunited-client/internal/logger"
	"textunited-client/internal/models"
	"textunited-client/internal/transport"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

const usage = `Usage: textunited [global flags] <command> [flags] [args]

Commands:
  projects                      list all projects
  project <id>                  show one project
  files <project-id>            list project files (--translated, --source, --out DIR)
  accounts                      list all accounts
  account <email>               show the account with the given email
  create FILE...                create a project (--name, --source, --target, --translator,
                                --description, --end-date, --proofreader, --reviewer)
  languages                     list supported languages

Global flags:
`

var errUsage = errors.New("invalid usage")

// command is one CLI subcommand. Flags are registered on the command's own set.
type command struct {
	flags       func(fs *pflag.FlagSet)
	credentials bool
	run         func(ctx context.Context, env *environment, fs *pflag.FlagSet) (interface{}, error)
}

// environment is everything a command needs once flags are parsed
type environment struct {
	cfg    *config.Config
	client *client.Client
	args   []string
}

var commands = map[string]command{
	"projects":  {credentials: true, run: listProjects},
	"project":   {credentials: true, run: getProject},
	"files":     {credentials: true, flags: filesFlags, run: listFiles},
	"accounts":  {credentials: true, run: listAccounts},
	"account":   {credentials: true, run: getAccount},
	"create":    {credentials: true, flags: createFlags, run: createProject},
	"languages": {run: listLanguages},
}

func globalFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("textunited", pflag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.String("company-id", "", "Text United company id (TEXTUNITED_COMPANY_ID)")
	fs.String("api-key", "", "Text United API key (TEXTUNITED_API_KEY)")
	fs.String("endpoint", "", "API base URL override, e.g. a sandbox (TEXTUNITED_ENDPOINT)")
	fs.StringP("output", "o", "json", "output format: json or yaml (OUTPUT_FORMAT)")
	fs.String("log-level", "info", "log level: debug, info, warn or error (LOG_LEVEL)")
	fs.String("log-format", "json", "log format: json or text (LOG_FORMAT)")
	fs.Int("timeout", 30, "per-request timeout in seconds (HTTP_TIMEOUT_SEC)")
	return fs
}

// run executes the CLI and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := globalFlags()
	global.SetOutput(stderr)
	global.Usage = func() {
		fmt.Fprint(stderr, usage)
		global.PrintDefaults()
	}
	if err := global.Parse(args); err != nil {
		return exitUsage
	}
	if global.NArg() == 0 {
		global.Usage()
		return exitUsage
	}

	name := global.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", name)
		global.Usage()
		return exitUsage
	}

	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.AddFlagSet(global)
	if cmd.flags != nil {
		cmd.flags(fs)
	}
	if err := fs.Parse(global.Args()[1:]); err != nil {
		return exitUsage
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	env := &environment{cfg: cfg, args: fs.Args()}
	if cmd.credentials {
		if err := cfg.ValidateCredentials(); err != nil {
			fmt.Fprintln(stderr, err)
			return exitError
		}
		executor, err := transport.NewRestyExecutor(transport.Options{
			Timeout:  cfg.Timeout(),
			Endpoint: cfg.Endpoint,
		})
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitError
		}
		env.client = client.New(cfg.CompanyID, cfg.APIKey, executor)
	}

	result, err := cmd.run(ctx, env, fs)
	if errors.Is(err, errUsage) {
		fmt.Fprintf(stderr, "%s: %v\n", name, err)
		return exitUsage
	}
	if err != nil {
		fmt.Fprintf(stderr, "%s failed: %v\n", name, err)
		return exitError
	}

	if err := printResult(stdout, cfg, result); err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	return exitOK
}

func printResult(w io.Writer, cfg *config.Config, result interface{}) error {
	if cfg.IsYAML() {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode yaml output: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode json output: %w", err)
	}
	return nil
}

func exactArgs(env *environment, n int, names string) error {
	if len(env.args) != n {
		return fmt.Errorf("%w: expected %s", errUsage, names)
	}
	return nil
}

func listProjects(ctx context.Context, env *environment, _ *pflag.FlagSet) (interface{}, error) {
	if err := exactArgs(env, 0, "no arguments"); err != nil {
		return nil, err
	}
	return env.client.ListProjects(ctx)
}

func getProject(ctx context.Context, env *environment, _ *pflag.FlagSet) (interface{}, error) {
	if err := exactArgs(env, 1, "<id>"); err != nil {
		return nil, err
	}
	id, err := strconv.Atoi(env.args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: project id must be a number", errUsage)
	}
	return env.client.GetProject(ctx, id)
}

func listAccounts(ctx context.Context, env *environment, _ *pflag.FlagSet) (interface{}, error) {
	if err := exactArgs(env, 0, "no arguments"); err != nil {
		return nil, err
	}
	return env.client.ListAccounts(ctx)
}

func getAccount(ctx context.Context, env *environment, _ *pflag.FlagSet) (interface{}, error) {
	if err := exactArgs(env, 1, "<email>"); err != nil {
		return nil, err
	}
	return env.client.GetAccount(ctx, env.args[0])
}

type languageEntry struct {
	Code string `json:"code" yaml:"code"`
	ID   int    `json:"id" yaml:"id"`
}

func listLanguages(_ context.Context, env *environment, _ *pflag.FlagSet) (interface{}, error) {
	if err := exactArgs(env, 0, "no arguments"); err != nil {
		return nil, err
	}
	all := language.All()
	entries := make([]languageEntry, 0, len(all))
	for _, lang := range all {
		entries = append(entries, languageEntry{Code: lang.Code(), ID: lang.ID()})
	}
	return entries, nil
}

func filesFlags(fs *pflag.FlagSet) {
	fs.Bool("translated", false, "download translated content of translated files")
	fs.Bool("source", false, "download source content of every file")
	fs.String("out", "", "write downloaded content below this directory")
}

type fileEntry struct {
	models.File `yaml:",inline"`
	SavedTo     string `json:"saved_to,omitempty" yaml:"saved_to,omitempty"`
}

func listFiles(ctx context.Context, env *environment, fs *pflag.FlagSet) (interface{}, error) {
	if err := exactArgs(env, 1, "<project-id>"); err != nil {
		return nil, err
	}
	projectID, err := strconv.Atoi(env.args[0])
	if err != nil {
		return nil, fmt.Errorf("%w: project id must be a number", errUsage)
	}

	translated, _ := fs.GetBool("translated")
	source, _ := fs.GetBool("source")
	out, _ := fs.GetString("out")

	var opts []models.FileOption
	if translated {
		opts = append(opts, models.WithTranslatedContent())
	}
	if source {
		opts = append(opts, models.WithSourceContent())
	}

	files, err := models.NewProject(env.client, projectID).Files(ctx, opts...)
	if err != nil {
		return nil, err
	}

	entries := make([]fileEntry, 0, len(files))
	for _, file := range files {
		entry := fileEntry{File: *file}
		if out != "" {
			if entry.SavedTo, err = saveFile(out, file); err != nil {
				return nil, err
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// saveFile writes the downloaded content of file below dir, preferring the
// translation. Files without downloaded content are skipped.
func saveFile(dir string, file *models.File) (string, error) {
	content := file.TranslatedContent
	if content == nil {
		content = file.SourceContent
	}
	if content == nil {
		return "", nil
	}

	rel := filepath.Clean(filepath.Join(strings.ReplaceAll(file.Subdir, `\`, "/"), file.Name))
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("refusing to write %s outside of %s", rel, dir)
	}

	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

func createFlags(fs *pflag.FlagSet) {
	fs.String("name", "", "project name")
	fs.String("source", "", "source language code, e.g. en_gb")
	fs.String("target", "", "target language code, e.g. es_es")
	fs.Int("translator", 0, "translator account id")
	fs.String("description", "", "project description")
	fs.String("end-date", "", "deadline as YYYY-MM-DD or RFC 3339")
	fs.Int("proofreader", 0, "proofreader account id")
	fs.Int("reviewer", 0, "in-country reviewer account id")
}

type createdProject struct {
	ID string `json:"id" yaml:"id"`
}

func createProject(ctx context.Context, env *environment, fs *pflag.FlagSet) (interface{}, error) {
	if len(env.args) == 0 {
		return nil, fmt.Errorf("%w: expected at least one FILE", errUsage)
	}

	name, _ := fs.GetString("name")
	sourceCode, _ := fs.GetString("source")
	targetCode, _ := fs.GetString("target")
	translatorID, _ := fs.GetInt("translator")
	description, _ := fs.GetString("description")

	source, err := language.ByCode(sourceCode)
	if err != nil {
		return nil, err
	}
	target, err := language.ByCode(targetCode)
	if err != nil {
		return nil, err
	}

	var opts []models.ProjectRequestOption
	if endDate, _ := fs.GetString("end-date"); endDate != "" {
		end, err := parseEndDate(endDate)
		if err != nil {
			return nil, err
		}
		opts = append(opts, models.WithEndDate(end))
	}
	if fs.Changed("proofreader") {
		id, _ := fs.GetInt("proofreader")
		opts = append(opts, models.WithProofreader(id))
	}
	if fs.Changed("reviewer") {
		id, _ := fs.GetInt("reviewer")
		opts = append(opts, models.WithInCountryReviewer(id))
	}

	uploads := make([]*models.FileUpload, 0, len(env.args))
	for _, path := range env.args {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		upload, err := models.NewFileUpload(filepath.Base(path), content)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}

	req, err := models.NewProjectRequest(name, source, target, description, uploads, translatorID, opts...)
	if err != nil {
		return nil, err
	}

	id, err := env.client.AddProject(ctx, req)
	if err != nil {
		return nil, err
	}
	return createdProject{ID: id}, nil
}

func parseEndDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: end date %q must be YYYY-MM-DD or RFC 3339", errUsage, value)
}

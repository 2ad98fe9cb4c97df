// Package config turns command line flags into the immutable runtime
// configuration.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"
	apphttp "promptgen.arpa/app/http"
	"promptgen.arpa/app/slack"
	"promptgen.arpa/app/store"
)

type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

func (e Environment) String() string {
	return string(e)
}

var Environments = []Environment{EnvironmentDevelopment, EnvironmentProduction}

func IsEnvironment(s string) bool {
	return slices.Contains(Environments, Environment(strings.ToLower(s)))
}

func environmentFromString(s string) Environment {
	switch strings.ToLower(s) {
	case EnvironmentDevelopment.String():
		return EnvironmentDevelopment
	case EnvironmentProduction.String():
		return EnvironmentProduction
	default:
		return ""
	}
}

// From LDFLAGS
type BuildOpts struct {
	BuildVersion     string
	BuildTime        string
	BuildEnvironment string
}

func (l BuildOpts) MakeConfig(cmd *cli.Command) Config {
	if l.BuildVersion == "" {
		l.BuildVersion = "dev"
	}
	if l.BuildTime == "" {
		l.BuildTime = "unknown"
	}
	opts := configOpts{
		Version:           l.BuildVersion,
		BuildTime:         l.BuildTime,
		LogLevel:          cmd.String("log-level"),
		Environment:       Default(cmd.String("env"), l.BuildEnvironment),
		DataDir:           cmd.String("data-dir"),
		Store:             cmd.String("store"),
		HistorySize:       cmd.Int("history-size"),
		Seed:              cmd.Int64("seed"),
		DictionaryFile:    cmd.String("dictionary-file"),
		SiteURL:           cmd.String("site-url"),
		ServerURL:         cmd.String("server-url"),
		RateLimit:         cmd.Float("rate-limit"),
		RateBurst:         cmd.Int("rate-burst"),
		SlackToken:        cmd.String("slack-token"),
		SlackShareChannel: cmd.String("slack-share-channel"),
		SlackAPIURL:       cmd.String("slack-api-url"),
	}

	return newConfig(opts)
}

type configOpts struct {
	Version           string
	BuildTime         string
	LogLevel          string
	Environment       string
	DataDir           string
	Store             string
	HistorySize       int
	Seed              int64
	DictionaryFile    string
	SiteURL           string
	ServerURL         string
	RateLimit         float64
	RateBurst         int
	SlackToken        string
	SlackShareChannel string
	SlackAPIURL       string
}

type Config struct {
	Version        string
	BuildTime      string
	LogLevel       string
	Environment    Environment
	DataDir        string
	Store          store.Kind
	HistorySize    int
	Seed           int64
	DictionaryFile string
	// SiteURL is appended as attribution when a prompt is copied to the clipboard.
	SiteURL string
	Server  apphttp.Config
	Slack   slack.Config
}

func newConfig(opts configOpts) Config {
	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = defaultDataDir()
	} else {
		dataDir = absolutePath(dataDir)
	}

	dictionaryFile := opts.DictionaryFile
	if dictionaryFile != "" {
		dictionaryFile = absolutePath(dictionaryFile)
	}

	return Config{
		Version:        opts.Version,
		BuildTime:      opts.BuildTime,
		LogLevel:       opts.LogLevel,
		Environment:    Default(environmentFromString(opts.Environment), EnvironmentDevelopment),
		DataDir:        dataDir,
		Store:          Default(store.Kind(opts.Store), store.KindFile),
		HistorySize:    opts.HistorySize,
		Seed:           opts.Seed,
		DictionaryFile: dictionaryFile,
		SiteURL:        opts.SiteURL,
		Server: apphttp.Config{
			ServerURL: opts.ServerURL,
			RateLimit: opts.RateLimit,
			RateBurst: opts.RateBurst,
		},
		Slack: slack.Config{
			Token:   opts.SlackToken,
			Channel: opts.SlackShareChannel,
			APIURL:  opts.SlackAPIURL,
		},
	}
}

// Relative paths resolve against the working directory.
// Returns the input if it can't be resolved.
func absolutePath(input string) string {
	if filepath.IsAbs(input) {
		return filepath.Clean(input)
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		return input
	}
	return abs
}

// Per-user config directory, or a local directory when there is none.
func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return absolutePath("promptgen-data")
	}
	return filepath.Join(dir, "promptgen")
}

func Default[T comparable](val T, defaultVal T) T {
	var zero T
	if val == zero {
		return defaultVal
	}
	return val
}

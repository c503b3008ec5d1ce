package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goversion "github.com/caarlos0/go-version"

	recursiveimport "github.com/FilipMalczak/recursive-import"
	"github.com/FilipMalczak/recursive-import/fsresolve"
	"github.com/FilipMalczak/recursive-import/goload"
	"github.com/FilipMalczak/recursive-import/internal/config"
)

var (
	version    = "0.0.1"
	commit     = ""
	treeState  = ""
	date       = ""
	builtBy    = ""
	debug      = flag.Bool("debug", false, "Enable debug logging")
	logFile    = flag.String("log-file", "", "Path to a file where logs should be written. If empty, logs go to stderr.")
	configFile = flag.String("config", "", "Path to a YAML configuration file.")
	base       = flag.String("base", ".", "Directory holding the root container.")
	layout     = flag.String("layout", config.LayoutGo, "Directory layout: go or python.")
	tags       = flag.String("tags", "", "Comma separated build tags used when loading Go packages.")
	tests      = flag.Bool("tests", false, "Include test files when loading Go packages.")
	list       = flag.Bool("list", false, "Print every resolved name in resolution order.")
)

func main() {
	flag.Parse()

	// Configure log output
	var logWriter *os.File
	if *logFile != "" {
		var err error
		logWriter, err = os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			slog.Error("Failed to open log file", "file", *logFile, "error", err)
			os.Exit(1)
		}
		defer logWriter.Close()
	} else {
		logWriter = os.Stderr
	}

	logLevel := slog.LevelWarn
	if *debug {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: logLevel,
	})))

	if len(flag.Args()) == 0 {
		v := buildVersion(version, commit, date, builtBy, treeState)
		fmt.Println(v.String())
		fmt.Println("Usage: rimport [options] <root-name>")
		flag.PrintDefaults()
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	l, err := cfg.ResolveLayout()
	if err != nil {
		slog.Error("Invalid layout", "error", err)
		os.Exit(1)
	}

	root := flag.Arg(0)
	slog.Info("Starting rimport", "root", root, "base", cfg.Base)

	var load fsresolve.LoadFunc
	if cfg.IsGo() {
		loader := goload.New(goload.WithBuildTags(cfg.BuildTags...), goload.WithTests(cfg.Tests))
		load = loader.Load
	}
	recorder := recursiveimport.NewRecorder(fsresolve.New(cfg.Base, l, load))

	err = recursiveimport.ImportRecursively(recorder, root, recursiveimport.WithLayout(l))
	if cfg.List {
		for _, name := range recorder.Names() {
			fmt.Println(name)
		}
	}
	if err != nil {
		slog.Error("Recursive import failed", "root", root, "error", err)
		os.Exit(1)
	}
	slog.Info("rimport finished successfully.", "resolved", len(recorder.Names()))
}

// loadConfig merges the optional config file with the flags set on the command line.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.LoadFile(*configFile); err != nil {
			return nil, err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "base":
			cfg.Base = *base
		case "layout":
			cfg.Layout = *layout
		case "tags":
			cfg.BuildTags = splitTags(*tags)
		case "tests":
			cfg.Tests = *tests
		case "list":
			cfg.List = *list
		}
	})
	return cfg, cfg.Validate()
}

func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func buildVersion(version, commit, date, builtBy, treeState string) goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(config.Application, config.Description, config.WebSite),
		func(i *goversion.Info) {
			i.ASCIIName = config.UI
			if commit != "" {
				i.GitCommit = commit
			}
			if version != "" {
				i.GitVersion = version
			}
			if treeState != "" {
				i.GitTreeState = treeState
			}
			if date != "" {
				i.BuildDate = date
			}
			if builtBy != "" {
				i.BuiltBy = builtBy
			}
		},
	)
}

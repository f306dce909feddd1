package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/testproject-io/robotkeywords/lib/browser"
	"github.com/testproject-io/robotkeywords/lib/debug"
	"github.com/testproject-io/robotkeywords/lib/keywords"
	"github.com/testproject-io/robotkeywords/lib/runner"
	"github.com/testproject-io/robotkeywords/lib/version"
	"github.com/testproject-io/robotkeywords/lib/xlog"

	"github.com/gravitational/configure/cstrings"
	"github.com/gravitational/trace"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

func main() {
	if err := run(); err != nil {
		logrus.Errorf(trace.DebugReport(err))
		os.Exit(255)
	}
}

func run() error {
	args, extraArgs := cstrings.SplitAt(os.Args, "--")

	var (
		app        = kingpin.New("tprobot", "Browser automation keywords with TestProject reports.")
		debugMode  = app.Flag("debug", "Enable debug logging.").Bool()
		configPath = app.Flag("config", "Path to the JSON configuration file.").Envar("TP_CONFIG").String()
		envFile    = app.Flag("env-file", "Dotenv file loaded before the configuration.").Default(".env").String()
		pprofAddr  = app.Flag("pprof", "Serve profiling endpoints on this address.").String()

		crun      = app.Command("run", "Run keyword suites.")
		crunFiles = crun.Arg("suite", "YAML suite files.").Required().ExistingFiles()
		crunVars  = crun.Flag("variable", "Suite variable as name=value, overrides the suite value.").Short('v').StringMap()

		cexec        = app.Command("exec", "Initialize the driver and run a single keyword. Keyword arguments follow --.")
		cexecKeyword = cexec.Arg("keyword", "Keyword name.").Required().String()

		ckeywords = app.Command("keywords", "List keywords and their arguments.")

		cversion = app.Command("version", "Print the library version.")
	)

	cmd, err := app.Parse(args[1:])
	if err != nil {
		return trace.Wrap(err)
	}

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		return trace.Wrap(err, "failed to load %v", *envFile)
	}

	if cmd == cversion.FullCommand() {
		v, err := version.Get()
		if err != nil {
			return trace.Wrap(err)
		}
		fmt.Println(v)
		return nil
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return trace.Wrap(err)
	}
	level := cfg.level()
	if *debugMode {
		level = logrus.DebugLevel
	}
	log := xlog.ConsoleLogger(level)
	logrus.SetLevel(level)

	ctx, stop := debug.WatchInterrupts(context.Background(), log)
	defer stop()

	if *pprofAddr != "" {
		debug.StartProfiling(*pprofAddr, log)
	}

	if cfg.CloudLog.ProjectID != "" {
		client, err := xlog.NewGCLClient(ctx, cfg.CloudLog.ProjectID, cfg.CloudLog.CredentialsFile)
		if err != nil {
			return trace.Wrap(err)
		}
		defer client.Close()
		log.Hooks.Add(client.Hook("tprobot", logrus.Fields{
			"command": cmd,
			"project": cfg.Report.ProjectName,
			"job":     cfg.Report.JobName,
		}))
	}

	switch cmd {
	case ckeywords.FullCommand():
		lib, err := newLibrary(cfg, log)
		if err != nil {
			return trace.Wrap(err)
		}
		return printKeywords(lib)
	case cexec.FullCommand():
		lib, err := newLibrary(cfg, log)
		if err != nil {
			return trace.Wrap(err)
		}
		return trace.Wrap(closeAfter(lib, func() error {
			return execKeyword(ctx, lib, *cexecKeyword, extraArgs)
		}))
	case crun.FullCommand():
		return trace.Wrap(runSuites(ctx, cfg, *crunFiles, *crunVars, log))
	}
	return nil
}

func newLibrary(cfg *fileConfig, log logrus.FieldLogger) (*keywords.Library, error) {
	b, err := browser.New(cfg.browserConfig(log))
	if err != nil {
		return nil, trace.Wrap(err)
	}
	lib, err := keywords.New(keywords.Config{
		Browser:     b,
		Init:        cfg.initOptions(),
		FieldLogger: log,
	})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return lib, nil
}

// closeAfter runs fn and closes the library with a context that outlives interrupts
func closeAfter(lib *keywords.Library, fn func() error) error {
	err := fn()
	if closeErr := lib.Close(context.Background()); closeErr != nil {
		if err == nil {
			return trace.Wrap(closeErr)
		}
		lib.WithError(closeErr).Warn("Failed to close the library.")
	}
	return err
}

func execKeyword(ctx context.Context, lib *keywords.Library, name string, args []string) error {
	if _, err := lib.Run(ctx, runner.InitKeyword); err != nil {
		return trace.Wrap(err)
	}
	value, err := lib.Run(ctx, name, args...)
	if err != nil {
		return trace.Wrap(err)
	}
	if value != nil {
		fmt.Println(value)
	}
	return nil
}

// runSuites runs every suite with its own library and driver session
func runSuites(ctx context.Context, cfg *fileConfig, paths []string, vars map[string]string, log logrus.FieldLogger) error {
	suites := make([]*runner.Suite, 0, len(paths))
	for _, path := range paths {
		suite, err := runner.Load(path)
		if err != nil {
			return trace.Wrap(err)
		}
		suite.SetVariables(vars)
		suites = append(suites, suite)
	}

	var errors []error
	for _, suite := range suites {
		if ctx.Err() != nil {
			break
		}
		lib, err := newLibrary(cfg, log)
		if err != nil {
			return trace.Wrap(err)
		}
		err = closeAfter(lib, func() error {
			r, err := runner.New(runner.Config{Library: lib, FieldLogger: log})
			if err != nil {
				return trace.Wrap(err)
			}
			_, err = r.Run(ctx, *suite)
			return trace.Wrap(err)
		})
		if err != nil {
			errors = append(errors, trace.Wrap(err, "suite %v failed", suite.Name))
		}
	}
	return trace.NewAggregate(errors...)
}

func printKeywords(lib *keywords.Library) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "KEYWORD\tARGUMENTS")
	for _, k := range lib.Keywords() {
		fmt.Fprintf(w, "%v\t%v\n", k.Name, k.Args)
	}
	return trace.Wrap(w.Flush())
}

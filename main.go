package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	wifilog "github.com/shazow/wifisearch/internal/log"
	"github.com/shazow/wifisearch/internal/tui"
	"github.com/shazow/wifisearch/wifi"
	"github.com/shazow/wifisearch/wifi/mock"
)

var (
	// Version is the version of the application. It is set at build time.
	Version string = "dev"
)

const envPrefix = "WIFISEARCH"

// openBackend returns the fixture replay backend when one is configured, or
// the platform backend otherwise.
func openBackend(cfg Config, logger *slog.Logger) (wifi.Backend, error) {
	if cfg.Fixture != "" {
		b, err := mock.LoadFixture(cfg.Fixture)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	return GetBackend(logger)
}

// main is the entry point of the application
func main() {
	var (
		rootFlagSet = flag.NewFlagSet("wifisearch", flag.ExitOnError)
		configPath  = rootFlagSet.String("config", "", "path to a toml config file")
		debug       = rootFlagSet.Bool("debug", false, "log debug messages to stderr")
		version     = rootFlagSet.Bool("version", false, "display version")
		flags       rootFlags
	)
	rootFlagSet.DurationVar(&flags.interval, "interval", 0, "time between scans while waiting (default 1s)")
	rootFlagSet.IntVar(&flags.signalLevels, "signal-levels", 0, "compare signal by this many bars instead of raw value")
	rootFlagSet.StringVar(&flags.fixture, "fixture", "", "replay scans from a toml fixture instead of the system backend")

	// Subcommands run against a, which is set up once flags are parsed.
	var a *app
	opts := []ff.Option{ff.WithEnvVarPrefix(envPrefix)}

	listFlagSet := flag.NewFlagSet("list", flag.ExitOnError)
	listJSON := listFlagSet.Bool("json", false, "output in JSON format")
	listStrongest := listFlagSet.Bool("strongest", false, "only the strongest access point per ssid")
	listCmd := &ffcli.Command{
		Name:       "list",
		ShortUsage: "wifisearch list [-json] [-strongest] [pattern]",
		ShortHelp:  "List nearby access points",
		FlagSet:    listFlagSet,
		Options:    opts,
		Exec: func(ctx context.Context, args []string) error {
			strongest := a.cfg.Strongest
			if isSet(listFlagSet, "strongest") {
				strongest = *listStrongest
			}
			return a.runList(firstArg(args), strongest, *listJSON)
		},
	}

	ssidsFlagSet := flag.NewFlagSet("ssids", flag.ExitOnError)
	ssidsStrongest := ssidsFlagSet.Bool("strongest", false, "only ssids whose strongest access point matches")
	ssidsCmd := &ffcli.Command{
		Name:       "ssids",
		ShortUsage: "wifisearch ssids [-strongest] <pattern>",
		ShortHelp:  "List the ssids of matching access points",
		FlagSet:    ssidsFlagSet,
		Options:    opts,
		Exec: func(ctx context.Context, args []string) error {
			strongest := a.cfg.Strongest
			if isSet(ssidsFlagSet, "strongest") {
				strongest = *ssidsStrongest
			}
			return a.runSSIDs(firstArg(args), strongest)
		},
	}

	savedFlagSet := flag.NewFlagSet("saved", flag.ExitOnError)
	savedJSON := savedFlagSet.Bool("json", false, "output in JSON format")
	savedCmd := &ffcli.Command{
		Name:       "saved",
		ShortUsage: "wifisearch saved [-json] [pattern]",
		ShortHelp:  "List saved networks",
		FlagSet:    savedFlagSet,
		Options:    opts,
		Exec: func(ctx context.Context, args []string) error {
			return a.runSaved(firstArg(args), *savedJSON)
		},
	}

	knownCmd := &ffcli.Command{
		Name:       "known",
		ShortUsage: "wifisearch known <ssid>",
		ShortHelp:  "Report whether an ssid has a saved profile",
		Exec: func(ctx context.Context, args []string) error {
			return a.runKnown(firstArg(args))
		},
	}

	waitFlagSet := flag.NewFlagSet("wait", flag.ExitOnError)
	waitTimeout := waitFlagSet.Duration("timeout", defaultTimeout, "how long to keep scanning")
	waitStrongest := waitFlagSet.Bool("strongest", false, "only match the strongest access point per ssid")
	waitCmd := &ffcli.Command{
		Name:       "wait",
		ShortUsage: "wifisearch wait [-timeout 10s] [-strongest] <pattern>",
		ShortHelp:  "Scan until a matching access point shows up",
		FlagSet:    waitFlagSet,
		Options:    opts,
		Exec: func(ctx context.Context, args []string) error {
			timeout, strongest := a.pollSettings(waitFlagSet, *waitTimeout, *waitStrongest)
			return a.runWait(ctx, firstArg(args), timeout, strongest)
		},
	}

	watchFlagSet := flag.NewFlagSet("watch", flag.ExitOnError)
	watchTimeout := watchFlagSet.Duration("timeout", defaultTimeout, "how long to keep scanning")
	watchStrongest := watchFlagSet.Bool("strongest", false, "only match the strongest access point per ssid")
	watchCmd := &ffcli.Command{
		Name:       "watch",
		ShortUsage: "wifisearch watch [-timeout 10s] [-strongest] <pattern>",
		ShortHelp:  "Like wait, with a live view of each scan",
		FlagSet:    watchFlagSet,
		Options:    opts,
		Exec: func(ctx context.Context, args []string) error {
			timeout, strongest := a.pollSettings(watchFlagSet, *watchTimeout, *watchStrongest)
			return a.runWatch(ctx, firstArg(args), timeout, strongest)
		},
	}

	root := &ffcli.Command{
		ShortUsage:  "wifisearch [flags] <subcommand> [args...]",
		FlagSet:     rootFlagSet,
		Options:     opts,
		Subcommands: []*ffcli.Command{listCmd, ssidsCmd, savedCmd, knownCmd, waitCmd, watchCmd},
		Exec: func(ctx context.Context, args []string) error {
			return flag.ErrHelp
		},
	}

	if err := root.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if *version {
		fmt.Println(Version)
		os.Exit(0)
	}

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	wifilog.Init(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logger := slog.Default()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	cfg = flags.Apply(rootFlagSet, cfg)
	tui.CurrentTheme = cfg.Theme.Apply(tui.NewDefaultTheme())

	b, err := openBackend(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	a = &app{out: os.Stdout, backend: b, cfg: cfg, logger: logger}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = root.Run(ctx)
	if closer, ok := b.(io.Closer); ok {
		closer.Close()
	}
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		fmt.Fprintln(os.Stderr, ffcli.DefaultUsageFunc(root))
		os.Exit(2)
	case errors.Is(err, errNoMatch):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// pollSettings resolves the timeout and strongest flags of fs against the
// config file.
func (a *app) pollSettings(fs *flag.FlagSet, timeout time.Duration, strongest bool) (time.Duration, bool) {
	if !isSet(fs, "timeout") {
		timeout = a.cfg.Timeout.Duration
	}
	if !isSet(fs, "strongest") {
		strongest = a.cfg.Strongest
	}
	return timeout, strongest
}

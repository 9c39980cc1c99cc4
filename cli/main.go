package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mwantia/menufs"
	"github.com/mwantia/menufs/cache"
	"github.com/mwantia/menufs/cache/memory"
	"github.com/mwantia/menufs/cache/sqlite"
	"github.com/mwantia/menufs/config"
	"github.com/mwantia/menufs/dispatch"
	"github.com/mwantia/menufs/log"
	"github.com/mwantia/menufs/menu"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
	"github.com/thejerf/suture/v4"
)

type CLI struct {
	Config        string `help:"YAML configuration file" env:"MENUFS_CONFIG" placeholder:"PATH"`
	LogLevel      string `name:"log-level" help:"Log level (debug, info, warn, error)" env:"MENUFS_LOG_LEVEL"`
	MetricsListen string `name:"metrics-listen" help:"Serve Prometheus metrics on this address" env:"MENUFS_METRICS_LISTEN" placeholder:"ADDR"`
	Desktop       string `help:"Desktop environment used for visibility" env:"MENUFS_DESKTOP"`

	Command []string `arg:"" optional:"" passthrough:"" help:"Command and arguments, e.g. 'ls menu://applications/Utilities'"`
}

func main() {
	var params CLI
	kong.Parse(&params,
		kong.Name("menufs"),
		kong.Description("Browse and edit the XDG applications menu as a filesystem."),
		kong.UsageOnError(),
	)

	code, err := run(params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "menufs: %v\n", err)
	}
	os.Exit(code)
}

func run(params CLI) (int, error) {
	cfg, err := loadConfig(params)
	if err != nil {
		return 1, err
	}

	logger := log.NewLogger("menufs", cfg.Log.Level, cfg.Log.File, cfg.Log.File != "")
	logger.JSON = cfg.Log.JSON
	logger.NoColor = cfg.Log.NoColor
	logger.WithRotation(cfg.Log.Rotation)

	fs := afero.NewOsFs()
	menuFile, err := cfg.LocateMenuFile(fs)
	if err != nil {
		return 1, err
	}

	loader, err := menu.NewLoader(
		menu.WithFs(fs),
		menu.WithLogger(logger.Named("menufs/menu")),
		menu.WithConfigDirs(cfg.Paths.ConfigHome, cfg.Paths.ConfigDirs),
		menu.WithPattern(cfg.MergePattern),
	)
	if err != nil {
		return 1, err
	}

	options := []memory.Option{
		memory.WithFs(fs),
		memory.WithLogger(logger.Named("menufs/cache")),
		memory.WithLoader(loader),
		memory.WithMenuFile(menuFile),
		memory.WithAppDirs(cfg.AppDirs()...),
		memory.WithDirectoryDirs(cfg.DirectoryDirs()...),
		memory.WithEntryCacheSize(cfg.Cache.EntryCacheSize),
	}
	if store := openSnapshot(cfg.Cache.Snapshot, logger); store != nil {
		options = append(options, memory.WithStore(store))
	}

	c, err := memory.New(options...)
	if err != nil {
		return 1, err
	}

	d, err := dispatch.New(dispatch.WithName("cache"), dispatch.WithLogger(logger.Named("menufs/dispatch")))
	if err != nil {
		return 1, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	supervisor := suture.NewSimple("menufs")
	supervisor.Add(d)
	if c.GetCapabilities().Contains(cache.CapabilityWatch) {
		supervisor.Add(c.Watcher(d, cfg.Cache.Debounce))
	}
	if cfg.Metrics.Listen != "" {
		supervisor.Add(&metricsService{listen: cfg.Metrics.Listen, log: logger.Named("menufs/metrics")})
	}
	done := supervisor.ServeBackground(ctx)

	if err := d.Call(ctx, func(ctx context.Context) error {
		if err := c.Open(ctx); err != nil {
			return err
		}
		logger.Debug("Opened '%s' cache with capabilities: %s", c.GetName(), c.GetCapabilities())
		return nil
	}); err != nil {
		return 1, fmt.Errorf("failed to open cache: %w", err)
	}

	mfs, err := menufs.New(c, d,
		menufs.WithFs(fs),
		menufs.WithLogger(logger),
		menufs.WithLoader(loader),
		menufs.WithMenuFile(menuFile),
		menufs.WithUserAppDir(cfg.UserAppDir()),
		menufs.WithDesktop(cfg.Desktop),
	)
	if err != nil {
		return 1, err
	}

	code := 0
	if len(params.Command) == 0 {
		printCommands(os.Stdout, mfs)
	} else {
		code, err = mfs.Execute(ctx, os.Stdout, params.Command...)
	}

	if ctx.Err() != nil {
		// Interrupted: the supervisor no longer serves the dispatcher.
		d.Close()
	}

	cleanup, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := mfs.Shutdown(cleanup); err != nil {
		logger.Warn("Failed to shut down monitors: %v", err)
	}
	if err := d.Call(cleanup, c.Close); err != nil {
		logger.Debug("Cache not closed: %v", err)
	}

	stop()
	if serr := <-done; serr != nil && !errors.Is(serr, context.Canceled) {
		logger.Debug("Supervisor stopped: %v", serr)
	}

	return code, err
}

func loadConfig(params CLI) (*config.Config, error) {
	cfg := config.Default()
	if params.Config != "" {
		var err error
		if cfg, err = config.LoadFile(params.Config, os.Getenv); err != nil {
			return nil, err
		}
	}

	if params.LogLevel != "" {
		level, err := log.Parse(params.LogLevel)
		if err != nil {
			return nil, err
		}
		cfg.Log.Level = level
	}
	if params.MetricsListen != "" {
		cfg.Metrics.Listen = params.MetricsListen
	}
	if params.Desktop != "" {
		cfg.Desktop = params.Desktop
	}

	return cfg, cfg.Validate()
}

// openSnapshot returns nil when snapshots are disabled or unusable.
func openSnapshot(path string, logger *log.Logger) *sqlite.Store {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Warn("Snapshots disabled: %v", err)
		return nil
	}

	store, err := sqlite.NewStore(path)
	if err != nil {
		logger.Warn("Snapshots disabled: %v", err)
		return nil
	}

	return store
}

func printCommands(w io.Writer, mfs *menufs.MenuFileSystem) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Commands:")
	for _, command := range mfs.Commands() {
		fmt.Fprintf(tw, "  %s\t%s\n", command.Usage(), command.Description())
	}
	tw.Flush()
}

type metricsService struct {
	listen string
	log    *log.Logger
}

func (s *metricsService) Serve(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              s.listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		server.Shutdown(shutdown)
	}()

	s.log.Info("Serving metrics on %s", s.listen)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics listener: %w", err)
	}

	return ctx.Err()
}

func (s *metricsService) String() string {
	return "metrics@" + s.listen
}

// Package cmd implements the subastas CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"

	apiclient "github.com/donaldgifford/auction-browser/internal/api/client"
	"github.com/donaldgifford/auction-browser/internal/config"
	"github.com/donaldgifford/auction-browser/internal/session"
	"github.com/donaldgifford/auction-browser/internal/telemetry"
	"github.com/donaldgifford/auction-browser/pkg/logger"
)

// Version is set at build time via ldflags.
var Version = "dev"

// app carries the state shared by every command of one invocation.
type app struct {
	v   *viper.Viper
	out io.Writer

	cfg *config.Config
	log *slog.Logger

	tracer       trace.TracerProvider
	flushTracing telemetry.ShutdownFunc

	store  session.Store
	sess   *session.Manager
	client *apiclient.Client
}

// Root returns a fresh root command, used for documentation generation.
func Root() *cobra.Command {
	return newRootCmd(os.Stdout)
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd(os.Stdout).ExecuteContext(ctx)
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out}

	root := &cobra.Command{
		Use:   "subastas",
		Short: "CLI client for the corporate auction marketplace",
		Long: "subastas browses corporate asset auctions from the terminal.\n" +
			"It lists and searches auctions, shows lots, and manages your\n" +
			"session and preferences.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default: built-in defaults plus environment)")
	flags.String("backend-url", "", "backend origin URL (env SUBASTAS_BACKEND_URL)")
	flags.String("output", "table", "output format (table, json)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	for _, name := range []string{"config", "backend-url", "output", "log-level"} {
		cobra.CheckErr(a.v.BindPFlag(name, flags.Lookup(name)))
	}
	a.v.SetEnvPrefix("SUBASTAS")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		a.auctionsCmd(),
		a.itemsCmd(),
		a.searchCmd(),
		a.loginCmd(),
		a.registerCmd(),
		a.logoutCmd(),
		a.profileCmd(),
		a.myAuctionsCmd(),
		a.themeCmd(),
		a.watchCmd(),
		versionCmd(),
	)
	return root
}

// setup loads configuration and builds the logger. The client and the
// session store are opened lazily by the commands that need them.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.v.GetString("config")
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Read(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if u := a.v.GetString("backend-url"); u != "" {
		cfg.Backend.URL = u
	}
	if lvl := a.v.GetString("log-level"); lvl != "" {
		cfg.Logging.Level = lvl
	}

	// Without a file the URL may still be missing; commands that need the
	// backend report that when they build the client.
	if path != "" {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("validating config: %w", err)
		}
	}

	switch a.v.GetString("output") {
	case "table", "json":
	default:
		return fmt.Errorf("--output must be table or json (got %q)", a.v.GetString("output"))
	}

	a.cfg = cfg
	a.log = logger.New(cfg.Logging.Level, cfg.Logging.Format).With("command", cmd.Name())

	tp, flush, err := telemetry.Tracer(cmd.Context(), cfg.Tracing, "subastas", Version, a.log)
	if err != nil {
		return err
	}
	a.tracer, a.flushTracing = tp, flush
	return nil
}

func (a *app) close() error {
	var errs []error
	if a.flushTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.flushTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("flushing traces: %w", err))
		}
		a.flushTracing = nil
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
		a.store, a.sess = nil, nil
	}
	return errors.Join(errs...)
}

// session opens the configured store on first use.
func (a *app) session(ctx context.Context) (*session.Manager, error) {
	if a.sess != nil {
		return a.sess, nil
	}
	store, err := session.Open(ctx, session.Options{
		Backend:       a.cfg.Session.Backend,
		Path:          a.cfg.Session.Path,
		RedisAddr:     a.cfg.Session.Redis.Addr,
		RedisPassword: a.cfg.Session.Redis.Password,
		RedisDB:       a.cfg.Session.Redis.DB,
		RedisPrefix:   a.cfg.Session.Redis.Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}
	a.store = store
	a.sess = session.NewManager(store, a.log)
	return a.sess, nil
}

// apiClient builds the backend client and restores the persisted token.
func (a *app) apiClient(ctx context.Context) (*apiclient.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	if a.cfg.Backend.URL == "" {
		return nil, errors.New("backend URL is not configured: set --backend-url or SUBASTAS_BACKEND_URL")
	}

	c, err := apiclient.New(a.cfg.Backend.URL,
		apiclient.WithTimeout(a.cfg.Backend.Timeout),
		apiclient.WithRateLimit(a.cfg.Backend.RateLimit.PerSecond, a.cfg.Backend.RateLimit.Burst),
		apiclient.WithLogger(a.log),
		apiclient.WithUserAgent("subastas/"+Version),
		apiclient.WithTracerProvider(a.tracer),
	)
	if err != nil {
		return nil, err
	}

	sess, err := a.session(ctx)
	if err != nil {
		return nil, err
	}
	tok, err := sess.Token(ctx)
	if err != nil {
		return nil, err
	}
	c.SetAuthToken(tok)

	a.client = c
	return c, nil
}

func (a *app) jsonOutput() bool {
	return a.v.GetString("output") == "json"
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("subastas " + Version)
		},
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/logging"
	"github.com/Zachkp/folio/internal/portfolio"
	"github.com/Zachkp/folio/internal/store"
)

var version = "dev"

// visitorRetention is how long hashed visitor records are kept.
const visitorRetention = 365 * 24 * time.Hour

type rootFlags struct {
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "folio",
		Short:         "folio serves a personal portfolio site",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override LOG_LEVEL")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newCheckCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
}

func newCheckCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the portfolio document and report entries that would be dropped",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}

			src := portfolio.NewSource(cfg.DataURL, cfg.DataFile)
			var holder portfolio.Holder
			snap, err := holder.Load(cmd.Context(), src)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range []string{
				portfolio.SectionExperiences, portfolio.SectionProjects, portfolio.SectionEducations,
				portfolio.SectionCertificates, portfolio.SectionSkills,
			} {
				fmt.Fprintf(out, "%-13s %s\n", name, snap.Version(name))
			}
			for _, w := range snap.Warnings {
				fmt.Fprintln(out, "warning:", w)
			}
			if len(snap.Warnings) > 0 {
				return errors.Errorf("%d entries would be dropped", len(snap.Warnings))
			}
			fmt.Fprintf(out, "%s: ok\n", src)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "folio", version)
		},
	}
}

func runServe(ctx context.Context, flags *rootFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	human := cfg.LogFormat == "console" || (cfg.LogFormat == "auto" && logging.IsTerminal(os.Stdout))
	log, err := logging.New(logging.Options{Level: cfg.LogLevel, HumanReadable: human})
	if err != nil {
		return errors.Wrap(err, "configure logger")
	}

	db, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	srv, err := newServer(cfg, log, db, portfolio.NewSource(cfg.DataURL, cfg.DataFile))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The page renders loading panels until the first fetch completes.
	go srv.loadPortfolio(ctx)
	go srv.cleanupOldVisitorData(ctx)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", httpSrv.Addr, "mode", gin.Mode())
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return errors.Wrap(httpSrv.Shutdown(shutdownCtx), "shutdown")
}

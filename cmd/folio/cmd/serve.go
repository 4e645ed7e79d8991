package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/corey/folio/internal/adapters/fsnotify"
	"github.com/corey/folio/internal/adapters/web"
	"github.com/corey/folio/internal/config"
)

var flagPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio JSON API",
	Long:  "Fetches and enriches project data, then serves it over a local HTTP JSON API until interrupted. Changes to the config file trigger a data refresh.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&flagPort, "port", 0, "listen port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	a.Provider.RefreshUser(ctx)
	state := a.Provider.RefreshRepos(ctx)
	slog.Info("initial data loaded", "projects", len(state.Repos), "stale", state.ReposStale)

	srv := web.NewServer(a.Provider, a.Dict)
	port := a.Config.Server.Port
	if flagPort != 0 {
		port = flagPort
	}
	if err := srv.Start(port); err != nil {
		return err
	}
	fmt.Printf("%sserving%s %s\n", colorGreen, colorReset, srv.URL())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("config watcher unavailable", "error", err)
	} else {
		defer watcher.Stop()
		cfgPath := flagConfig
		if cfgPath == "" {
			cfgPath = config.DefaultPath()
		}
		err = watcher.Watch(cfgPath, func() {
			slog.Info("config file changed, refreshing data")
			a.Provider.RefreshUser(ctx)
			a.Provider.RefreshRepos(ctx)
		})
		if err != nil {
			slog.Warn("config watch failed", "path", cfgPath, "error", err)
		}
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	slog.Info("shutting down", "signal", s.String())

	srv.Stop(time.Duration(a.Config.Server.ShutdownTimeout))
	return nil
}

package cmd

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/coreh/linkshare/auth"
	"github.com/coreh/linkshare/handlers"
	"github.com/coreh/linkshare/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		s, err := site.New(ctx, siteOptions(), logger)
		if err != nil {
			return errors.Wrap(err, "error loading site")
		}

		if settings.Secret == "" {
			logger.Warn(ctx, nil, "no secret configured, unlocks will not survive a restart")
		}

		handler := handlers.SetupRouter(&handlers.Server{
			Site:          s,
			Codec:         auth.NewCodec([]byte(settings.Secret)),
			Log:           logger,
			BaseURL:       settings.BaseURL,
			SecureCookies: strings.HasPrefix(settings.BaseURL, "https://"),
		})

		srv := &http.Server{
			Addr:              net.JoinHostPort(settings.Host, strconv.Itoa(settings.Port)),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		if settings.Watch && !settings.Dev {
			go func() {
				if err := s.Watch(ctx, site.DefaultDebounce); err != nil {
					logger.Error(ctx, err, "watcher stopped")
				}
			}()
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info(ctx, "starting server", "addr", srv.Addr, "dev", settings.Dev, "watch", settings.Watch)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return errors.Wrap(err, "server failed")
		case <-ctx.Done():
		}

		logger.Info(context.Background(), "shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "server forced to shutdown")
		}
		logger.Info(context.Background(), "server exited")
		return nil
	},
}

func siteOptions() site.Options {
	return site.Options{
		ContentDir: settings.ContentDir,
		ThemesDir:  settings.ThemesDir,
		LocalesDir: settings.LocalesDir,
		Dev:        settings.Dev,
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	flags := serveCmd.Flags()
	flags.String("host", "", "interface to listen on")
	flags.IntP("port", "p", 3000, "Port to run the server on")
	flags.Bool("dev", false, "rebuild content, themes and locales on every request")
	flags.Bool("watch", false, "reload when files change on disk")
	flags.String("secret", "", "key signing the unlock cookie (at least 32 bytes)")

	_ = v.BindPFlag("host", flags.Lookup("host"))
	_ = v.BindPFlag("port", flags.Lookup("port"))
	_ = v.BindPFlag("dev", flags.Lookup("dev"))
	_ = v.BindPFlag("watch", flags.Lookup("watch"))
	_ = v.BindPFlag("secret", flags.Lookup("secret"))
}

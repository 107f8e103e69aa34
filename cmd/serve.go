package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/RATIU5/zaggonaut/internal/logger"
	"github.com/RATIU5/zaggonaut/internal/site"
)

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site locally and rebuilds on change",
	Long: `The serve command builds the site, serves the output directory on a local
port and watches src, the layouts and the static directory, rebuilding
after changes settle.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		rebuild := func() error {
			b, _, err := newBuilder()
			if err != nil {
				return err
			}
			_, err = b.Build(ctx)
			return err
		}
		if err := rebuild(); err != nil {
			return fmt.Errorf("initial build failed: %w", err)
		}

		roots := []string{
			filepath.Join(appConfig.ContentDir, "src"),
			appConfig.LayoutsDir,
			appConfig.StaticDir,
		}
		go func() {
			err := site.Watch(ctx, roots, site.DefaultDebounce, func() {
				log.Info("rebuilding site")
				if err := rebuild(); err != nil {
					log.Error("rebuild failed", logger.Err(err))
					return
				}
				log.Info("site rebuilt")
			}, log)
			if err != nil {
				log.Error("watcher stopped", logger.Err(err))
			}
		}()

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", serverPort),
			Handler:           site.DevHandler(appConfig.OutputDir),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		log.Info("serving site",
			logger.String("dir", appConfig.OutputDir),
			logger.String("url", fmt.Sprintf("http://localhost:%d", serverPort)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("start HTTP server: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 4321, "Port to serve the site on")
	rootCmd.AddCommand(serveCmd)
}

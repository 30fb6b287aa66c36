package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/riverfjs/mdview-go"
	"github.com/riverfjs/mdview-go/internal/server"
	"github.com/riverfjs/mdview-go/internal/settings"
	"github.com/riverfjs/mdview-go/internal/workspace"
)

var serveWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve [files...]",
	Short: "Start the preview HTTP server",
	Long: `Start an HTTP server exposing the preview API:

  POST /api/render          {"markdown": "..."} -> html, headings, codeBlocks
  GET  /api/files           list the workspace
  POST /api/files           multipart upload (field "file")
  GET  /api/files/{id}/preview
  GET  /theme.css           stylesheet of the configured theme
  GET  /api/settings        user preferences
  POST /api/settings/reset

Markdown files given as arguments are loaded into the workspace.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.GetViper()

		files := workspace.New()
		for _, name := range args {
			f, err := os.Open(name)
			if err != nil {
				mdview.Logger.Printf("skip %s: %v", name, err)
				continue
			}
			if _, err := files.Upload(name, f); err != nil {
				mdview.Logger.Printf("skip %s: %v", name, err)
			}
			f.Close()
		}

		store := settings.NewStore()
		store.Load(v)

		srv := server.New(files, store, mdview.Logger, renderOptions(v)...)

		if serveWatch && v.ConfigFileUsed() != "" {
			v.OnConfigChange(func(e fsnotify.Event) {
				if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
					return
				}
				mdview.Logger.Printf("config changed: %s", e.Name)
				store.Load(v)
				srv.SetOptions(renderOptions(v)...)
			})
			v.WatchConfig()
		}

		addr := v.GetString("addr")
		httpServer := &http.Server{
			Addr:              addr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			mdview.Logger.Printf("listening on http://%s", addr)
			errCh <- httpServer.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default 127.0.0.1:4173)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "reload settings when the config file changes")
	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
}

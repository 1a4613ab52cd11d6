package cli

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"kanban-cli/internal/web"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP (JSON intents + Prometheus metrics)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(addr) == "" {
				addr = app.cfg.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return withBoard(cmd, app, func(b *board) error {
				srv, err := web.NewServer(web.ServerConfig{
					Addr:   addr,
					Logger: app.log,
					Events: b.gw,
				}, b.sess)
				if err != nil {
					return err
				}
				app.log.Info("serving board", zap.String("addr", srv.Addr()), zap.String("backend", app.cfg.Storage.Backend))
				return srv.ListenAndServe(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", envOr("KANBAN_ADDR", ""), "Listen address (default: server.addr from config)")
	return cmd
}

/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/valpere/promptlight/internal/bridge"
	"github.com/valpere/promptlight/internal/refine"
	"github.com/valpere/promptlight/internal/visibility"
)

var (
	serveAddr         string
	serveOrigins      string
	serveReplyTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local bridge for the desktop window",
	Long: `Start the HTTP and websocket bridge the desktop host connects to.

The host opens /ws and receives show, hide, center, focus and is_visible
commands. Hotkey and focus events can be sent either over the websocket or
to /api/events/*. The UI calls /api/refine_prompt, /api/show_window and
/api/hide_window.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()

		host := bridge.NewHostWindow(lg.With().Str("component", "host").Logger(), serveReplyTimeout)
		ctl := visibility.New(host, visibility.WithLogger(lg.With().Str("component", "visibility").Logger()))

		srv := bridge.New(bridge.Deps{
			Refiner:    refine.NewDispatcher(refine.WithLogger(lg)),
			Controller: ctl,
			Host:       host,
			Library:    newLibrary(db),
			History:    db,
			Logger:     lg.With().Str("component", "bridge").Logger(),
		}, bridge.Config{AllowOrigins: serveOrigins})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			ctl.Run(gctx)
			return nil
		})
		g.Go(func() error {
			return srv.Listen(serveAddr)
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		printErr(cmd, "Bridge listening on http://%s (hotkey %s)\n", serveAddr, cfg.Hotkey)
		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("bridge stopped: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:7777", "Listen address")
	serveCmd.Flags().StringVar(&serveOrigins, "origins", "", "Allowed CORS origins (comma-separated)")
	serveCmd.Flags().DurationVar(&serveReplyTimeout, "reply-timeout", 2*time.Second, "How long to wait for the host to answer is_visible")
}

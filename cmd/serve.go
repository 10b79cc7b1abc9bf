package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/desertthunder/jukebox/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the browser jukebox until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := r.newApp()
	if err != nil {
		return fmt.Errorf("failed to build jukebox: %w", err)
	}
	defer a.Close()

	ready := make(chan string, 1)
	go func() {
		select {
		case bound := <-ready:
			r.announce("http://"+bound+"/", cmd.Bool("open"))
		case <-ctx.Done():
		}
	}()

	return server.Serve(ctx, r.listenAddr(cmd), a.handler, r.logger, ready)
}

// announce prints the page address and optionally opens it. Failures are logged, never fatal.
func (r *Runner) announce(url string, open bool) {
	if err := r.writePlain("Jukebox running at %s\n", url); err != nil {
		r.logger.Warn("failed to print address", "url", url, "error", err)
	}
	if open {
		if err := r.openBrowser(url); err != nil {
			r.logger.Warn("failed to open browser", "url", url, "error", err)
		}
	}
}

// listenAddr applies --host and --port over the configured server address.
func (r *Runner) listenAddr(cmd *cli.Command) string {
	host := r.config.Server.Host
	if h := cmd.String("host"); h != "" {
		host = h
	}

	port := r.config.Server.Port
	if p := cmd.Int("port"); p > 0 {
		port = p
	}

	return net.JoinHostPort(host, strconv.Itoa(port))
}

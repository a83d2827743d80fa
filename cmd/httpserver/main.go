package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nhdewitt/orders-server/internal/config"
	"github.com/nhdewitt/orders-server/internal/handler"
	"github.com/nhdewitt/orders-server/internal/server"
	"github.com/urfave/cli"
)

const defaultPort = 42069

func main() {
	app := cli.NewApp()
	app.Name = "httpserver"
	app.Usage = "Serve static pages and the shipping orders API"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:   "port",
			Value:  defaultPort,
			Usage:  "TCP port to listen on",
			EnvVar: "PORT",
		},
		cli.StringFlag{
			Name:   "public-path",
			Value:  config.DefaultPublicPath,
			Usage:  "Directory holding index.html, health.html, 404.html and other static files",
			EnvVar: config.PublicPathEnv,
		},
		cli.StringFlag{
			Name:   "data-path",
			Value:  config.DefaultDataPath,
			Usage:  "Directory holding orders.json",
			EnvVar: config.DataPathEnv,
		},
		cli.StringFlag{
			Name:   "metrics-addr",
			Usage:  "Address for the Prometheus /metrics listener, disabled when empty",
			EnvVar: "METRICS_ADDR",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(c *cli.Context) error {
	cfg := config.Config{
		PublicPath: c.String("public-path"),
		DataPath:   c.String("data-path"),
	}
	port := c.Int("port")

	srv, err := server.Serve(port, handler.NewSet(cfg))
	if err != nil {
		return err
	}
	defer srv.Close()
	log.Printf("Server started on port %d (public=%s, data=%s)", port, cfg.PublicPath, cfg.DataPath)

	if addr := c.String("metrics-addr"); addr != "" {
		go func() {
			log.Printf("Metrics listening on %s", addr)
			if err := http.ListenAndServe(addr, server.MetricsHandler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Metrics listener stopped: %v", err)
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Server gracefully stopped")
	return nil
}

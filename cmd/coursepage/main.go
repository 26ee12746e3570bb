package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	coursepage "github.com/alnah/go-coursepage"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags := pflag.NewFlagSet("coursepage", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path to YAML config file")
	listen := flags.String("listen", "", "HTTP listen address (overrides config)")
	model := flags.String("model", "", "hosted model identifier (overrides config)")
	pandoc := flags.String("pandoc", "", "pandoc executable name or path (overrides config)")
	timeout := flags.Int("timeout", 0, "conversion timeout in seconds (overrides config)")
	showVersion := flags.Bool("version", false, "print version and exit")

	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println("coursepage", Version)
		return
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg, *listen, *model, *pandoc, *timeout)

	svc := coursepage.New(
		coursepage.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second),
		coursepage.WithModel(cfg.Model),
		coursepage.WithPandocBinary(cfg.PandocBinary),
	)
	server := NewServer(svc, cfg.PandocBinary, cfg.MaxUploadMiB)

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	color.New(color.FgGreen, color.Bold).Printf("coursepage %s listening on %s\n", Version, cfg.Listen)
	log.Printf("model=%s pandoc=%s timeout=%ds", cfg.Model, cfg.PandocBinary, cfg.TimeoutSeconds)

	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}

// applyFlagOverrides lets explicit flags win over the loaded config.
func applyFlagOverrides(cfg *Config, listen, model, pandoc string, timeout int) {
	if listen != "" {
		cfg.Listen = listen
	}
	if model != "" {
		cfg.Model = model
	}
	if pandoc != "" {
		cfg.PandocBinary = pandoc
	}
	if timeout > 0 {
		cfg.TimeoutSeconds = timeout
	}
}

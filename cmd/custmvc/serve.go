package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"unicode/utf8"

	"github.com/acksell/custmvc/controllers"
	"github.com/acksell/custmvc/web"
)

func runServe(args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", cfg.Port, "HTTP port to listen on")
	storage := registerStorageFlags(fs, cfg)
	fs.Usage = func() {
		fmt.Println(`custmvc serve - Start the web server

Usage:
  custmvc serve [flags]

Flags:`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts, err := storage.options(cfg)
	if err != nil {
		return err
	}
	logger := log.Default()
	opts.logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, opts)
	if err != nil {
		return err
	}
	defer b.Close()

	server := web.NewServer(web.ServerConfig{Port: *port, Logger: logger}, func() controllers.DataContext {
		return b.newContext()
	})

	printBanner(*port, b.description)
	return server.Run(ctx)
}

func printBanner(port int, storage string) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════════════╗")
	fmt.Println("║                    Customer Management                       ║")
	fmt.Println("╠══════════════════════════════════════════════════════════════╣")
	fmt.Printf("║  URL: http://localhost:%-38d║\n", port)
	fmt.Printf("║  %-60s║\n", truncate(storage, 60))
	fmt.Println("╠══════════════════════════════════════════════════════════════╣")
	fmt.Println("║  Press Ctrl+C to stop                                        ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Println()
}

// truncate shortens s to maxLen runes, marking the cut with "...".
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}

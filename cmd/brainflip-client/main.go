package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"brainflip/internal/userclient"
)

func main() {
	server := flag.String("server", "http://127.0.0.1:8080", "brainflip service base URL")
	timeout := flag.Duration("timeout", 5*time.Second, "HTTP timeout")
	revealDelay := flag.Duration("reveal-delay", time.Second, "pause after answering before the next question")
	flag.Parse()

	err := userclient.Run(context.Background(), os.Stdin, os.Stdout, userclient.Config{
		ServerURL:   *server,
		HTTPTimeout: *timeout,
		RevealDelay: *revealDelay,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

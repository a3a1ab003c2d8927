package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/adfharrison1/go-sortdex/pkg/server"
	"github.com/adfharrison1/go-sortdex/pkg/storage"
)

// indexFlags collects repeated -index values
type indexFlags []string

func (f *indexFlags) String() string {
	return strings.Join(*f, ",")
}

func (f *indexFlags) Set(value string) error {
	if _, _, err := server.ParseIndexSpec(value); err != nil {
		return err
	}
	*f = append(*f, value)
	return nil
}

func main() {
	// Command line flags
	var indexes indexFlags
	var (
		port        = flag.String("port", "8080", "Server port")
		withMetrics = flag.Bool("metrics", false, "Expose Prometheus metrics on /metrics")
		strict      = flag.Bool("strict-collections", false, "Reject inserts into collections that were not created first")
		showHelp    = flag.Bool("help", false, "Show help message")
	)
	flag.Var(&indexes, "index", "Index to create at startup as collection:path (repeatable)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ngo-sortdex is an in-memory, position-addressed document store with secondary indexes.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                        # Start with defaults\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090 -metrics                   # Custom port with metrics\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -index users:age -index users:address.city\n", os.Args[0])
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Build storage options based on flags
	var storageOptions []storage.StorageOption
	if *strict {
		storageOptions = append(storageOptions, storage.WithAutoCreate(false))
		log.Printf("INFO: Collections must be created before inserting")
	}

	srv, err := server.NewServer(server.Config{
		Metrics: *withMetrics,
		Indexes: indexes,
	}, storageOptions...)
	if err != nil {
		log.Fatalf("ERROR: Could not configure server: %v", err)
	}
	for _, spec := range indexes {
		log.Printf("INFO: Startup index %s", spec)
	}

	// Create HTTP server
	httpServer := &http.Server{
		Addr:    ":" + *port,
		Handler: srv.Router(),
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting go-sortdex server on :%s", *port)
		log.Printf("API endpoints available at http://localhost:%s", *port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

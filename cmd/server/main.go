/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the payroll calculator server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize SQLite store
  3. Seed the parameter catalog on first run
  4. Create API handler and router
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: nomina.db)
           Use ":memory:" for an in-memory database

FIRST RUN:
  When the database has no working parameter set, the shipped roster
  (factory.Seed) is saved and activated so the calculator works out of
  the box.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/nomina.db"

  # Run on different port
  ./server -port=3000

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/innovareegautomation-dev/Nomina-Innovart/api"
	"github.com/innovareegautomation-dev/Nomina-Innovart/factory"
	"github.com/innovareegautomation-dev/Nomina-Innovart/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "nomina.db", "SQLite database path")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// First run: ship with the seed roster active
	if err := seedIfEmpty(context.Background(), store); err != nil {
		log.Fatalf("Failed to seed parameter catalog: %v", err)
	}

	// Router
	router := api.NewRouter(api.NewHandler(store))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Nomina server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// seedIfEmpty saves and activates the shipped roster when no working
// set exists yet.
func seedIfEmpty(ctx context.Context, store *sqlite.Store) error {
	_, _, err := store.LoadCatalog(ctx, sqlite.SetWorking)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sqlite.ErrCatalogNotFound) {
		return err
	}

	log.Println("No parameter catalog found, loading seed roster")
	if err := store.SaveCatalog(ctx, sqlite.SetWorking, factory.Seed()); err != nil {
		return err
	}
	_, err = store.Activate(ctx)
	return err
}

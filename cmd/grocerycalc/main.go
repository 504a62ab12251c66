package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmagsino/grocery-app/internal/logging"
	"github.com/lmagsino/grocery-app/internal/server"
)

func main() {
	port := os.Getenv("GROCERYCALC_PORT")
	if port == "" {
		port = "8080"
	}

	logger := logging.Setup(os.Getenv("GROCERYCALC_LOG_LEVEL"))

	// Empty means the public Open Food Facts endpoint; override for tests
	// or a local mirror.
	lookupURL := os.Getenv("GROCERYCALC_LOOKUP_URL")

	srv := server.New(lookupURL, logger)

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("GroceryCalc running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}

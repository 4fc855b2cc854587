package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/otpware/dispatch/internal/config"
	"github.com/otpware/dispatch/internal/gateway"
	"github.com/otpware/dispatch/internal/server"
)

func main() {
	cfg := config.New()

	if cfg.Twilio.AccountSID == "" || cfg.Twilio.AuthToken == "" {
		log.Fatal("[Gateway] TWILIO_ACCOUNT_SID and TWILIO_AUTH_TOKEN must be set")
	}
	// Never print the credentials themselves.
	log.Println("[Gateway] Provider credentials loaded.")

	proxy := gateway.NewProxy(cfg.Twilio.APIBaseURL, cfg.Twilio.AccountSID, cfg.Twilio.AuthToken)

	addr := fmt.Sprintf("%s:%s", cfg.Gateway.Host, cfg.Gateway.Port)
	srv := server.NewWithHandler(addr, proxy)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("[Gateway] Relay gateway listening on %s", addr)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[Gateway] HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[Gateway] Shutdown signal received...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Gateway] Graceful shutdown failed: %v", err)
	} else {
		log.Println("[Gateway] Stopped.")
	}
}

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

	"github.com/otpware/dispatch/internal/cache"
	"github.com/otpware/dispatch/internal/cache/redis"
	"github.com/otpware/dispatch/internal/config"
	"github.com/otpware/dispatch/internal/db/gormdb"
	"github.com/otpware/dispatch/internal/domain/contact"
	"github.com/otpware/dispatch/internal/domain/dispatch"
	"github.com/otpware/dispatch/internal/handler"
	"github.com/otpware/dispatch/internal/phone"
	"github.com/otpware/dispatch/internal/poller"
	contactgorm "github.com/otpware/dispatch/internal/repository/gorm/contact"
	dispatchgorm "github.com/otpware/dispatch/internal/repository/gorm/dispatch"
	contactmem "github.com/otpware/dispatch/internal/repository/memory/contact"
	dispatchmem "github.com/otpware/dispatch/internal/repository/memory/dispatch"
	routes "github.com/otpware/dispatch/internal/router"
	"github.com/otpware/dispatch/internal/server"
	"github.com/otpware/dispatch/internal/service"
	"github.com/otpware/dispatch/internal/sms"
	"github.com/otpware/dispatch/internal/verify"
)

func main() {
	// Base context for the whole application lifetime.
	rootCtx := context.Background()

	// Load configuration from environment/.env.
	cfg := config.New()

	// Init cache. Redis only backs best-effort mirrors here, so an
	// unreachable Redis degrades instead of aborting startup.
	var warmCache cache.Cache
	redisClient := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Ping(rootCtx); err != nil {
		log.Printf("[Main] Redis unavailable, continuing without warm cache: %v", err)
	} else {
		warmCache = redisClient
	}

	// Init persistence.
	var (
		store       dispatch.Store
		contactRepo contact.Repository
	)
	switch cfg.Store.Driver {
	case "memory":
		log.Println("[Main] Using in-memory store (STORE_DRIVER=memory).")
		store = dispatchmem.NewStore()
		contactRepo = seedMemoryContacts(rootCtx)
	default:
		db, err := gormdb.New(cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("failed to connect db: %v", err)
		}
		store = dispatchgorm.NewStore(db)
		contactRepo = contactgorm.NewRepository(db)
	}

	// Init relay gateway client.
	smsClient := sms.NewGatewayClient(cfg.Gateway.URL, cfg.SMS.SendTimeout)
	if err := smsClient.Health(rootCtx); err != nil {
		log.Printf("[Main] Relay gateway not reachable yet: %v", err)
	}

	// Init verified-number cache and its background poller.
	lookup := verify.NewTwilioLookup(cfg.Twilio.APIBaseURL, cfg.Twilio.AccountSID, cfg.Twilio.AuthToken)
	verifiedCache := verify.NewCache(lookup, warmCache, cfg.Verify.FreshnessWindow)
	verifiedCache.WarmStart(rootCtx)

	pol := poller.NewPollerService(verifiedCache, cfg.Verify.FreshnessWindow, cfg.Verify.RefreshTimeout)

	// Init services.
	dispatchSvc := service.NewDispatchService(
		store,
		smsClient,
		verifiedCache,
		phone.NewNormalizer(cfg.Phone.CountryCode),
		warmCache,
		cfg.Twilio.FromNumber,
	)
	contactSvc := service.NewContactService(contactRepo)

	// HTTP dependencies & server wiring.

	// Handlers
	homeHandler := handler.NewHomeHandler()
	messageHandler := handler.NewMessageHandler(dispatchSvc, contactSvc, pol)
	contactHandler := handler.NewContactHandler(contactSvc)

	// Init route dependencies
	deps := routes.AppDeps{
		Home:    homeHandler,
		Message: messageHandler,
		Contact: contactHandler,
	}

	// Init Server
	addr := fmt.Sprintf("%s:%s", cfg.API.Host, cfg.API.Port)
	srv := server.New(addr, deps)

	// Create a context that is cancelled on SIGINT/SIGTERM (Ctrl+C, docker stop etc.).
	ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start the HTTP server in a separate goroutine so we can listen for signals.
	go func() {
		log.Printf("HTTP server listening on %s", addr)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Start the background verification poller after everything is wired up.
	if err := pol.Start(); err != nil {
		log.Fatalf("Verification poller error: %v", err)
	}
	log.Println("[Main] Verification poller started.")

	// Block until we receive a shutdown signal.
	<-ctx.Done()
	log.Println("[Main] Shutdown signal received, starting graceful shutdown...")

	// Give components some time to shut down cleanly.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop the poller (waits for an in-flight refresh to finish or timeout).
	log.Println("[Main] Stopping verification poller...")
	if err := pol.Stop(); err != nil {
		log.Printf("[Main] Verification poller stop failed: %v", err)
	} else {
		log.Println("[Main] Verification poller stopped.")
	}

	// Gracefully shut down the HTTP server.
	log.Println("[Main] Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Main] HTTP server graceful shutdown failed: %v", err)
	} else {
		log.Println("[Main] HTTP server stopped.")
	}

	log.Println("[Main] Shutdown complete.")
}

// seedMemoryContacts gives the memory driver a browsable contact list so
// the API is usable without a database.
func seedMemoryContacts(ctx context.Context) contact.Repository {
	repo := contactmem.NewRepository()

	seeds := []struct{ first, last, number string }{
		{"Asha", "Rao", "09876543210"},
		{"Dev", "Sharma", "09812345678"},
		{"Meera", "Iyer", "+919998887776"},
	}
	for _, s := range seeds {
		c, err := contact.New(s.first, s.last, s.number)
		if err != nil {
			continue
		}
		if err := repo.Save(ctx, c); err != nil {
			log.Printf("[Main] Failed to seed contact %s: %v", s.first, err)
		}
	}

	return repo
}

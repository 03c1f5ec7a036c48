package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storefrontlab/cart-widget-backend/internal/api"
	"github.com/storefrontlab/cart-widget-backend/internal/commerce"
	"github.com/storefrontlab/cart-widget-backend/internal/commerce/memory"
	"github.com/storefrontlab/cart-widget-backend/internal/fragments"
	"github.com/storefrontlab/cart-widget-backend/internal/infrastructure/config"
	"github.com/storefrontlab/cart-widget-backend/internal/infrastructure/logging"
	"github.com/storefrontlab/cart-widget-backend/internal/recommend"
	"github.com/storefrontlab/cart-widget-backend/internal/session"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	demo := flag.Bool("demo", false, "seed the in-memory engine with demo catalog data")
	flag.Parse()

	cfg, err := config.LoadOrEnvWithPath(*configPath)
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Observability.Logging)

	// The in-memory engine stands in for the real commerce engine; a
	// production deployment injects a bridge implementing the same
	// interfaces.
	engine := memory.NewEngine(cfg.Engine.StoreURL)
	if *demo {
		seedDemoCatalog(engine)
		logger.Info("seeded demo catalog")
	}

	issuer, err := session.NewTokenIssuer(cfg.Security.TokenSigningKey,
		time.Duration(cfg.Security.TokenTTLMinutes)*time.Minute)
	if err != nil {
		logger.Error("invalid token configuration", "error", err)
		os.Exit(1)
	}

	rec := recommend.NewClient(recommend.Config{
		BaseURL:   cfg.Recommend.BaseURL,
		APIKey:    cfg.Recommend.APIKey,
		APISecret: cfg.Recommend.APISecret,
		Timeout:   time.Duration(cfg.Recommend.TimeoutSeconds) * time.Second,
	}, logger)

	server := api.NewServer(api.Config{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		TopLimit:       cfg.Recommend.TopLimit,
		Copy: fragments.Copy{
			EmptyCartMessage: cfg.Widget.EmptyCartMessage,
			RemoveItemLabel:  cfg.Widget.RemoveItemLabel,
			QuantityLabel:    cfg.Widget.QuantityLabel,
		},
	}, engine, rec, issuer, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}

// seedDemoCatalog loads a handful of products and taxonomies so the
// widget has something to render during local development.
func seedDemoCatalog(engine *memory.Engine) {
	engine.RegisterTaxonomy("pa_color", "Color")
	engine.AddTerm("pa_color", "deep-blue", "Deep Blue")
	engine.AddTerm("pa_color", "forest-green", "Forest Green")
	engine.RegisterTaxonomy("pa_size", "Size")
	engine.AddTerm("pa_size", "m", "Medium")
	engine.AddTerm("pa_size", "l", "Large")

	engine.AddProduct("tee-classic", commerce.Product{
		Name:         "Classic Tee",
		UnitPrice:    19.90,
		PriceDisplay: "19.90",
		URL:          "/product/tee-classic",
	})
	engine.AddProduct("mug-enamel", commerce.Product{
		Name:         "Enamel Mug",
		UnitPrice:    12.50,
		PriceDisplay: "12.50",
		URL:          "/product/mug-enamel",
	})
}

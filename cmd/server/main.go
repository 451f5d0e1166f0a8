package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/site"
)

func main() {
	cfg := config.Load()

	if cfg.ContactEndpoint == "" {
		log.Printf("[SITE] CONTACT_ENDPOINT not set - contact form submissions will be refused")
	}

	srv := site.NewServer(site.DefaultCatalog(), site.NewFormRelay(cfg.ContactEndpoint))
	r := srv.Router(cfg.WebDir)

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	log.Printf("[SITE] serving %s on :%s (gin %s)", cfg.WebDir, cfg.Port, gin.Version)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("[SITE] %v", err)
	}
}

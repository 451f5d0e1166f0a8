package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/iburimskiy/particle-field/internal/field"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512
	TargetFPS    = 60

	// Page
	BlogInitialVisible = 3
	BlogMoreText       = "View More Blogs"
	BlogLessText       = "Back to previous"
)

type Config struct {
	// Particle field
	ParticleCount   int
	ConnectDistance float64
	InfluenceRadius float64
	MaxForce        float64
	LineWidth       float64
	ParticleColor   field.RGBA
	LineColor       field.RGBA
	Background      field.RGBA

	// Window
	WindowWidth  int
	WindowHeight int
	TargetFPS    int

	// Site
	Port            string
	WebDir          string
	ContactEndpoint string
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err == nil {
		log.Println("[CONFIG] loaded .env")
	}

	return &Config{
		ParticleCount:   getEnvInt("PARTICLE_COUNT", field.DefaultCount),
		ConnectDistance: getEnvFloat("CONNECT_DISTANCE", field.DefaultConnectDistance),
		InfluenceRadius: getEnvFloat("INFLUENCE_RADIUS", field.DefaultInfluenceRadius),
		MaxForce:        getEnvFloat("MAX_FORCE", field.DefaultMaxForce),
		LineWidth:       getEnvFloat("LINE_WIDTH", field.DefaultLineWidth),
		ParticleColor:   getEnvColor("PARTICLE_COLOR", field.DefaultParticleColor),
		LineColor:       getEnvColor("LINE_COLOR", field.DefaultLineColor),
		Background:      getEnvColor("BACKGROUND_COLOR", field.RGBA{R: 10, G: 12, B: 20, A: 1}),

		WindowWidth:  getEnvInt("WINDOW_WIDTH", WindowWidth),
		WindowHeight: getEnvInt("WINDOW_HEIGHT", WindowHeight),
		TargetFPS:    getEnvInt("TARGET_FPS", TargetFPS),

		Port:            getEnv("APP_PORT", "8080"),
		WebDir:          getEnv("WEB_DIR", "web"),
		ContactEndpoint: getEnv("CONTACT_ENDPOINT", ""),
	}
}

// FieldOptions maps the particle settings onto simulator options.
func (c *Config) FieldOptions() field.Options {
	particle, line := c.ParticleColor, c.LineColor
	return field.Options{
		Count:           c.ParticleCount,
		ConnectDistance: c.ConnectDistance,
		InfluenceRadius: c.InfluenceRadius,
		MaxForce:        c.MaxForce,
		LineWidth:       c.LineWidth,
		ParticleColor:   &particle,
		LineColor:       &line,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
		log.Printf("[CONFIG] invalid %s=%q, using %d", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
		log.Printf("[CONFIG] invalid %s=%q, using %v", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvColor(key string, defaultValue field.RGBA) field.RGBA {
	if value := os.Getenv(key); value != "" {
		c, err := field.ParseColor(value)
		if err == nil {
			return c
		}
		log.Printf("[CONFIG] %s: %v, using %s", key, err, defaultValue)
	}
	return defaultValue
}

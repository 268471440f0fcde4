package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Database *Database
	HTTP     *HTTP
	Redis    *Redis
	WhatsApp *WhatsApp
	Uploads  *Uploads
	App      *App
}

const AppModeProduction = "PROD"
const AppModeDevelop = "DEV"

type App struct {
	LogLevel string `env:"LOG_LEVEL"`
	Mode     string `env:"APP_MODE"`
}

type Database struct {
	DSN string `env:"DATABASE_URI"`
}

type HTTP struct {
	HostString string `env:"RUN_ADDRESS"`
}

type Redis struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	RateTTL  time.Duration `env:"RATE_CACHE_TTL" envDefault:"10m"`
}

type WhatsApp struct {
	APIURL       string        `env:"WHATSAPP_API_URL"`
	Token        string        `env:"WHATSAPP_TOKEN"`
	SenderID     string        `env:"WHATSAPP_SENDER_ID"`
	MessageDelay time.Duration `env:"WHATSAPP_MESSAGE_DELAY" envDefault:"5s"`
	MaxAttempts  int           `env:"WHATSAPP_MAX_ATTEMPTS" envDefault:"3"`
}

type Uploads struct {
	CloudinaryURL string `env:"CLOUDINARY_URL"`
}

func NewConfig() (*Config, error) {
	// Local setups keep settings in .env; absence is fine.
	_ = godotenv.Load()

	var db Database
	var http HTTP
	var redis Redis
	var wa WhatsApp
	var uploads Uploads
	var app App

	flag.StringVar(&db.DSN, "d", "", "Database string")
	flag.StringVar(&http.HostString, "a", `localhost:8080`, "HTTP server endpoint")
	flag.StringVar(&app.LogLevel, "l", `error`, "Log level")
	flag.StringVar(&app.Mode, "m", `DEV`, "PROD / DEV")
	flag.Parse()

	err := env.Parse(&db)
	if err != nil {
		return nil, fmt.Errorf("error parsing env database config: %w", err)
	}
	err = env.Parse(&http)
	if err != nil {
		return nil, fmt.Errorf("error parsing http config: %w", err)
	}
	err = env.Parse(&redis)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis config: %w", err)
	}
	err = env.Parse(&wa)
	if err != nil {
		return nil, fmt.Errorf("error parsing whatsapp config: %w", err)
	}
	err = env.Parse(&uploads)
	if err != nil {
		return nil, fmt.Errorf("error parsing uploads config: %w", err)
	}
	err = env.Parse(&app)
	if err != nil {
		return nil, fmt.Errorf("error parsing app config: %w", err)
	}

	config := Config{
		Database: &db,
		HTTP:     &http,
		Redis:    &redis,
		WhatsApp: &wa,
		Uploads:  &uploads,
		App:      &app,
	}

	return &config, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment   string
	IsProduction  bool
	IsDevelopment bool

	// HTTP storefront
	HTTPAddr          string
	StorefrontBaseURL string

	// Product feed
	FeedFile              string
	FeedPage              string
	FeedURL               string
	FeedSelector          string
	CatalogRefreshMinutes int

	// MongoDB feed source
	MongoDBURI        string
	MongoDBDatabase   string
	MongoDBCollection string

	// Catalog presentation
	PageSize               int
	PlaceholderImage       string
	NewBadgeDays           int
	PreferredFilterOrder   []string
	HiddenFilterCategories []string
	CollectionsFile        string

	// Discord bot
	DiscordToken  string
	CommandPrefix string

	// Logging
	LogDir string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		StorefrontBaseURL: strings.TrimRight(getEnv("STOREFRONT_BASE_URL", "http://localhost:8080"), "/"),
		FeedFile:          getEnv("FEED_FILE", ""),
		FeedPage:          getEnv("FEED_PAGE", ""),
		FeedURL:           getEnv("FEED_URL", ""),
		FeedSelector:      getEnv("FEED_SELECTOR", "script[data-product-feed]"),
		MongoDBURI:        getEnv("MONGODB_URI", ""),
		MongoDBDatabase:   getEnv("MONGODB_DATABASE", "shopfront"),
		MongoDBCollection: getEnv("MONGODB_COLLECTION", "products"),
		PlaceholderImage:  getEnv("PLACEHOLDER_IMAGE", "/assets/placeholder.svg"),
		CollectionsFile:   getEnv("COLLECTIONS_FILE", ""),
		DiscordToken:      getEnv("DISCORD_TOKEN", ""),
		CommandPrefix:     getEnv("COMMAND_PREFIX", "!"),
		LogDir:            getEnv("LOG_DIR", ""),
		PreferredFilterOrder: getList("PREFERRED_FILTER_ORDER",
			"Industry,Protection,Category,Material,Season,Gender,Size,Color"),
		HiddenFilterCategories: getList("HIDDEN_FILTER_CATEGORIES", "Other"),
	}

	// Derived properties
	cfg.IsProduction = cfg.Environment == "production"
	cfg.IsDevelopment = !cfg.IsProduction

	// Parse numeric values, falling back to defaults
	cfg.PageSize = getInt("PAGE_SIZE", 24)
	cfg.NewBadgeDays = getInt("NEW_BADGE_DAYS", 30)
	cfg.CatalogRefreshMinutes = getInt("CATALOG_REFRESH_MINUTES", 0)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks settings shared by every binary
func (c *Config) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize)
	}
	if c.NewBadgeDays <= 0 {
		return fmt.Errorf("NEW_BADGE_DAYS must be positive, got %d", c.NewBadgeDays)
	}
	return nil
}

// ValidateBot checks the settings the Discord bot needs
func (c *Config) ValidateBot() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN environment variable is required")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getInt parses an integer environment variable, falling back on bad input
func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return n
}

// getList splits a comma separated environment variable
func getList(key, defaultValue string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

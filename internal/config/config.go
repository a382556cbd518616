package config

import (
	"errors"
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port          string
	DBDSN         string
	OrdersFile    string
	CatalogFile   string
	LogFile       string
	MaxOrderItems int
	BotToken      string
	OperatorToken string
}

// Load reads configuration from the environment. BOT_TOKEN is the one
// required secret: without it the chat transport cannot authenticate and
// the process must not start serving.
func Load() (Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "printforge.db" // sqlite file in project root
	}
	orders := os.Getenv("ORDERS_FILE")
	if orders == "" {
		orders = "orders.csv"
	}
	maxItems := 10
	if v := os.Getenv("MAX_ORDER_ITEMS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Config{}, errors.New("MAX_ORDER_ITEMS must be a positive integer")
		}
		maxItems = n
	}
	token := os.Getenv("BOT_TOKEN")
	if token == "" {
		return Config{}, errors.New("BOT_TOKEN is not set")
	}

	cfg := Config{
		Port:          port,
		DBDSN:         dsn,
		OrdersFile:    orders,
		CatalogFile:   os.Getenv("CATALOG_FILE"),
		LogFile:       os.Getenv("LOG_FILE"),
		MaxOrderItems: maxItems,
		BotToken:      token,
		OperatorToken: os.Getenv("OPERATOR_TOKEN"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s ORDERS_FILE=%s CATALOG_FILE=%s MAX_ORDER_ITEMS=%d operator_auth=%v",
		cfg.Port, cfg.DBDSN, cfg.OrdersFile, cfg.CatalogFile, cfg.MaxOrderItems, cfg.OperatorToken != "")
	return cfg, nil
}

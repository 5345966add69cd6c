package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	dompricing "example.com/storefront-checkout/internal/domain/pricing"
)

type Config struct {
	Port          string
	AllowedOrigin string
	MySQLDSN      string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthSecret string

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string
	PaymentCurrency   string

	FreeShippingThreshold decimal.Decimal
	FlatShippingCost      decimal.Decimal
	TaxRate               decimal.Decimal
	GiftWrapCost          decimal.Decimal

	RateLimitMax    int64
	RateLimitWindow time.Duration
	CouponCacheTTL  time.Duration
}

func Load() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	rateLimitWindowMinutes := getInt("RATE_LIMIT_WINDOW_MINUTES", 1)
	couponCacheTTLSeconds := getInt("COUPON_CACHE_TTL_SECONDS", 20)

	defaults := dompricing.DefaultConfig()

	return Config{
		Port:          getEnv("APP_PORT", "8080"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:pass@tcp(mysql:3306)/appdb?parseTime=true"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		AuthSecret: strings.TrimSpace(os.Getenv("AUTH_SECRET")),

		RazorpayKeyID:     strings.TrimSpace(os.Getenv("RAZORPAY_KEY_ID")),
		RazorpayKeySecret: strings.TrimSpace(os.Getenv("RAZORPAY_KEY_SECRET")),
		RazorpayBaseURL:   os.Getenv("RAZORPAY_BASE_URL"),
		PaymentCurrency:   getEnv("PAYMENT_CURRENCY", "INR"),

		FreeShippingThreshold: getDecimal("FREE_SHIPPING_THRESHOLD", defaults.FreeShippingThreshold),
		FlatShippingCost:      getDecimal("FLAT_SHIPPING_COST", defaults.FlatShippingCost),
		TaxRate:               getDecimal("TAX_RATE", defaults.TaxRate),
		GiftWrapCost:          getDecimal("GIFT_WRAP_COST", defaults.GiftWrapCost),

		RateLimitMax:    int64(getInt("RATE_LIMIT_MAX_REQUESTS", 30)),
		RateLimitWindow: time.Duration(rateLimitWindowMinutes) * time.Minute,
		CouponCacheTTL:  time.Duration(couponCacheTTLSeconds) * time.Second,
	}
}

func (c Config) Pricing() dompricing.Config {
	return dompricing.Config{
		FreeShippingThreshold: c.FreeShippingThreshold,
		FlatShippingCost:      c.FlatShippingCost,
		TaxRate:               c.TaxRate,
		GiftWrapCost:          c.GiftWrapCost,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func getDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return fallback
	}
	return v
}

package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"example.com/storefront-checkout/internal/config"
	infracache "example.com/storefront-checkout/internal/infra/cache"
	"example.com/storefront-checkout/internal/infra/persistence/mysql"
	"example.com/storefront-checkout/internal/infra/razorpay"
	"example.com/storefront-checkout/internal/infra/security"
	apihttp "example.com/storefront-checkout/internal/interface/http"
	checkoutuc "example.com/storefront-checkout/internal/usecase/checkout"
	couponuc "example.com/storefront-checkout/internal/usecase/coupon"
	paymentuc "example.com/storefront-checkout/internal/usecase/payment"
	promouc "example.com/storefront-checkout/internal/usecase/promotion"
	ratelimituc "example.com/storefront-checkout/internal/usecase/ratelimit"
)

func main() {
	cfg := config.Load()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("mysql open error: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("mysql ping error: %v", err)
	}

	var cache couponuc.Cache = infracache.NoopCouponCache{}
	if cfg.RedisAddr != "" {
		redisCache := infracache.NewRedisCouponCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("redis unavailable, coupon cache disabled: %v", err)
		} else {
			defer redisCache.Close()
			cache = redisCache
		}
	}

	couponRepo := mysql.NewCouponRepository(db)
	ruleRepo := mysql.NewRuleRepository(db)
	paymentRepo := mysql.NewPaymentRepository(db)
	rateLimitStore := mysql.NewRateLimitStore(db)

	provider := razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayBaseURL)
	signer := security.NewSigner(cfg.RazorpayKeySecret)

	couponSvc := couponuc.NewService(couponRepo, cache, cfg.CouponCacheTTL)
	promoSvc := promouc.NewService(ruleRepo)
	paymentSvc := paymentuc.NewService(provider, signer, paymentRepo, cfg.RazorpayKeyID, cfg.PaymentCurrency)
	limiterSvc := ratelimituc.NewService(rateLimitStore, cfg.RateLimitMax, cfg.RateLimitWindow)
	checkoutSvc := checkoutuc.NewService(couponSvc, promoSvc, paymentSvc, cfg.Pricing())

	api := apihttp.NewAPI(apihttp.Dependencies{
		CheckoutService:  checkoutSvc,
		CouponService:    couponSvc,
		PaymentService:   paymentSvc,
		RateLimitService: limiterSvc,
		TokenService:     security.NewJWTService(cfg.AuthSecret),
		AllowedOrigin:    cfg.AllowedOrigin,
	})

	log.Printf("listening on :%s ...", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, api.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

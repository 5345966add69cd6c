package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	dompayment "example.com/storefront-checkout/internal/domain/payment"
	domratelimit "example.com/storefront-checkout/internal/domain/ratelimit"
	authuc "example.com/storefront-checkout/internal/usecase/auth"
	checkoutuc "example.com/storefront-checkout/internal/usecase/checkout"
	couponuc "example.com/storefront-checkout/internal/usecase/coupon"
	paymentuc "example.com/storefront-checkout/internal/usecase/payment"
	ratelimituc "example.com/storefront-checkout/internal/usecase/ratelimit"
)

type API struct {
	checkoutSvc   *checkoutuc.Service
	couponSvc     *couponuc.Service
	paymentSvc    *paymentuc.Service
	limiter       *ratelimituc.Service
	tokenSvc      authuc.TokenService
	validator     *validator.Validate
	allowedOrigin string
}

type Dependencies struct {
	CheckoutService  *checkoutuc.Service
	CouponService    *couponuc.Service
	PaymentService   *paymentuc.Service
	RateLimitService *ratelimituc.Service
	TokenService     authuc.TokenService
	AllowedOrigin    string
}

func NewAPI(deps Dependencies) *API {
	return &API{
		checkoutSvc:   deps.CheckoutService,
		couponSvc:     deps.CouponService,
		paymentSvc:    deps.PaymentService,
		limiter:       deps.RateLimitService,
		tokenSvc:      deps.TokenService,
		validator:     validator.New(),
		allowedOrigin: deps.AllowedOrigin,
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(a.corsMiddleware)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(pr chi.Router) {
			pr.Use(a.optionalAuth)
			pr.Use(a.rateLimitMiddleware)

			pr.Post("/checkout/quote", a.handleQuote)
			pr.Post("/checkout/orders", a.handlePlaceOrder)
			pr.Post("/coupons/validate", a.handleValidateCoupon)
			pr.Post("/payments/orders", a.handleCreatePaymentOrder)
			pr.Post("/payments/verify", a.handleVerifyPayment)
		})

		r.With(a.optionalAuth).Post("/rate-limit/check", a.handleCheckRateLimit)
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dompayment.ErrInvalidAmount),
		errors.Is(err, dompayment.ErrMissingFields):
		respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, dompayment.ErrNotConfigured):
		respondError(w, http.StatusInternalServerError, err)
	case errors.Is(err, dompayment.ErrProvider):
		respondError(w, http.StatusBadGateway, err)
	case errors.Is(err, dompayment.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, err)
	case errors.Is(err, domratelimit.ErrLimitExceeded):
		respondError(w, http.StatusTooManyRequests, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}

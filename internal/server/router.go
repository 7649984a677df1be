package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"dekorhouse/internal/auth"
	cartctrl "dekorhouse/internal/cart/controller"
	orderctrl "dekorhouse/internal/order/controller"
	productctrl "dekorhouse/internal/product/controller"
)

func NewRouter(
	authMW *auth.Middleware,
	productCtrl *productctrl.Controller,
	cartCtrl *cartctrl.CartController,
	orderCtrl *orderctrl.OrderController,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/products/search", productCtrl.HandleSearchProducts)

		r.Group(func(r chi.Router) {
			r.Use(authMW.Authenticate)

			r.Get("/cart", cartCtrl.GetCart)
			r.Delete("/cart", cartCtrl.Clear)
			r.Post("/cart/items", cartCtrl.AddItem)
			r.Patch("/cart/items/{itemId}", cartCtrl.UpdateItem)
			r.Delete("/cart/items/{itemId}", cartCtrl.RemoveItem)

			r.Post("/orders", orderCtrl.Checkout)
			r.Get("/orders", orderCtrl.List)
			r.Get("/orders/{orderId}", orderCtrl.Get)
			r.Post("/orders/{orderId}/cancel", orderCtrl.Cancel)

			r.Group(func(r chi.Router) {
				r.Use(authMW.RequireAdmin)
				r.Post("/admin/orders/{orderId}/status", orderCtrl.ChangeStatus)
			})
		})
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				zap.String("requestId", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

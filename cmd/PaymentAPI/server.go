package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sebuszqo/PaymentAPI/internal/payment/interfaces"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Response struct {
	Message string `json:"message"`
}

type healthChecker interface {
	Health(ctx context.Context) map[string]string
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// respondError writes a plain text body, the error format of the payments API.
func respondError(w http.ResponseWriter, status int, message string) {
	http.Error(w, message, status)
}

type Server struct {
	router         *http.ServeMux
	paymentHandler *interfaces.PaymentHandler
	health         healthChecker
}

func NewServer(paymentHandler *interfaces.PaymentHandler, health healthChecker) *Server {
	return &Server{
		paymentHandler: paymentHandler,
		health:         health,
		router:         http.NewServeMux(),
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusNotFound, Response{Message: "Path not found"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	stats := s.health.Health(r.Context())
	if stats["status"] != "up" {
		respondJSON(w, http.StatusServiceUnavailable, stats)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (s *Server) RegisterRoutes() {
	router := http.NewServeMux()

	// PAYMENTS API
	router.Handle("GET /payments", http.HandlerFunc(s.paymentHandler.ListPayments))
	router.Handle("POST /payments", http.HandlerFunc(s.paymentHandler.CreatePayment))
	router.Handle("GET /payments/{id}", http.HandlerFunc(s.paymentHandler.GetPayment))
	router.Handle("PUT /payments/{id}", http.HandlerFunc(s.paymentHandler.UpdatePayment))
	router.Handle("DELETE /payments/{id}", http.HandlerFunc(s.paymentHandler.DeletePayment))

	router.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))
	router.Handle("GET /api-docs/", httpSwagger.Handler(httpSwagger.URL("/api-docs/doc.json")))

	router.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = router
}

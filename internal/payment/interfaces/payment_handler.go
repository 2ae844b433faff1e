package interfaces

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sebuszqo/PaymentAPI/internal/logger"
	"github.com/sebuszqo/PaymentAPI/internal/payment/domain"
	paymentErrors "github.com/sebuszqo/PaymentAPI/internal/payment/errors"
	"go.uber.org/zap"
)

const (
	msgNotFound     = "Payment not found"
	msgInvalidInput = "Invalid input"
	msgInternal     = "Internal Server Error"
)

type PaymentServiceInterface interface {
	ListPayments(ctx context.Context) ([]domain.Payment, error)
	GetPayment(ctx context.Context, id int64) (*domain.Payment, error)
	CreatePayment(ctx context.Context, input domain.PaymentInput) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, id int64, input domain.PaymentInput) (*domain.Payment, error)
	DeletePayment(ctx context.Context, id int64) error
}

type PaymentHandler struct {
	service      PaymentServiceInterface
	log          *zap.Logger
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewPaymentHandler(
	service PaymentServiceInterface,
	log *zap.Logger,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *PaymentHandler {
	if service == nil || log == nil || respondJSON == nil || respondError == nil {
		panic("Service, logger and response functions must not be nil")
	}
	return &PaymentHandler{
		service:      service,
		log:          log,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// paymentID reads the {id} path value. Zero and negative ids are valid
// integers that no stored row carries, so they come back as not found.
func paymentID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, paymentErrors.ErrPaymentNotFound
	}
	return id, nil
}

// rejectID answers a request whose path id could not be used. A non-integer
// id fails the same way a data-access error does on that route.
func (h *PaymentHandler) rejectID(w http.ResponseWriter, r *http.Request, err error, status int, message string) {
	if paymentErrors.IsNotFound(err) {
		h.respondError(w, http.StatusNotFound, msgNotFound)
		return
	}
	logger.Error(r.Context(), h.log, "Invalid payment id", err, zap.String("payment_id", r.PathValue("id")))
	h.respondError(w, status, message)
}

// ListPayments godoc
//
//	@Summary	Get all payments
//	@Produce	json
//	@Success	200	{array}	domain.Payment	"Successfully retrieved payments"
//	@Success	204	"No payments stored"
//	@Failure	500	{string}	string	"Internal Server Error"
//	@Router		/payments [get]
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListPayments(r.Context())
	if err != nil {
		logger.Error(r.Context(), h.log, "Failed to list payments", err)
		h.respondError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	if len(payments) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	h.respondJSON(w, http.StatusOK, payments)
}

// GetPayment godoc
//
//	@Summary	Get a payment by ID
//	@Produce	json
//	@Param		id	path		int				true	"ID of the payment to retrieve"
//	@Success	200	{object}	domain.Payment	"Successfully retrieved payment"
//	@Failure	404	{string}	string			"Payment not found"
//	@Failure	500	{string}	string			"Internal Server Error"
//	@Router		/payments/{id} [get]
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := paymentID(r)
	if err != nil {
		h.rejectID(w, r, err, http.StatusInternalServerError, msgInternal)
		return
	}

	payment, err := h.service.GetPayment(r.Context(), id)
	if err != nil {
		if paymentErrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, msgNotFound)
			return
		}
		logger.Error(r.Context(), h.log, "Failed to get payment", err, zap.Int64("payment_id", id))
		h.respondError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	h.respondJSON(w, http.StatusOK, payment)
}

// CreatePayment godoc
//
//	@Summary	Add a new payment
//	@Accept		json
//	@Produce	json
//	@Param		payment	body		domain.PaymentInput	true	"Payment to create"
//	@Success	201		{object}	domain.Payment		"Successfully created payment"
//	@Failure	400		{string}	string				"Invalid input"
//	@Router		/payments [post]
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var input domain.PaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, http.StatusBadRequest, msgInvalidInput)
		return
	}

	payment, err := h.service.CreatePayment(r.Context(), input)
	if err != nil {
		logger.Error(r.Context(), h.log, "Failed to create payment", err)
		h.respondError(w, http.StatusBadRequest, msgInvalidInput)
		return
	}

	h.respondJSON(w, http.StatusCreated, payment)
}

// UpdatePayment godoc
//
//	@Summary	Edit an existing payment
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"ID of the payment to update"
//	@Param		payment	body		domain.PaymentInput	true	"New payment fields"
//	@Success	200		{object}	domain.Payment		"Successfully updated payment"
//	@Failure	400		{string}	string				"Invalid input"
//	@Failure	404		{string}	string				"Payment not found"
//	@Router		/payments/{id} [put]
func (h *PaymentHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := paymentID(r)
	if err != nil {
		h.rejectID(w, r, err, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var input domain.PaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, http.StatusBadRequest, msgInvalidInput)
		return
	}

	payment, err := h.service.UpdatePayment(r.Context(), id, input)
	if err != nil {
		if paymentErrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, msgNotFound)
			return
		}
		logger.Error(r.Context(), h.log, "Failed to update payment", err, zap.Int64("payment_id", id))
		h.respondError(w, http.StatusBadRequest, msgInvalidInput)
		return
	}

	h.respondJSON(w, http.StatusOK, payment)
}

// DeletePayment godoc
//
//	@Summary	Soft delete a payment by ID
//	@Param		id	path	int	true	"ID of the payment to delete"
//	@Success	204	"Successfully deleted payment"
//	@Failure	404	{string}	string	"Payment not found"
//	@Failure	500	{string}	string	"Internal Server Error"
//	@Router		/payments/{id} [delete]
func (h *PaymentHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := paymentID(r)
	if err != nil {
		h.rejectID(w, r, err, http.StatusInternalServerError, msgInternal)
		return
	}

	if err := h.service.DeletePayment(r.Context(), id); err != nil {
		if paymentErrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, msgNotFound)
			return
		}
		logger.Error(r.Context(), h.log, "Failed to delete payment", err, zap.Int64("payment_id", id))
		h.respondError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

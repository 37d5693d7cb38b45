package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/luxe-commerce/storefront/internal/api/middleware"
	"github.com/luxe-commerce/storefront/internal/errors"
	"github.com/luxe-commerce/storefront/internal/models"
	service "github.com/luxe-commerce/storefront/internal/services"
	"github.com/luxe-commerce/storefront/internal/utils"
	"github.com/luxe-commerce/storefront/internal/utils/response"
	"github.com/microcosm-cc/bluemonday"
)

type CheckoutHandler struct {
	workflow  *service.CheckoutWorkflow
	validator *validator.Validate
	sanitizer *bluemonday.Policy
}

func NewCheckoutHandler(workflow *service.CheckoutWorkflow) *CheckoutHandler {
	return &CheckoutHandler{
		workflow:  workflow,
		validator: validator.New(),
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (h *CheckoutHandler) Open() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.workflow.Open()

		response.Success(w, http.StatusOK, h.workflow.State())
	}
}

func (h *CheckoutHandler) State() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, http.StatusOK, h.workflow.State())
	}
}

// free-text shipping fields are stripped of markup before they enter the
// workflow; structured fields pass through untouched.
var sanitizedFields = map[models.FormField]bool{
	models.FieldFullName:    true,
	models.FieldAddressLine: true,
	models.FieldCity:        true,
}

func (h *CheckoutHandler) UpdateField() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.UpdateFieldRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		value := req.Value
		if sanitizedFields[req.Field] {
			value = h.sanitizer.Sanitize(value)
		}

		h.workflow.SetField(req.Field, value)

		response.Success(w, http.StatusOK, h.workflow.State())
	}
}

func (h *CheckoutHandler) Next() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		step, err := h.workflow.Next(r.Context())
		if err != nil {
			logger.Warn("Checkout advance rejected", "error", err.Error())
			response.Error(w, err)
			return
		}

		logger.Info("Checkout step", "step", step.String())

		response.Success(w, http.StatusOK, h.workflow.State())
	}
}

func (h *CheckoutHandler) Back() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.workflow.Back()

		response.Success(w, http.StatusOK, h.workflow.State())
	}
}

func (h *CheckoutHandler) Close() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		if !h.workflow.Close() {
			response.Error(w, errors.ConflictError("Cannot close checkout while a submission is in flight"))
			return
		}

		response.Success(w, http.StatusOK, h.workflow.State())
	}
}

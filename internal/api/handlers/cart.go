package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/luxe-commerce/storefront/internal/api/middleware"
	"github.com/luxe-commerce/storefront/internal/models"
	service "github.com/luxe-commerce/storefront/internal/services"
	"github.com/luxe-commerce/storefront/internal/utils"
	"github.com/luxe-commerce/storefront/internal/utils/response"
)

type CartHandler struct {
	cart      *service.CartService
	validator *validator.Validate
}

func NewCartHandler(cart *service.CartService) *CartHandler {
	return &CartHandler{
		cart:      cart,
		validator: validator.New(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		snapshot := h.cart.Snapshot()

		response.Success(w, http.StatusOK, map[string]any{
			"cart": snapshot,
			"open": h.cart.IsOpen(),
		})
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		h.cart.AddItem(r.Context(), models.Product{
			ID:       req.ProductID,
			Name:     req.Name,
			Price:    req.UnitPrice,
			ImageURL: req.ImageURL,
		})

		logger := middleware.LoggerFromContext(r.Context())
		logger.Info("Item added to cart", "product_id", req.ProductID)

		response.Success(w, http.StatusOK, h.cart.Snapshot())
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID := r.PathValue("productId")
		if productID == "" {
			response.WriteJson(w, http.StatusBadRequest, "Product ID is required")
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		h.cart.UpdateQuantity(r.Context(), productID, req.Delta)

		response.Success(w, http.StatusOK, h.cart.Snapshot())
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		productID := r.PathValue("productId")
		if productID == "" {
			response.WriteJson(w, http.StatusBadRequest, "Product ID is required")
			return
		}

		h.cart.RemoveItem(r.Context(), productID)

		response.Success(w, http.StatusOK, h.cart.Snapshot())
	}
}

func (h *CartHandler) Clear() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		h.cart.Clear(r.Context())

		response.Success(w, http.StatusOK, h.cart.Snapshot())
	}
}

func (h *CartHandler) SetOpen() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req models.SetCartOpenRequest
		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		h.cart.SetOpen(req.Open)

		response.Success(w, http.StatusOK, map[string]bool{"open": h.cart.IsOpen()})
	}
}

// Package handler はorderフィーチャー(注文とカート)のHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"storefront/internal/api"
	"storefront/internal/feature/order/domain/entity"
	"storefront/internal/feature/order/transport/http/dto"
	"storefront/internal/feature/order/usecase"
	"storefront/internal/platform/apperr"
	jwtmw "storefront/internal/platform/jwt"
)

// OrderUsecase は注文履歴のユースケースを定義します。
type OrderUsecase interface {
	ListOrders(ctx context.Context, userID uint) ([]entity.OrderWithProduct, error)
}

// CartUsecase はカート操作のユースケースを定義します。
type CartUsecase interface {
	List(ctx context.Context, userID uint) ([]entity.CartLine, error)
	Add(ctx context.Context, userID, productID uint, quantity int) (*entity.CartItem, error)
	Update(ctx context.Context, userID, id uint, quantity int) error
	Remove(ctx context.Context, userID, id uint) error
	Checkout(ctx context.Context, userID uint) ([]entity.OrderWithProduct, error)
}

// OrderHandler は /api/orders と /api/cart 配下のリクエストを処理します。
type OrderHandler struct {
	orders OrderUsecase
	cart   CartUsecase
}

func NewOrderHandler(orders OrderUsecase, cart CartUsecase) *OrderHandler {
	return &OrderHandler{orders: orders, cart: cart}
}

// ListOrders は GET /api/orders を処理します。
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	orders, err := h.orders.ListOrders(c.Request.Context(), userID)
	if err != nil {
		api.Fail(c, apperr.Internal("Unable to fetch orders", err))
		return
	}
	api.OK(c, gin.H{"orders": orders})
}

// Cart は GET /api/cart を処理します。
func (h *OrderHandler) Cart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	items, err := h.cart.List(c.Request.Context(), userID)
	if err != nil {
		api.Fail(c, apperr.Internal("Unable to fetch cart", err))
		return
	}
	api.OK(c, gin.H{"items": items})
}

// AddToCart は POST /api/cart/add を処理します。
func (h *OrderHandler) AddToCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.AddCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation("Product ID is required"))
		return
	}
	item, err := h.cart.Add(c.Request.Context(), userID, req.ProductID, req.Qty())
	if err != nil {
		cartFail(c, err, "Unable to add to cart")
		return
	}
	api.OK(c, gin.H{"message": "Added to cart", "item": item})
}

// UpdateCart は PUT /api/cart/update を処理します。
func (h *OrderHandler) UpdateCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation("Cart item ID and quantity are required"))
		return
	}
	if err := h.cart.Update(c.Request.Context(), userID, req.ID, *req.Quantity); err != nil {
		cartFail(c, err, "Unable to update cart")
		return
	}
	api.OK(c, gin.H{"message": "Cart updated"})
}

// RemoveFromCart は DELETE /api/cart/remove を処理します。
func (h *OrderHandler) RemoveFromCart(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.RemoveCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation("Cart item ID is required"))
		return
	}
	if err := h.cart.Remove(c.Request.Context(), userID, req.ID); err != nil {
		cartFail(c, err, "Unable to remove from cart")
		return
	}
	api.OK(c, gin.H{"message": "Removed from cart"})
}

// Checkout は POST /api/cart/checkout を処理します。
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	orders, err := h.cart.Checkout(c.Request.Context(), userID)
	if err != nil {
		cartFail(c, err, "Checkout failed")
		return
	}
	api.OK(c, gin.H{"message": "Order placed", "orders": orders})
}

func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Unauthorized"))
	}
	return userID, ok
}

func cartFail(c *gin.Context, err error, internalMsg string) {
	switch {
	case errors.Is(err, usecase.ErrCartItemNotFound):
		api.Fail(c, apperr.NotFound("Cart item not found"))
	case errors.Is(err, usecase.ErrProductNotFound):
		api.Fail(c, apperr.NotFound("Product not found"))
	case errors.Is(err, usecase.ErrCartEmpty):
		api.Fail(c, apperr.Validation("Cart is empty"))
	case errors.Is(err, usecase.ErrInvalidQuantity):
		api.Fail(c, apperr.Validation(fmt.Sprintf("Quantity must be between 1 and %d", usecase.MaxQuantity)))
	default:
		api.Fail(c, apperr.Internal(internalMsg, err))
	}
}

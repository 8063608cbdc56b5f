// Package handler はaddressフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"storefront/internal/api"
	"storefront/internal/feature/address/domain/entity"
	"storefront/internal/feature/address/transport/http/dto"
	"storefront/internal/feature/address/usecase"
	"storefront/internal/platform/apperr"
	jwtmw "storefront/internal/platform/jwt"
)

// AddressUsecase は住所管理のユースケースを定義します。
type AddressUsecase interface {
	Add(ctx context.Context, userID uint, a entity.Address) (*entity.Address, error)
	Update(ctx context.Context, userID, id uint, patch entity.AddressPatch) (*entity.Address, error)
	SetDefault(ctx context.Context, userID, id uint) error
	Remove(ctx context.Context, userID, id uint) error
}

// AddressHandler は /api/address 配下のリクエストを処理します。すべて認証が必要です。
type AddressHandler struct {
	addresses AddressUsecase
}

// NewAddressHandler はAddressHandlerの新しいインスタンスを生成します。
func NewAddressHandler(addresses AddressUsecase) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// Add は POST /api/address/add を処理します。
func (h *AddressHandler) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.AddAddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation("Missing required fields"))
		return
	}
	addr, err := h.addresses.Add(c.Request.Context(), userID, req.ToEntity())
	if err != nil {
		fail(c, err, "Unable to add address")
		return
	}
	slog.Info("address added", "user_id", userID, "address_id", addr.ID)
	api.OK(c, gin.H{"message": "Address added successfully", "address": addr})
}

// Update は PUT /api/address/update を処理します。
func (h *AddressHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.UpdateAddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation("Address ID is required"))
		return
	}
	addr, err := h.addresses.Update(c.Request.Context(), userID, req.ID, req.Patch())
	if err != nil {
		fail(c, err, "Unable to update address")
		return
	}
	api.OK(c, gin.H{"message": "Address updated successfully", "address": addr})
}

// SetDefault は PUT /api/address/default を処理します。
func (h *AddressHandler) SetDefault(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.AddressIDReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation("Address ID is required"))
		return
	}
	if err := h.addresses.SetDefault(c.Request.Context(), userID, req.ID); err != nil {
		fail(c, err, "Unable to set default address")
		return
	}
	api.OK(c, gin.H{"message": "Default address updated"})
}

// Remove は DELETE /api/address/remove を処理します。
func (h *AddressHandler) Remove(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.AddressIDReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation("Address ID is required"))
		return
	}
	if err := h.addresses.Remove(c.Request.Context(), userID, req.ID); err != nil {
		fail(c, err, "Unable to remove address")
		return
	}
	api.OK(c, gin.H{"message": "Address removed successfully"})
}

func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Unauthorized"))
	}
	return userID, ok
}

func fail(c *gin.Context, err error, internalMsg string) {
	switch {
	case errors.Is(err, usecase.ErrAddressNotFound):
		api.Fail(c, apperr.NotFound("Address not found"))
	case errors.Is(err, usecase.ErrMissingField):
		api.Fail(c, apperr.Validation(err.Error()))
	default:
		api.Fail(c, apperr.Internal(internalMsg, err))
	}
}

// Package handler はfavouriteフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"storefront/internal/api"
	"storefront/internal/feature/favourite/domain/entity"
	"storefront/internal/feature/favourite/transport/http/dto"
	"storefront/internal/feature/favourite/usecase"
	"storefront/internal/platform/apperr"
	jwtmw "storefront/internal/platform/jwt"
)

// FavouriteUsecase はお気に入り操作のユースケースを定義します。
type FavouriteUsecase interface {
	List(ctx context.Context, userID uint) ([]entity.FavouriteWithProduct, error)
	Add(ctx context.Context, userID, productID uint) (*entity.FavouriteWithProduct, error)
	Remove(ctx context.Context, userID, id uint) error
}

type FavouriteHandler struct {
	favourites FavouriteUsecase
}

func NewFavouriteHandler(favourites FavouriteUsecase) *FavouriteHandler {
	return &FavouriteHandler{favourites: favourites}
}

// List は GET /api/favourites を処理します。
func (h *FavouriteHandler) List(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Unauthorized"))
		return
	}
	favs, err := h.favourites.List(c.Request.Context(), userID)
	if err != nil {
		api.Fail(c, apperr.Internal("Unable to fetch favourites", err))
		return
	}
	api.OK(c, gin.H{"favourites": favs})
}

// Add は POST /api/favourites/add を処理します。
func (h *FavouriteHandler) Add(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Unauthorized"))
		return
	}
	var req dto.AddFavouriteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation("Product ID is required"))
		return
	}
	fav, err := h.favourites.Add(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		if errors.Is(err, usecase.ErrProductNotFound) {
			api.Fail(c, apperr.NotFound("Product not found"))
			return
		}
		api.Fail(c, apperr.Internal("Unable to add favourite", err))
		return
	}
	api.OK(c, gin.H{"message": "Added to favourites", "favourite": fav})
}

// Remove は DELETE /api/favourites/remove を処理します。
func (h *FavouriteHandler) Remove(c *gin.Context) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		api.Fail(c, apperr.Unauthenticated("Unauthorized"))
		return
	}
	var req dto.RemoveFavouriteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, apperr.Validation("Favourite ID is required"))
		return
	}
	if err := h.favourites.Remove(c.Request.Context(), userID, req.ID); err != nil {
		if errors.Is(err, usecase.ErrFavouriteNotFound) {
			api.Fail(c, apperr.NotFound("Favourite not found"))
			return
		}
		api.Fail(c, apperr.Internal("Unable to remove favourite", err))
		return
	}
	api.OK(c, gin.H{"message": "Removed from favourites"})
}

// controllers/asset_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luxoria/luxoria_backend/models"
	"github.com/luxoria/luxoria_backend/repositories"
	"github.com/luxoria/luxoria_backend/services"
)

// AssetController manages seller asset listings. Tokenization here is a
// stub: the endpoint only records the request, on-ledger minting is handled
// by the external XRPL service.
type AssetController struct {
	assets  AssetStore
	sellers SellerStore
}

func NewAssetController(assets AssetStore, sellers SellerStore) *AssetController {
	return &AssetController{assets: assets, sellers: sellers}
}

// CreateAsset lists a new asset for an existing seller
func (ac *AssetController) CreateAsset(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var req models.AssetCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Validation failed",
			Data:    err.Error(),
		})
	}

	seller, err := ac.sellers.FindByWallet(ctx, req.SellerWallet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Seller not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}

	asset := &models.Asset{
		SellerID: seller.ID,
		Title:    req.Title,
		Category: string(services.ParseCategory(req.Category)),
		PriceUSD: req.PriceUSD,
	}

	assetID, err := ac.assets.Insert(ctx, asset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create asset",
		})
	}
	asset.ID = assetID

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Asset created successfully",
		Data:    map[string]interface{}{"asset": asset},
	})
}

// ListAssets returns a seller's assets, newest first
func (ac *AssetController) ListAssets(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wallet := c.QueryParam("wallet")
	if wallet == "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Wallet query parameter is required",
		})
	}

	seller, err := ac.sellers.FindByWallet(ctx, wallet)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Seller not found",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Database error",
		})
	}

	limit, offset := parsePagination(c, 20)
	assets, err := ac.assets.ListBySeller(ctx, seller.ID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch assets",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Assets fetched successfully",
		Data: map[string]interface{}{
			"assets": assets,
			"limit":  limit,
			"offset": offset,
		},
	})
}

// RequestTokenization records a tokenization request for an asset
func (ac *AssetController) RequestTokenization(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid asset ID",
		})
	}

	if err := ac.assets.MarkTokenizationRequested(ctx, id); err != nil {
		switch err {
		case mongo.ErrNoDocuments:
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Asset not found",
			})
		case repositories.ErrTokenizationAlreadyRequested:
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "Tokenization has already been requested for this asset",
			})
		default:
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to request tokenization",
			})
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Tokenization requested; the asset will be minted by the ledger service",
		Data:    map[string]interface{}{"assetId": id.Hex()},
	})
}

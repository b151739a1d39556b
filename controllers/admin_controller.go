// controllers/admin_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/luxoria/luxoria_backend/config"
	"github.com/luxoria/luxoria_backend/middleware"
	"github.com/luxoria/luxoria_backend/models"
	"github.com/luxoria/luxoria_backend/repositories"
)

type AdminController struct {
	commissions CommissionStore
	cfg         *config.AppConfig
}

func NewAdminController(commissions CommissionStore, cfg *config.AppConfig) *AdminController {
	return &AdminController{commissions: commissions, cfg: cfg}
}

// Login authenticates the platform admin against the configured credentials
// and issues a JWT for the payout endpoints.
func (ac *AdminController) Login(c echo.Context) error {
	var req models.AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Email and password are required",
		})
	}

	if ac.cfg.AdminEmail == "" || ac.cfg.AdminPasswordHash == "" {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Admin credentials are not configured",
		})
	}

	if req.Email != ac.cfg.AdminEmail ||
		bcrypt.CompareHashAndPassword([]byte(ac.cfg.AdminPasswordHash), []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
	}

	token, err := middleware.GenerateAdminJWT(req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate token",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Login successful",
		Data:    map[string]interface{}{"token": token},
	})
}

// ListCommissions returns commissions across all brokers for review
func (ac *AdminController) ListCommissions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status := c.QueryParam("status")
	limit, offset := parsePagination(c, 50)

	commissions, err := ac.commissions.List(ctx, status, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch commissions",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commissions fetched successfully",
		Data: map[string]interface{}{
			"commissions": commissions,
			"limit":       limit,
			"offset":      offset,
		},
	})
}

// MarkCommissionPaid transitions a single commission from pending to paid
func (ac *AdminController) MarkCommissionPaid(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid commission ID",
		})
	}

	if err := ac.commissions.MarkPaid(ctx, id); err != nil {
		switch err {
		case repositories.ErrCommissionNotFound:
			return c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Commission not found",
			})
		case repositories.ErrCommissionAlreadyPaid:
			return c.JSON(http.StatusConflict, models.Response{
				Status:  http.StatusConflict,
				Message: "Commission has already been paid",
			})
		default:
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to mark commission as paid",
			})
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Commission marked as paid",
		Data:    map[string]interface{}{"commissionId": id.Hex()},
	})
}

// Dashboard returns commission totals grouped per status
func (ac *AdminController) Dashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	totals, err := ac.commissions.StatusTotals(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to fetch dashboard totals",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Dashboard totals fetched successfully",
		Data:    map[string]interface{}{"totals": totals},
	})
}

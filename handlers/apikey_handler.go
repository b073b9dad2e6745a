// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"time"
	"workspan-server/crypto"
	"workspan-server/db"
	"workspan-server/middlewares"
	"workspan-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CreateAPIKeyHandler godoc
// @Summary      Create an API key
// @Description  Creates a new API key for the authenticated user. The full key is returned exactly once.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        createAPIKeyRequest  body  CreateAPIKeyRequest  true  "API key request payload"
// @Success      201 {object} CreateAPIKeyResponse "API key created"
// @Failure      400 {object} echo.HTTPError     "Bad request, missing required fields"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      409 {object} echo.HTTPError     "Duplicate API key name"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/api-keys [post]
func CreateAPIKeyHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	var req CreateAPIKeyRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create API key request payload:", err)
		return echo.ErrBadRequest
	}

	if req.Name == "" {
		logger.Error("Name is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "name field is required",
		}
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil && *req.ExpiresAt != "" {
		parsed, err := time.Parse("2006-01-02", *req.ExpiresAt)
		if err != nil {
			logger.Error("Invalid expires_at format.")
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "expires_at field must be a date in YYYY-MM-DD format",
			}
		}
		if parsed.Before(time.Now()) {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "expires_at must be in the future",
			}
		}
		expiresAt = &parsed
	}

	count := db.Conn.Where("name = ? AND user_id = ?", req.Name, user.ID).First(&models.APIKey{}).RowsAffected
	if count > 0 {
		logger.Error("Duplicate API key name detected.")
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "You already have an API key with this name. Please try another one.",
		}
	}

	// The first 35 characters (ak_ + 32 hex) identify the key; the rest is
	// the secret. Only the argon2id hash of the full key is stored.
	keyID, err := crypto.GenerateRandomString("ak_", 16, "hex")
	if err != nil {
		logger.Errorf("Failed to generate key ID: %v", err)
		return echo.ErrInternalServerError
	}

	secret, err := crypto.GenerateRandomString("", 24, "hex")
	if err != nil {
		logger.Errorf("Failed to generate key secret: %v", err)
		return echo.ErrInternalServerError
	}

	fullKey := keyID + secret

	newCrypto := crypto.NewCrypto()
	hashedKey, err := newCrypto.HashPassword(fullKey)
	if err != nil {
		logger.Errorf("Failed to hash API key: %v", err)
		return echo.ErrInternalServerError
	}

	apiKey := models.APIKey{
		KeyID:       keyID,
		HashedKey:   hashedKey,
		Name:        req.Name,
		Description: req.Description,
		ExpiresAt:   expiresAt,
		UserID:      user.ID,
	}

	if err := db.Conn.Create(&apiKey).Error; err != nil {
		logger.Errorf("Failed to create API key: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("API key created successfully")
	return c.JSON(http.StatusCreated, CreateAPIKeyResponse{
		APIKey:      fullKey,
		KeyID:       apiKey.KeyID,
		Name:        apiKey.Name,
		Description: apiKey.Description,
		CreatedAt:   apiKey.CreatedAt.Format(time.RFC3339),
		ExpiresAt:   req.ExpiresAt,
		Message:     "API key created successfully. Store it now, it will not be shown again.",
	})
}

// GetAllAPIKeyHandler godoc
// @Summary      List API keys
// @Description  Retrieves the authenticated user's API keys. Secrets are never returned.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        page     query   int     false  "Page number (default 1)"
// @Param        page_size query  int     false  "Page size (default 10, max 100)"
// @Success      200 {object} APIKeyListResponse "Paginated list of API keys"
// @Failure      401 {object} echo.HTTPError     "Unauthorized"
// @Failure      500 {object} echo.HTTPError     "Internal server error"
// @Router       /v1/auth/api-keys [get]
func GetAllAPIKeyHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	page, pageSize := paginationParams(c)

	var total int64
	if err := db.Conn.Model(&models.APIKey{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		logger.Errorf("Failed to count API keys: %v", err)
		return echo.ErrInternalServerError
	}

	offset := (page - 1) * pageSize
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	var apiKeys []models.APIKey
	if err := db.Conn.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&apiKeys).Error; err != nil {
		logger.Errorf("Failed to fetch API keys: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]APIKeyDetails, 0, len(apiKeys))
	for _, apiKey := range apiKeys {
		detail := APIKeyDetails{
			KeyID:       apiKey.KeyID,
			Name:        apiKey.Name,
			Description: apiKey.Description,
			CreatedAt:   apiKey.CreatedAt.Format(time.RFC3339),
		}
		if apiKey.LastUsedAt != nil {
			lastUsed := apiKey.LastUsedAt.Format(time.RFC3339)
			detail.LastUsedAt = &lastUsed
		}
		if apiKey.ExpiresAt != nil {
			expires := apiKey.ExpiresAt.Format("2006-01-02")
			detail.ExpiresAt = &expires
		}
		details = append(details, detail)
	}

	return c.JSON(http.StatusOK, APIKeyListResponse{
		Data: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
		Message: "API keys retrieved successfully",
	})
}

// DeleteAPIKeyHandler godoc
// @Summary      Delete an API key
// @Description  Permanently deletes an API key by its key ID.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization  header  string  true  "Bearer token for authentication. Replace <your_token_here> with a valid token."  default(Bearer <your_token_here>)
// @Param        key_id  path  string  true  "Key ID"
// @Success      200 {object} GenericResponse "API key deleted successfully"
// @Failure      401 {object} echo.HTTPError  "Unauthorized"
// @Failure      404 {object} echo.HTTPError  "API key not found"
// @Failure      500 {object} echo.HTTPError  "Internal server error"
// @Router       /v1/auth/api-keys/{key_id} [delete]
func DeleteAPIKeyHandler(c echo.Context) error {
	logger := c.Logger()

	user, err := middlewares.GetAuthenticatedUser(c)
	if err != nil {
		logger.Error("Failed to get authenticated user:", err)
		return &echo.HTTPError{
			Code:    http.StatusUnauthorized,
			Message: "Invalid or expired authentication token, please login again",
		}
	}

	keyID := c.Param("key_id")
	apiKey := models.APIKey{}
	if err := db.Conn.Where("key_id = ? AND user_id = ?", keyID, user.ID).First(&apiKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("API key not found.")
			return &echo.HTTPError{
				Code:    http.StatusNotFound,
				Message: "API key not found",
			}
		}
		logger.Errorf("Failed to find API key: %v", err)
		return echo.ErrInternalServerError
	}

	if err := db.Conn.Unscoped().Delete(&apiKey).Error; err != nil {
		logger.Errorf("Failed to delete API key: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("API key deleted successfully")
	return c.JSON(http.StatusOK, GenericResponse{
		Message: "API key deleted successfully",
	})
}

// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"errors"
	"net/http"
	"strings"
	"workspan-server/db"
	"workspan-server/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// VerifyPortalTokenMiddleware resolves the :portal_token path parameter to
// a project and stores it under the "portal_project" context key. Clients
// authenticate with nothing but this token, so an unknown token is
// indistinguishable from a missing project.
func VerifyPortalTokenMiddleware() func(echo.HandlerFunc) echo.HandlerFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := c.Logger()

			portalToken := c.Param("portal_token")
			if portalToken == "" || !strings.HasPrefix(portalToken, "prt_") {
				logger.Error("Portal token missing or malformed.")
				return &echo.HTTPError{
					Code:    http.StatusNotFound,
					Message: "Portal not found",
				}
			}

			project := models.Project{}
			err := db.Conn.Where("portal_token = ?", portalToken).First(&project).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					logger.Error("No project for portal token.")
					return &echo.HTTPError{
						Code:    http.StatusNotFound,
						Message: "Portal not found",
					}
				}
				logger.Error("Failed to resolve portal token: ", err)
				return &echo.HTTPError{
					Code:    http.StatusInternalServerError,
					Message: "Something went wrong, try again later",
				}
			}

			c.Set("portal_project", project)
			return next(c)
		}
	}
}

func GetPortalProject(c echo.Context) (*models.Project, error) {
	if project, ok := c.Get("portal_project").(models.Project); ok {
		return &project, nil
	}
	return nil, errors.New("no portal project found")
}

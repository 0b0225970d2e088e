package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

// parseID reads a positive numeric path parameter. On failure it writes a
// 400 response and returns false.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid %s", name))
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps service and gorm errors onto HTTP status codes.
func respondServiceError(c *gin.Context, op string, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		code = http.StatusBadRequest
	case services.IsNotFound(err):
		code = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidStatus):
		code = http.StatusConflict
	}

	if code == http.StatusInternalServerError {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"operation": op,
			"path":      c.Request.URL.Path,
		}).Error(err)
		utils.RespondError(c, code, fmt.Errorf("failed to %s", op))
		return
	}
	utils.RespondError(c, code, err)
}

package api

import (
	"errors"
	"net/http"

	"brow-studio-api/internal/handler/middleware"
	"brow-studio-api/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func isValidationErr(err error) bool {
	return errors.Is(err, errs.ErrDomainValidation)
}

// requireUserID pulls the authenticated user ID set by RequireAuth. A miss
// means the route table is wired without the middleware.
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return uuid.Nil, false
	}
	return userID, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name + " format",
		})
		return uuid.Nil, false
	}
	return id, true
}

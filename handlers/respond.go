package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"finance-api/middleware"
	"finance-api/models"
	"finance-api/services"

	"github.com/gin-gonic/gin"
)

// serviceError maps the service-layer failure taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a storage/transport problem surfaced as
// 503 so clients know to retry, not fix their request.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooLong),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidType):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrTOTPRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "requires_2fa": true})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "no_data": true})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("service error: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service unavailable"})
	}
}

// currentUser resolves the token subject set by the auth middleware to a
// user row. Returns nil after writing the response when resolution fails.
func currentUser(c *gin.Context, svc *services.FinanceService) *models.User {
	email := middleware.GetUserEmail(c)
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil
	}

	user, err := svc.CurrentUser(c.Request.Context(), email)
	if err != nil {
		serviceError(c, err)
		return nil
	}
	return user
}

// parseDateRange reads start_date/end_date (YYYY-MM-DD) query parameters.
// The end bound is pushed to the last instant of its day so the range stays
// inclusive at date granularity over timestamp columns.
func parseDateRange(c *gin.Context) (time.Time, time.Time, bool) {
	const layout = "2006-01-02"

	start, err := time.Parse(layout, c.Query("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}

	end, err := time.Parse(layout, c.Query("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}

	end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end, true
}

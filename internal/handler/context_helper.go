package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/middleware"
	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// parsePagination reads page/limit query values with the shared defaults:
// page 1, limit 10, limit capped at 100.
func parsePagination(c *gin.Context) (page, limit int) {
	page = 1
	limit = 10
	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 {
			page = v
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 1 {
			limit = v
		}
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	value, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

func parseInt64Query(c *gin.Context, name string) (int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"bostonfood/internal/models"
	"bostonfood/internal/queries"
)

type ViolationsController struct {
	DB *gorm.DB
}

// GetViolations returns stored violations, newest first, optionally filtered
// by violation code.
func (vc *ViolationsController) GetViolations(c *gin.Context) {
	ctx := c.Request.Context()
	limit := getLimitWithDefault(c, 100)

	q := gorm.G[models.Violation](vc.DB).Order("date DESC").Limit(limit)
	if code := c.Query("code"); code != "" {
		q = q.Where("violation_code = ?", code)
	}

	violations, err := q.Find(ctx)
	if err != nil {
		log.Printf("failed to get violations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"violations": violations,
	})
}

// GetTopCodes returns the most frequent violation codes.
func (vc *ViolationsController) GetTopCodes(c *gin.Context) {
	limit := getLimitWithDefault(c, 10)

	codes, err := queries.TopViolationCodes(c.Request.Context(), vc.DB, limit)
	if err != nil {
		log.Printf("failed to get top codes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"codes": codes,
	})
}

// GetTopDescriptions returns the most frequent violation descriptions.
func (vc *ViolationsController) GetTopDescriptions(c *gin.Context) {
	limit := getLimitWithDefault(c, 10)

	descs, err := queries.TopDescriptions(c.Request.Context(), vc.DB, limit)
	if err != nil {
		log.Printf("failed to get top descriptions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"descriptions": descs,
	})
}

func getLimitWithDefault(c *gin.Context, defaultValue int) int {
	var err error
	limit := defaultValue
	if c.Query("limit") != "" {
		limit, err = strconv.Atoi(c.Query("limit"))
		if err != nil {
			log.Printf("failed to parse limit: %v, using default value: %d", err, defaultValue)
			return defaultValue
		}
	}
	return limit
}

package handlers

import (
	"net/http"

	"clinicbook/models"

	"github.com/gin-gonic/gin"
)

// GetDepartments handles GET /api/departments: the fixed clinic menu of
// categories and their bookable departments.
func GetDepartments(c *gin.Context) {
	byCategory := make(map[string][]models.Department, len(models.Categories))
	for _, d := range models.Departments {
		byCategory[d.CategoryID] = append(byCategory[d.CategoryID], d)
	}
	c.JSON(http.StatusOK, gin.H{
		"categories":  models.Categories,
		"departments": byCategory,
	})
}

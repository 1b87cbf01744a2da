package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Me handles GET /users/me: echoes the verified identity from the token.
func Me(c *gin.Context) {
	uid, _ := c.Get("userID")
	email, _ := c.Get("email")
	c.JSON(http.StatusOK, gin.H{"uid": uid, "email": email})
}

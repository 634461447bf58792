package util

import "github.com/gin-gonic/gin"

// Error sends an error body in the API's standard shape: {"detail": msg}.
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"detail": msg})
}

// FieldErrors sends a 400 with per-field error lists, e.g.
// {"nome": ["categoria com este nome já existe."]}.
func FieldErrors(c *gin.Context, httpStatus int, fields map[string][]string) {
	c.JSON(httpStatus, fields)
}

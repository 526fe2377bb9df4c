package utils

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, data gin.H) {
	c.JSON(200, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error writes the error envelope. An optional data payload, such as the
// uploader state after a refused action, is included under "data".
func Error(c *gin.Context, code int, msg string, data ...gin.H) {
	body := gin.H{
		"success": false,
		"error":   msg,
	}
	if len(data) > 0 {
		body["data"] = data[0]
	}
	c.JSON(code, body)
}

package controller

import (
	"strconv"

	"github.com/nenood/watchlist/config"

	"github.com/gin-gonic/gin"
)

// getRemoteIp returns the client address. Forwarding headers count only when
// they come from a trusted proxy.
func getRemoteIp(c *gin.Context) string {
	return c.ClientIP()
}

// getContext adds version and other context data to the provided gin.H.
func getContext(h gin.H) gin.H {
	a := gin.H{
		"app_name": config.GetName(),
		"cur_ver":  config.GetVersion(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}

// paramID parses the :id route parameter. Anything but a positive integer
// is rejected.
func paramID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hdcinema/linkstream/stream"
	"github.com/hdcinema/linkstream/tool"
)

type StreamController struct {
	gateway *stream.Gateway
}

func NewStreamController(gateway *stream.Gateway) *StreamController {
	return &StreamController{gateway: gateway}
}

// HandleStream proxies the file bytes with range support.
// GET /dl/:token
func (sc *StreamController) HandleStream(c *gin.Context) {
	token := c.Param("token")
	rangeHeader := c.GetHeader("Range")

	err := sc.gateway.Stream(c.Request.Context(), c.Writer, token, rangeHeader)
	switch {
	case err == nil:
		return
	case errors.Is(err, stream.ErrNotFound):
		c.String(http.StatusNotFound, "Invalid download link or file not found.")
	case errors.Is(err, stream.ErrRange):
		c.String(http.StatusRequestedRangeNotSatisfiable, "Requested range not satisfiable")
	default:
		tool.DefaultLogger.Errorf("[Stream] %v", err)
		c.String(http.StatusInternalServerError, "Error while streaming file.")
	}
}

package controllers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hdcinema/linkstream/stream"
	"github.com/hdcinema/linkstream/templates"
	"github.com/hdcinema/linkstream/tool"
)

const disclaimer = BrandName + " does not store any files on our server. " +
	"We only index and link to content provided by other sites. If you believe " +
	"any content infringes your copyright, please contact the respective media host."

type WatchController struct {
	gateway *stream.Gateway
	baseURL string
}

func NewWatchController(gateway *stream.Gateway, baseURL string) *WatchController {
	return &WatchController{gateway: gateway, baseURL: baseURL}
}

// HandleWatch renders the HTML page embedding the stream link.
// GET /watch/:token
func (wc *WatchController) HandleWatch(c *gin.Context) {
	token := c.Param("token")

	rec, err := wc.gateway.Resolve(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, stream.ErrNotFound) {
			c.String(http.StatusNotFound, "File not found or access denied.")
			return
		}
		tool.DefaultLogger.Errorf("[Watch] Resolve failed: %v", err)
		c.String(http.StatusInternalServerError, "An internal server error occurred.")
		return
	}

	var buf bytes.Buffer
	err = templates.RenderWatch(&buf, templates.WatchPageData{
		BrandName:  BrandName,
		FileName:   tool.DisplayName(rec.FileName),
		FileSize:   tool.HumanSize(rec.FileSize),
		FileURL:    wc.baseURL + "dl/" + token,
		Disclaimer: disclaimer,
	})
	if err != nil {
		tool.DefaultLogger.Errorf("[Watch] Template render failed: %v", err)
		c.String(http.StatusInternalServerError, "An internal server error occurred.")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

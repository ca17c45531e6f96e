package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"github.com/hdcinema/linkstream/linkstore"
	"github.com/hdcinema/linkstream/tool"
)

const (
	defaultQRSize = 256
	maxQRSize     = 512
)

type QRController struct {
	links       *linkstore.Store
	botUsername string
}

func NewQRController(links *linkstore.Store, botUsername string) *QRController {
	return &QRController{links: links, botUsername: botUsername}
}

// HandleQRCode returns a PNG QR code for a permanent deep-link.
// GET /qr/:id?size=256
func (qc *QRController) HandleQRCode(c *gin.Context) {
	id := c.Param("id")
	if _, ok := qc.links.Lookup(id); !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("Unknown link id"))
		return
	}

	size := defaultQRSize
	if s := c.Query("size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			size = n
		}
	}
	if size > maxQRSize {
		size = maxQRSize
	}

	deepLink := fmt.Sprintf("https://t.me/%s?start=getfile-%s", qc.botUsername, id)
	png, err := qrcode.Encode(deepLink, qrcode.Medium, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to encode QR code: "+err.Error()))
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

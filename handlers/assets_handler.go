package handlers

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"checkout-server/models"
)

const faviconPath = "img/favicon.ico"

type AssetsHandler struct {
	assets fs.FS
	logger *zap.SugaredLogger
}

func NewAssetsHandler(assets fs.FS, logger *zap.SugaredLogger) *AssetsHandler {
	return &AssetsHandler{
		assets: assets,
		logger: logger,
	}
}

// Favicon handles GET /favicon.ico
func (h *AssetsHandler) Favicon(c *gin.Context) {
	data, err := readAsset(h.assets, faviconPath)
	if err != nil {
		h.logger.Warnw("failed to serve favicon", "error", err)
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/x-icon", data)
}

func readAsset(assets fs.FS, name string) ([]byte, error) {
	data, err := fs.ReadFile(assets, name)
	if err != nil {
		return nil, &models.AssetError{
			NotFound: errors.Is(err, fs.ErrNotExist),
			Path:     name,
			Err:      err,
		}
	}
	return data, nil
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout-server/models"
)

// respondError writes the structured error envelope for err.
func respondError(c *gin.Context, err error) {
	status, kind := classifyError(err)
	message := err.Error()
	if kind == models.KindInternal {
		message = "internal server error"
	}
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorBody{Kind: kind, Message: message},
	})
}

func classifyError(err error) (int, models.ErrorKind) {
	var (
		validationErr *models.ValidationError
		upstreamErr   *models.UpstreamError
		assetErr      *models.AssetError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, models.KindValidation
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway, models.KindUpstream
	case errors.As(err, &assetErr):
		if assetErr.NotFound {
			return http.StatusNotFound, models.KindAssetNotFound
		}
		return http.StatusInternalServerError, models.KindAssetRead
	default:
		return http.StatusInternalServerError, models.KindInternal
	}
}

package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"checkout-server/config"
	"checkout-server/models"
	"checkout-server/payments"
	"checkout-server/web"
)

// RouterConfig carries everything the HTTP layer depends on.
type RouterConfig struct {
	Config    *config.Config
	Checkout  CheckoutAPI
	Publisher EventPublisher
	Cart      models.Cart
	Assets    fs.FS
	Logger    *zap.SugaredLogger
}

func NewRouter(rc RouterConfig) (*gin.Engine, error) {
	tmpl, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	normalizer := payments.NewNormalizer(rc.Config.ShopperEmail, rc.Config.BaseURL, rc.Cart)

	paymentsHandler := NewPaymentsHandler(rc.Config, rc.Checkout, normalizer, rc.Cart, rc.Publisher, rc.Logger)
	pageHandler := NewPageHandler(rc.Config, paymentsHandler, rc.Cart, rc.Logger)
	redirectHandler := NewRedirectHandler(rc.Checkout, rc.Publisher, rc.Logger)
	assetsHandler := NewAssetsHandler(rc.Assets, rc.Logger)

	router := gin.New()
	router.Use(RequestIDMiddleware(), LoggerMiddleware(rc.Logger), gin.Recovery())
	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", http.FS(rc.Assets))

	// Pages
	router.GET("/", pageHandler.Home)
	router.GET("/cart/:integration", pageHandler.Cart)
	router.GET("/checkout/:integration", pageHandler.Checkout)
	router.GET("/success", pageHandler.Terminal(payments.TargetSuccess))
	router.GET("/pending", pageHandler.Terminal(payments.TargetPending))
	router.GET("/failed", pageHandler.Terminal(payments.TargetFailed))
	router.GET("/error", pageHandler.Terminal(payments.TargetError))
	router.GET("/favicon.ico", assetsHandler.Favicon)

	// API
	api := router.Group("/api")
	{
		api.POST("/getPaymentMethods", paymentsHandler.GetPaymentMethods)
		api.POST("/initiatePayment", paymentsHandler.InitiatePayment)
		api.POST("/submitAdditionalDetails", paymentsHandler.SubmitAdditionalDetails)
		api.GET("/handleShopperRedirect", redirectHandler.HandleRedirectGet)
		api.POST("/handleShopperRedirect", redirectHandler.HandleRedirectPost)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	return router, nil
}

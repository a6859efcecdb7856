package handlers

import (
	"net/http"
	"net/url"

	"cocoti/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentReturnHandler receives the payment provider's return redirect and
// sends the visitor back to the site with a normalized status. The payment
// itself is settled by the backend; nothing is verified here.
func PaymentReturnHandler(c *gin.Context) {
	status := c.Query("status")
	transactionID := c.Query("transaction_id")
	pool := c.Query("pool")

	var path string
	switch status {
	case "success", "completed", "approved":
		path = "/payment/success"
	case "cancel", "cancelled", "canceled":
		path = "/payment/cancelled"
	default:
		path = "/payment/failed"
	}

	target, err := url.Parse(config.AppConfig.SiteBaseURL + path)
	if err != nil {
		getLogger(c).Error("Invalid site base URL", zap.Error(err))
		c.Redirect(http.StatusFound, "/")
		return
	}
	q := target.Query()
	if transactionID != "" {
		q.Set("transaction_id", transactionID)
	}
	if pool != "" {
		q.Set("pool", pool)
	}
	target.RawQuery = q.Encode()

	getLogger(c).Info("Payment return",
		zap.String("status", status), zap.String("transaction_id", transactionID))
	c.Redirect(http.StatusFound, target.String())
}

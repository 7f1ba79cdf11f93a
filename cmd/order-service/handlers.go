package main

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-webhooks/internal/httpx"
	"github.com/MikeMC777/ordenes-webhooks/internal/metrics"
	ord "github.com/MikeMC777/ordenes-webhooks/internal/order"
	"github.com/MikeMC777/ordenes-webhooks/internal/webhook"
)

// Platform webhooks are small; anything past 1 MiB is rejected.
const maxWebhookBody = 1 << 20

// otherTopic labels every delivery whose topic the controller does not handle.
const otherTopic = "other"

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	Error string `json:"error" example:"unknown sort"`
}

// OrderView is an order row as the admin list shows it.
// swagger:model
type OrderView struct {
	ord.Order
	OrderURL string `json:"order_url" example:"https://admin.shopify.com/store/remix-app-exam/apps/remix-app-exam/app/order/450789469"`
	EditURL  string `json:"edit_url"  example:"/app/orderEdit/450789469"`
}

// ListResponse is the admin order list.
// swagger:model
type ListResponse struct {
	Sort  string      `json:"sort" example:"date desc"`
	Items []OrderView `json:"items"`
}

// receiveWebhookHandler godoc
// @Summary      Receive an order webhook
// @Description  Upserts the order carried by an orders/create or orders/updated delivery.
// @Tags         webhooks
// @Accept       json
// @Param        X-Shopify-Topic        header  string  true   "Webhook topic, e.g. orders/create"
// @Param        X-Shopify-Shop-Domain  header  string  false  "Originating shop"
// @Param        X-Shopify-Hmac-Sha256  header  string  false  "Base64 HMAC of the body, required when a secret is configured"
// @Param        payload                body    ord.Payload  true  "Order resource"
// @Success      200
// @Failure      400  {object}  HTTPError
// @Failure      401  {object}  HTTPError
// @Failure      404  {string}  string  "Unhandled webhook topic"
// @Failure      413  {object}  HTTPError
// @Failure      500  {object}  HTTPError
// @Router       /webhooks/orders [post]
func receiveWebhookHandler(ctl *webhook.Controller, secret string, m *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody+1))
		if err != nil {
			c.JSON(http.StatusBadRequest, HTTPError{Error: "cannot read body"})
			return
		}
		if len(body) > maxWebhookBody {
			c.JSON(http.StatusRequestEntityTooLarge, HTTPError{Error: "payload too large"})
			return
		}
		if secret != "" && !webhook.Verify(secret, body, c.GetHeader("X-Shopify-Hmac-Sha256")) {
			c.JSON(http.StatusUnauthorized, HTTPError{Error: "invalid webhook signature"})
			return
		}

		ev := webhook.Event{
			Topic:   webhook.ParseTopic(c.GetHeader("X-Shopify-Topic")),
			Shop:    c.GetHeader("X-Shopify-Shop-Domain"),
			Payload: body,
		}
		start := time.Now()
		outcome, err := ctl.Handle(c.Request.Context(), ev)
		m.WebhookLatency.Observe(time.Since(start).Seconds())

		switch {
		case err == nil:
			m.WebhookEvents.WithLabelValues(string(ev.Topic), string(outcome)).Inc()
			c.Status(http.StatusOK)
		case errors.Is(err, webhook.ErrUnhandledTopic):
			m.WebhookEvents.WithLabelValues(otherTopic, "unhandled").Inc()
			c.String(http.StatusNotFound, "Unhandled webhook topic")
		case errors.Is(err, ord.ErrInvalidPayload):
			m.WebhookEvents.WithLabelValues(string(ev.Topic), "invalid").Inc()
			httpx.L(c).Warn("rejected webhook payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, HTTPError{Error: err.Error()})
		default:
			m.WebhookEvents.WithLabelValues(string(ev.Topic), "failed").Inc()
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, HTTPError{Error: "internal error"})
		}
	}
}

// listOrdersHandler godoc
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        sort  query     string  false  "date desc (default), date asc, total_price asc, total_price desc"
// @Success      200   {object}  ListResponse
// @Failure      400   {object}  HTTPError
// @Failure      500   {object}  HTTPError
// @Router       /orders [get]
func listOrdersHandler(repo ord.Repository, adminURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, key, ok := loadSorted(c, repo)
		if !ok {
			return
		}
		base := strings.TrimRight(adminURL, "/")
		items := make([]OrderView, 0, len(orders))
		for _, o := range orders {
			items = append(items, OrderView{
				Order:    o,
				OrderURL: base + "/app/order/" + o.OrderID,
				EditURL:  "/app/orderEdit/" + o.OrderID,
			})
		}
		c.JSON(http.StatusOK, ListResponse{Sort: string(key), Items: items})
	}
}

// exportOrdersHandler godoc
// @Summary      Export orders as CSV
// @Tags         orders
// @Produce      text/csv
// @Param        sort  query     string  false  "same keys as GET /orders"
// @Success      200   {string}  string  "orders.csv"
// @Failure      400   {object}  HTTPError
// @Failure      500   {object}  HTTPError
// @Router       /orders/export [get]
func exportOrdersHandler(repo ord.Repository, m *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, _, ok := loadSorted(c, repo)
		if !ok {
			return
		}
		m.OrdersExported.Add(float64(len(orders)))
		c.Header("Content-Disposition", `attachment; filename="orders.csv"`)
		c.Data(http.StatusOK, "text/csv;charset=utf-8", []byte(ord.ToCSV(orders)))
	}
}

func loadSorted(c *gin.Context, repo ord.Repository) ([]ord.Order, ord.SortKey, bool) {
	key, err := ord.ParseSort(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, HTTPError{Error: err.Error()})
		return nil, "", false
	}
	orders, err := repo.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, HTTPError{Error: "internal error"})
		return nil, "", false
	}
	return ord.SortOrders(orders, key), key, true
}

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-webhooks/internal/metrics"
	ord "github.com/MikeMC777/ordenes-webhooks/internal/order"
	"github.com/MikeMC777/ordenes-webhooks/internal/order/ordertest"
	"github.com/MikeMC777/ordenes-webhooks/internal/webhook"
)

//
// ---------- HELPERS ----------
//

const adminURL = "https://admin.shopify.com/store/remix-app-exam/apps/remix-app-exam"

func newTestRouter(repo ord.Repository, secret string) *gin.Engine {
	return newRouter(deps{
		repo:     repo,
		log:      zap.NewNop(),
		metrics:  metrics.NewRegistry(),
		secret:   secret,
		adminURL: adminURL,
	})
}

func postWebhook(r http.Handler, topic, body string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Topic", topic)
	req.Header.Set("X-Shopify-Shop-Domain", "remix-app-exam.myshopify.com")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

const orderBody = `{"id": 1001, "order_number": 1, "total_price": "10.00", "payment_gateway_names": ["manual"],
	"customer": {"email": "a@b.com", "first_name": "A", "last_name": "B",
		"default_address": {"address1": "1 Main", "city": "City", "province": "ST", "country": "US"}},
	"tags": "vip"}`

func seeded() *ordertest.MemRepo {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := func(v string) *string { return &v }
	return ordertest.NewMemRepo(
		ord.Order{ID: 1, OrderID: "1001", OrderNumber: "1", TotalPrice: "10.00", Tags: s("vip"), CreatedAt: t1},
		ord.Order{ID: 2, OrderID: "1002", OrderNumber: "2", TotalPrice: "99.50", CreatedAt: t1.Add(48 * time.Hour)},
		ord.Order{ID: 3, OrderID: "1003", OrderNumber: "3", TotalPrice: "5", CreatedAt: t1.Add(24 * time.Hour)},
	)
}

//
// ---------- WEBHOOK ----------
//

func TestWebhook_CreateTwiceKeepsOneOrder(t *testing.T) {
	repo := ordertest.NewMemRepo()
	r := newTestRouter(repo, "")

	for i := 0; i < 2; i++ {
		w := postWebhook(r, "orders/create", orderBody, nil)
		require.Equal(t, http.StatusOK, w.Code, "body=%s", w.Body.String())
		assert.Empty(t, w.Body.String())
	}
	items := repo.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "1001", items[0].OrderID)
	assert.Equal(t, "1 Main, City, ST, US", *items[0].CustomerAddress)
}

func TestWebhook_UpdateUnknownOrderIsOK(t *testing.T) {
	repo := ordertest.NewMemRepo()
	r := newTestRouter(repo, "")

	w := postWebhook(r, "orders/updated", orderBody, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, repo.Writes())
}

func TestWebhook_UnhandledTopic(t *testing.T) {
	repo := ordertest.NewMemRepo()
	r := newTestRouter(repo, "")

	w := postWebhook(r, "orders/delete", orderBody, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Unhandled webhook topic", w.Body.String())
	assert.Zero(t, repo.Writes())
}

func TestWebhook_InvalidPayload(t *testing.T) {
	repo := ordertest.NewMemRepo()
	r := newTestRouter(repo, "")

	w := postWebhook(r, "orders/create", `{"id": 5, "order_number": 5}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "payment_gateway_names")
	assert.Zero(t, repo.Writes())
}

func TestWebhook_StringOrderNumberIsStored(t *testing.T) {
	repo := ordertest.NewMemRepo()
	r := newTestRouter(repo, "")

	w := postWebhook(r, "orders/create", `{"id": 2002, "order_number": "#1", "payment_gateway_names": ["manual"]}`, nil)
	require.Equal(t, http.StatusOK, w.Code, "body=%s", w.Body.String())
	items := repo.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "#1", items[0].OrderNumber)
}

func TestWebhook_StoreFailure(t *testing.T) {
	repo := &ordertest.MemRepo{Err: errors.New("db down")}
	r := newTestRouter(repo, "")

	w := postWebhook(r, "orders/create", orderBody, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestWebhook_Signature(t *testing.T) {
	repo := ordertest.NewMemRepo()
	r := newTestRouter(repo, "shh")

	w := postWebhook(r, "orders/create", orderBody, map[string]string{"X-Shopify-Hmac-Sha256": "bm9wZQ=="})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, repo.Writes())

	w = postWebhook(r, "orders/create", orderBody, map[string]string{
		"X-Shopify-Hmac-Sha256": webhook.Sign("shh", []byte(orderBody)),
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, repo.Writes())
}

func TestWebhook_PayloadTooLarge(t *testing.T) {
	r := newTestRouter(ordertest.NewMemRepo(), "")
	big := `{"tags": "` + strings.Repeat("x", maxWebhookBody) + `"}`

	w := postWebhook(r, "orders/create", big, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

//
// ---------- ADMIN LIST & EXPORT ----------
//

func TestListOrders_DefaultSortAndLinks(t *testing.T) {
	r := newTestRouter(seeded(), "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))
	require.Equal(t, http.StatusOK, w.Code, "body=%s", w.Body.String())

	var got ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "date desc", got.Sort)
	require.Len(t, got.Items, 3)
	assert.Equal(t, "1002", got.Items[0].OrderID)
	assert.Equal(t, "1001", got.Items[2].OrderID)
	assert.Equal(t, adminURL+"/app/order/1002", got.Items[0].OrderURL)
	assert.Equal(t, "/app/orderEdit/1002", got.Items[0].EditURL)
}

func TestListOrders_SortByTotalPrice(t *testing.T) {
	r := newTestRouter(seeded(), "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders?sort=total_price+asc", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	var order []string
	for _, it := range got.Items {
		order = append(order, it.OrderID)
	}
	assert.Equal(t, []string{"1003", "1001", "1002"}, order)
}

func TestListOrders_BadSort(t *testing.T) {
	r := newTestRouter(seeded(), "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders?sort=size+asc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportOrders_CSV(t *testing.T) {
	r := newTestRouter(seeded(), "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/export?sort=date_asc", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv;charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "orders.csv")

	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `1001,1,10.00,,,"","","vip",2024-01-01T00:00:00Z`, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1003,"))
	assert.True(t, strings.HasPrefix(lines[2], "1002,"))
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(ordertest.NewMemRepo(), "")
	postWebhook(r, "orders/create", orderBody, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `webhook_events_total{outcome="created",topic="ORDERS_CREATE"} 1`)
}

func TestMetrics_UnhandledTopicsShareOneSeries(t *testing.T) {
	r := newTestRouter(ordertest.NewMemRepo(), "")
	postWebhook(r, "junk/one", orderBody, nil)
	postWebhook(r, "junk/two", orderBody, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `webhook_events_total{outcome="unhandled",topic="other"} 2`)
	assert.NotContains(t, body, "JUNK_ONE")
	assert.NotContains(t, body, "JUNK_TWO")
	assert.Equal(t, 1, strings.Count(body, `outcome="unhandled"`))
}

func TestSwaggerDocListsRoutes(t *testing.T) {
	r := newTestRouter(ordertest.NewMemRepo(), "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		Paths       map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	for _, p := range []string{"/webhooks/orders", "/orders", "/orders/export"} {
		assert.Contains(t, doc.Paths, p)
	}
	for _, d := range []string{"main.HTTPError", "main.ListResponse", "order.Payload"} {
		assert.Contains(t, doc.Definitions, d)
	}
}

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
}

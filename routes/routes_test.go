package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/handmade-hub/handmade-hub-backend-go/config"
	"github.com/handmade-hub/handmade-hub-backend-go/handlers"
	"github.com/handmade-hub/handmade-hub-backend-go/memstore"
	customMiddleware "github.com/handmade-hub/handmade-hub-backend-go/middleware"
	"github.com/handmade-hub/handmade-hub-backend-go/models"
	"github.com/handmade-hub/handmade-hub-backend-go/services"
	"github.com/handmade-hub/handmade-hub-backend-go/utils"
)

type testApp struct {
	e        *echo.Echo
	jwt      *utils.JWT
	users    *memstore.Users
	products *memstore.Products
	orders   *memstore.Orders
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	cfg := config.Config{JWTSecret: "route-test-secret", TokenTTL: time.Hour, FrontendURL: "http://localhost:3000"}
	logger := zap.NewNop()

	users := memstore.NewUsers()
	products := memstore.NewProducts()
	orders := memstore.NewOrders()
	requests := memstore.NewArtisanRequests()
	carts := memstore.NewCarts()
	reviews := memstore.NewReviews()
	jwt := utils.NewJWT(cfg)

	h := Handlers{
		Auth:            handlers.NewAuthHandler(services.NewAuthService(users, jwt, logger)),
		Orders:          handlers.NewOrderHandler(services.NewOrderService(orders, products, users, logger)),
		ArtisanRequests: handlers.NewArtisanRequestHandler(services.NewArtisanRequestService(requests, users, logger)),
		Products:        handlers.NewProductHandler(services.NewCatalogService(products, users, orders, logger)),
		Users:           handlers.NewUserHandler(services.NewUserService(users, products, logger)),
		Cart:            handlers.NewCartHandler(services.NewCartService(carts, products)),
		Reviews:         handlers.NewReviewHandler(services.NewReviewService(reviews, products, logger)),
		Payments:        handlers.NewPaymentHandler(services.NewPaymentService(utils.NewStripeGateway(cfg))),
	}
	reg := prometheus.NewRegistry()
	e := NewServer(cfg, logger, h, jwt, customMiddleware.NewServerMetrics(reg), reg)
	return &testApp{e: e, jwt: jwt, users: users, products: products, orders: orders}
}

// signUp stores a user directly and returns a bearer token for them.
func (a *testApp) signUp(t *testing.T, role models.Role, status models.ArtisanStatus) (*models.User, string) {
	t.Helper()
	id := primitive.NewObjectID()
	u := services.NewUser("user "+id.Hex()[18:], id.Hex()+"@example.com", "hash", role, time.Now())
	u.ArtisanStatus = status
	require.NoError(t, a.users.Insert(context.Background(), u))
	token, err := a.jwt.Issue(u)
	require.NoError(t, err)
	return u, token
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestOrderFlow(t *testing.T) {
	app := newTestApp(t)
	customer, customerToken := app.signUp(t, models.RoleCustomer, models.ArtisanStatusNone)
	_, strangerToken := app.signUp(t, models.RoleCustomer, models.ArtisanStatusNone)
	artisan, artisanToken := app.signUp(t, models.RoleArtisan, models.ArtisanStatusApproved)
	_, otherArtisanToken := app.signUp(t, models.RoleArtisan, models.ArtisanStatusApproved)
	_, adminToken := app.signUp(t, models.RoleAdmin, models.ArtisanStatusNone)

	rec := app.do(t, http.MethodPost, "/api/products", artisanToken, map[string]any{"name": "Mug", "price": 20, "category": "ceramics"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	product := decode[models.Product](t, rec)
	assert.Equal(t, artisan.ID, product.Artisan)

	rec = app.do(t, http.MethodPost, "/api/orders", customerToken, map[string]any{
		"items":      []map[string]any{{"product": product.ID.Hex(), "quantity": 2}},
		"totalPrice": 40,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	order := decode[models.Order](t, rec)
	assert.Equal(t, artisan.ID, order.Artisan)
	assert.Equal(t, customer.ID, order.Customer)
	orderPath := "/api/orders/" + order.ID.Hex()

	// Static segments win over /:id.
	rec = app.do(t, http.MethodGet, "/api/orders/my-orders", artisanToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[[]models.OrderView](t, rec), 1)

	rec = app.do(t, http.MethodGet, "/api/orders/my", customerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.OrderView](t, rec), 1)

	rec = app.do(t, http.MethodGet, orderPath, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodGet, orderPath, artisanToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"unauthorized role access"}`, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/api/orders/artisan/"+order.ID.Hex(), otherArtisanToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodPut, orderPath+"/tracking", otherArtisanToken, map[string]any{"location": "Nowhere"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodPut, orderPath+"/tracking", artisanToken, map[string]any{"location": "Warehouse", "carrier": "UPS"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view := decode[models.OrderView](t, rec)
	require.Len(t, view.TrackingHistory, 1)
	assert.Equal(t, "pending", view.TrackingHistory[0].Status)
	assert.Equal(t, "Warehouse", view.TrackingHistory[0].Location)
	assert.Equal(t, models.OrderStatusPending, view.Status)

	rec = app.do(t, http.MethodPut, orderPath+"/status", artisanToken, map[string]any{"status": "shipped"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodPut, orderPath+"/status", adminToken, map[string]any{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodPut, orderPath+"/status", adminToken, map[string]any{"status": "delivered"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.OrderStatusDelivered, decode[models.OrderView](t, rec).Status)

	rec = app.do(t, http.MethodGet, "/api/orders/analytics", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	analytics := decode[models.OrderAnalytics](t, rec)
	assert.Equal(t, int64(1), analytics.TotalOrders)
	assert.InDelta(t, 40.0, analytics.TotalRevenue, 1e-9)

	rec = app.do(t, http.MethodGet, "/api/orders/user/"+customer.ID.Hex(), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.OrderView](t, rec), 1)

	rec = app.do(t, http.MethodDelete, orderPath, adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = app.do(t, http.MethodGet, orderPath, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = app.do(t, http.MethodDelete, orderPath, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/orders/not-an-id", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestArtisanRequestFlow(t *testing.T) {
	app := newTestApp(t)
	customer, customerToken := app.signUp(t, models.RoleCustomer, models.ArtisanStatusNone)
	_, adminToken := app.signUp(t, models.RoleAdmin, models.ArtisanStatusNone)

	rec := app.do(t, http.MethodGet, "/api/artisan-requests/my-request", customerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := map[string]any{"brandName": "Loom", "bio": "Weaving"}
	rec = app.do(t, http.MethodPost, "/api/artisan-requests", customerToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	req := decode[models.ArtisanRequest](t, rec)

	rec = app.do(t, http.MethodPost, "/api/artisan-requests", customerToken, body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, req.ID, decode[models.ArtisanRequest](t, rec).ID)

	rec = app.do(t, http.MethodGet, "/api/artisan-requests", customerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/artisan-requests", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[[]models.ArtisanRequestView](t, rec)
	require.Len(t, listed, 1)
	assert.Equal(t, customer.Email, listed[0].User.Email)

	rec = app.do(t, http.MethodPut, "/api/artisan-requests/"+req.ID.Hex(), adminToken, map[string]any{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Artisan request approved")

	user, err := app.users.FindByID(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleArtisan, user.Role)
	assert.Equal(t, models.ArtisanStatusApproved, user.ArtisanStatus)

	rec = app.do(t, http.MethodDelete, "/api/artisan-requests/"+req.ID.Hex(), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRoutes(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{"name": "Ada", "email": "ada@example.com", "password": "longenough"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "User registered as customer")
	assert.NotContains(t, rec.Body.String(), "longenough")

	rec = app.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ada@example.com", "password": "longenough"})
	require.Equal(t, http.StatusOK, rec.Code)
	session := decode[struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}](t, rec)
	require.NotEmpty(t, session.Token)

	rec = app.do(t, http.MethodGet, "/api/users/me", session.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ada@example.com", decode[models.User](t, rec).Email)

	rec = app.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "ada@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"password": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCatalogCartAndReviews(t *testing.T) {
	app := newTestApp(t)
	_, customerToken := app.signUp(t, models.RoleCustomer, models.ArtisanStatusNone)
	artisan, artisanToken := app.signUp(t, models.RoleArtisan, models.ArtisanStatusApproved)
	_, pendingToken := app.signUp(t, models.RoleArtisan, models.ArtisanStatusPending)

	rec := app.do(t, http.MethodPost, "/api/products", pendingToken, map[string]any{"name": "Vase", "price": 5})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/products", artisanToken, map[string]any{"name": "Blue Vase", "price": 35, "category": "ceramics"})
	require.Equal(t, http.StatusCreated, rec.Code)
	vase := decode[models.Product](t, rec)

	rec = app.do(t, http.MethodGet, "/api/products?category=ceramics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Product](t, rec), 1)

	rec = app.do(t, http.MethodGet, "/api/products/my-products", artisanToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Product](t, rec), 1)

	rec = app.do(t, http.MethodGet, "/api/users/artisan/"+artisan.ID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/users/cart", customerToken, map[string]any{
		"items": []map[string]any{{"product": vase.ID.Hex(), "quantity": 1}, {"product": "bogus", "quantity": 3}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cart := decode[struct {
		Items []models.CartLine `json:"items"`
	}](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Blue Vase", cart.Items[0].Name)

	rec = app.do(t, http.MethodPost, "/api/reviews/"+vase.ID.Hex(), customerToken, map[string]any{"rating": 5, "comment": "Lovely"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	review := decode[models.Review](t, rec)

	rec = app.do(t, http.MethodPut, "/api/reviews/"+review.ID.Hex(), customerToken, map[string]any{"rating": 4})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/api/reviews/product/"+vase.ID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	reviews := decode[[]models.Review](t, rec)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)

	rec = app.do(t, http.MethodDelete, "/api/products/"+vase.ID.Hex(), artisanToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPaymentsWithoutStripeKey(t *testing.T) {
	app := newTestApp(t)
	_, token := app.signUp(t, models.RoleCustomer, models.ArtisanStatusNone)

	rec := app.do(t, http.MethodPost, "/api/payments/create-payment-intent", token, map[string]any{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/payments/create-payment-intent", token, map[string]any{"amount": 1000})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"stripe secret key not configured"}`, rec.Body.String())
}

func TestOperationalEndpoints(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = app.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Route not found"}`, rec.Body.String())

	rec = app.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "handmadehub_api_http_requests_total")
}

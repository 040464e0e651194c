package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"microsite-shop/internal/middleware"
	"microsite-shop/internal/model"
	"microsite-shop/internal/repository"
	"microsite-shop/internal/service"
	"microsite-shop/internal/testutil"
	"microsite-shop/internal/ws"
	"microsite-shop/pkg/jwt"
	"microsite-shop/pkg/rajaongkir"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const legacyToken = "admin-session-token"

type testServer struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T, upstreamURL string) *testServer {
	t.Helper()
	db := testutil.NewDB(t)
	hub := ws.NewHub()

	productRepo := repository.NewProductRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	userRepo := repository.NewUserRepo(db)

	tokens := jwt.NewManager("test-secret", time.Hour)
	authSvc := service.NewAuthService(userRepo, tokens, service.AuthOptions{
		AdminPassword:    "admin123",
		LegacyAdminToken: legacyToken,
	})
	client := rajaongkir.NewClient(upstreamURL, "test-key", 5*time.Second, nil)

	h := Handlers{
		Product:   NewProductHandler(service.NewProductService(productRepo, categoryRepo, hub)),
		Category:  NewCategoryHandler(service.NewCategoryService(categoryRepo, productRepo)),
		Order:     NewOrderHandler(service.NewOrderService(db, productRepo, orderRepo, userRepo, hub)),
		Auth:      NewAuthHandler(authSvc),
		Setting:   NewSettingHandler(service.NewSettingService(repository.NewSettingRepo(db))),
		Post:      NewPostHandler(service.NewPostService(repository.NewPostRepo(db))),
		Shipping:  NewShippingHandler(service.NewShippingService(repository.NewGeographyRepo(db), client)),
		Dashboard: NewDashboardHandler(service.NewDashboardService(orderRepo, productRepo)),
		Upload:    NewUploadHandler(service.NewUploadService(service.LocalStorage{Dir: t.TempDir(), URLPrefix: "/uploads"}, 1200)),
	}

	app := fiber.New()
	RegisterRoutes(app, h, middleware.NewAuthenticator(tokens, legacyToken, userRepo), hub, RouteConfig{})
	return &testServer{app: app, db: db}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func errorOf(t *testing.T, body []byte) string {
	t.Helper()
	var e struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &e), string(body))
	return e.Error
}

func TestCheckoutInsufficientStockOverHTTP(t *testing.T) {
	s := newTestServer(t, "http://unused.invalid")
	p := &model.Product{Name: "Widget", Price: decimal.NewFromInt(1000), Stock: 1, Weight: 100, Type: model.ProductPhysical}
	require.NoError(t, s.db.Omit("Category").Create(p).Error)

	status, body := s.do(t, "POST", "/api/orders", "", fiber.Map{
		"email": "g@example.com", "firstName": "G", "lastName": "H",
		"address": "Jl. 1", "city": "Jakarta", "postalCode": "10110",
		"items": []fiber.Map{{"id": p.ID, "quantity": 2, "price": 1000}},
		"total": 2000,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Insufficient stock for Widget", errorOf(t, body))

	var stored model.Product
	require.NoError(t, s.db.First(&stored, p.ID).Error)
	assert.Equal(t, 1, stored.Stock)

	// A bogus token never blocks checkout; it becomes a guest order.
	status, body = s.do(t, "POST", "/api/orders", "not-a-token", fiber.Map{
		"email": "g@example.com", "firstName": "G",
		"address": "Jl. 1", "city": "Jakarta", "postalCode": "10110",
		"items": []fiber.Map{{"id": p.ID, "quantity": 1, "price": 1000}},
		"total": 1000,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var order model.Order
	require.NoError(t, json.Unmarshal(body, &order))
	assert.Nil(t, order.UserID)
	assert.Equal(t, model.OrderPending, order.Status)
}

func TestAdminAccessRules(t *testing.T) {
	s := newTestServer(t, "http://unused.invalid")

	status, body := s.do(t, "POST", "/api/auth/register", "", fiber.Map{"email": "c@example.com", "password": "secret1", "name": "C"})
	require.Equal(t, http.StatusCreated, status, string(body))
	var reg service.AuthResponse
	require.NoError(t, json.Unmarshal(body, &reg))

	status, _ = s.do(t, "GET", "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = s.do(t, "GET", "/api/orders", "garbage", nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = s.do(t, "GET", "/api/orders", reg.Token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = s.do(t, "GET", "/api/orders", legacyToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = s.do(t, "GET", "/api/auth/me", reg.Token, nil)
	require.Equal(t, http.StatusOK, status)
	var me model.UserResponse
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, "c@example.com", me.Email)

	status, body = s.do(t, "GET", "/api/auth/me", legacyToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &me))
	assert.Equal(t, model.RoleAdmin, me.Role)

	status, body = s.do(t, "GET", "/api/orders/my", legacyToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User ID required", errorOf(t, body))

	status, body = s.do(t, "GET", "/api/orders/my", reg.Token, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func TestAdminFeedGate(t *testing.T) {
	s := newTestServer(t, "http://unused.invalid")

	status, body := s.do(t, "POST", "/api/auth/register", "", fiber.Map{"email": "feed@example.com", "password": "secret1", "name": "F"})
	require.Equal(t, http.StatusCreated, status, string(body))
	var reg service.AuthResponse
	require.NoError(t, json.Unmarshal(body, &reg))

	dial := func(query string, upgrade bool) int {
		req := httptest.NewRequest("GET", "/ws"+query, nil)
		if upgrade {
			req.Header.Set("Connection", "Upgrade")
			req.Header.Set("Upgrade", "websocket")
			req.Header.Set("Sec-WebSocket-Version", "13")
			req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
		}
		resp, err := s.app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusUpgradeRequired, dial("?token="+legacyToken, false))
	assert.Equal(t, http.StatusForbidden, dial("", true))
	assert.Equal(t, http.StatusForbidden, dial("?token=garbage", true))
	assert.Equal(t, http.StatusForbidden, dial("?token="+reg.Token, true))
}

func TestLoginEndpoints(t *testing.T) {
	s := newTestServer(t, "http://unused.invalid")

	status, body := s.do(t, "POST", "/api/login", "", fiber.Map{"password": "admin123"})
	require.Equal(t, http.StatusOK, status)
	var resp service.AuthResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, legacyToken, resp.Token)

	status, body = s.do(t, "POST", "/api/login", "", fiber.Map{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid password", errorOf(t, body))

	status, body = s.do(t, "POST", "/api/auth/login", "", fiber.Map{"email": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, legacyToken, resp.Token)

	status, body = s.do(t, "POST", "/api/auth/login", "", fiber.Map{"email": "x@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", errorOf(t, body))
}

func TestCategoryDeleteGuardOverHTTP(t *testing.T) {
	s := newTestServer(t, "http://unused.invalid")

	status, body := s.do(t, "POST", "/api/categories", legacyToken, fiber.Map{"name": "Prints"})
	require.Equal(t, http.StatusCreated, status, string(body))
	var cat model.Category
	require.NoError(t, json.Unmarshal(body, &cat))
	assert.Equal(t, "prints", cat.Slug)

	status, body = s.do(t, "POST", "/api/categories", legacyToken, fiber.Map{"name": "Prints"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Category already exists", errorOf(t, body))

	status, body = s.do(t, "POST", "/api/products", legacyToken, fiber.Map{
		"name": "A3 Print", "price": 120000, "stock": 4, "categoryId": cat.ID,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	var product model.Product
	require.NoError(t, json.Unmarshal(body, &product))
	assert.Equal(t, model.ProductPhysical, product.Type)
	require.NotNil(t, product.Category)
	assert.Equal(t, "Prints", product.Category.Name)

	status, body = s.do(t, "DELETE", fmt.Sprintf("/api/categories/%d", cat.ID), legacyToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, errorOf(t, body), "Cannot delete category with 1 associated products")

	status, _ = s.do(t, "DELETE", fmt.Sprintf("/api/products/%d", product.ID), legacyToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, "DELETE", fmt.Sprintf("/api/categories/%d", cat.ID), legacyToken, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, "GET", fmt.Sprintf("/api/categories/%d", cat.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestShippingForwardsUpstreamStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"meta":{"code":502,"message":"down"}}`))
	}))
	defer upstream.Close()
	s := newTestServer(t, upstream.URL)

	status, body := s.do(t, "GET", "/api/rajaongkir/provinces", "", nil)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.JSONEq(t, `{"meta":{"code":502,"message":"down"}}`, string(body))

	status, body = s.do(t, "GET", "/api/rajaongkir/cities/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid provinceId", errorOf(t, body))
}

func TestSettingsAndPosts(t *testing.T) {
	s := newTestServer(t, "http://unused.invalid")

	status, body := s.do(t, "GET", "/api/settings", "", nil)
	require.Equal(t, http.StatusOK, status)
	var setting model.StoreSetting
	require.NoError(t, json.Unmarshal(body, &setting))
	assert.Equal(t, model.DefaultStoreSetting().StoreName, setting.StoreName)

	status, _ = s.do(t, "PUT", "/api/admin/settings", "", fiber.Map{"storeName": "X"})
	assert.Equal(t, http.StatusUnauthorized, status)
	status, body = s.do(t, "PUT", "/api/admin/settings", legacyToken, fiber.Map{"storeName": "Toko Baru"})
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &setting))
	assert.Equal(t, "Toko Baru", setting.StoreName)

	status, body = s.do(t, "POST", "/api/posts", legacyToken, fiber.Map{"title": "Grand Opening", "content": "We are open."})
	require.Equal(t, http.StatusCreated, status, string(body))
	status, body = s.do(t, "GET", "/api/posts/grand-opening", "", nil)
	require.Equal(t, http.StatusOK, status)
	var post model.Post
	require.NoError(t, json.Unmarshal(body, &post))
	assert.Equal(t, "Grand Opening", post.Title)
	assert.Equal(t, model.DefaultPostAuthor, post.Author)

	status, body = s.do(t, "GET", "/api/admin/stats", legacyToken, nil)
	require.Equal(t, http.StatusOK, status)
	var stats service.DashboardStats
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Len(t, stats.RevenueChart, 7)
}

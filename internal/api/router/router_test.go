package router_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gocatalog/internal/api/product"
	"gocatalog/internal/api/router"
	"gocatalog/internal/api/user"
	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/metrics"
	"gocatalog/internal/pkg/middleware"
	"gocatalog/internal/pkg/token"
)

// stubProductService responde com dados fixos, sem tocar em banco ou IA.
type stubProductService struct{}

func (s *stubProductService) Create(ctx context.Context, create domain.ProductCreate) (domain.Product, error) {
	return domain.Product{ID: "p-novo", Name: create.Name, Description: "Gerada.", Category: "Geral", Price: create.Price, Stock: create.Stock}, nil
}

func (s *stubProductService) FindAll(ctx context.Context) ([]domain.Product, error) {
	return []domain.Product{{ID: "p-1", Name: "Cafeteira"}}, nil
}

func (s *stubProductService) FindByID(ctx context.Context, id string) (domain.Product, error) {
	if id != "p-1" {
		return domain.Product{}, apperror.NewNotFoundError("Produto não encontrado.")
	}
	return domain.Product{ID: "p-1", Name: "Cafeteira"}, nil
}

func (s *stubProductService) Update(ctx context.Context, id string, update domain.ProductUpdate) (domain.Product, error) {
	return domain.Product{ID: id}, nil
}

func (s *stubProductService) Delete(ctx context.Context, id string) error { return nil }

func (s *stubProductService) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return []domain.Product{}, nil
}

func (s *stubProductService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	return []domain.Product{}, nil
}

// stubUserService cumpre o contrato do handler de usuário e também o de
// re-resolução do middleware de autenticação.
type stubUserService struct{}

func (s *stubUserService) Register(ctx context.Context, reg domain.UserRegistration) (domain.AuthResponse, error) {
	return domain.AuthResponse{User: domain.UserView{ID: "user-123", Name: reg.Name, Email: reg.Email}, Token: "token-abc"}, nil
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (domain.AuthResponse, error) {
	return domain.AuthResponse{User: domain.UserView{ID: "user-123", Email: email}, Token: "token-abc"}, nil
}

func (s *stubUserService) GetByID(ctx context.Context, id string) (domain.UserView, error) {
	if id != "user-123" {
		return domain.UserView{}, apperror.NewNotFoundError("Usuário não encontrado.")
	}
	return domain.UserView{ID: "user-123", Name: "Maria", Email: "maria@exemplo.com"}, nil
}

func (s *stubUserService) Update(ctx context.Context, id string, update domain.UserUpdate) (domain.UserView, error) {
	return domain.UserView{ID: id}, nil
}

func newTestRouter() (http.Handler, *token.Service) {
	log := logger.NewLogger("error")
	collector := metrics.NewCollector()
	tokenSvc := token.NewService("segredo-de-teste", time.Hour)
	userSvc := &stubUserService{}

	deps := router.Deps{
		ProductHandler:    product.NewHandler(&stubProductService{}, log),
		UserHandler:       user.NewHandler(userSvc, log),
		AuthMiddleware:    middleware.NewAuthMiddleware(tokenSvc, userSvc),
		CORSMiddleware:    middleware.NewCORSMiddleware("http://localhost:3000"),
		LoggingMiddleware: middleware.NewLoggingMiddleware(log, collector),
		MetricsHandler:    collector.Handler(),
	}
	return router.NewRouter(deps), tokenSvc
}

func doRequest(handler http.Handler, method, path, body, bearer string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Ping(t *testing.T) {
	handler, _ := newTestRouter()

	rec := doRequest(handler, http.MethodGet, "/ping", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	handler, _ := newTestRouter()

	rec := doRequest(handler, http.MethodGet, "/metrics", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_PublicProductRoutes(t *testing.T) {
	handler, _ := newTestRouter()

	// Leitura de produtos não exige token
	assert.Equal(t, http.StatusOK, doRequest(handler, http.MethodGet, "/products", "", "").Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, http.MethodGet, "/products/p-1", "", "").Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, http.MethodGet, "/products/search?q=cafe", "", "").Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, http.MethodGet, "/products/category/Geral", "", "").Code)
}

func TestRouter_ProductNotFound(t *testing.T) {
	handler, _ := newTestRouter()

	rec := doRequest(handler, http.MethodGet, "/products/p-fantasma", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body domain.ErrorResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "NOT_FOUND", body.Category)
}

// TestRouter_ProtectedRoutesRequireToken varre as rotas de escrita e garante
// que todas rejeitam requisições sem Authorization.
func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	handler, _ := newTestRouter()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/products"},
		{http.MethodPut, "/products/p-1"},
		{http.MethodDelete, "/products/p-1"},
		{http.MethodGet, "/users/me"},
		{http.MethodPut, "/users"},
	}

	for _, tc := range cases {
		rec := doRequest(handler, tc.method, tc.path, `{}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s deveria exigir token", tc.method, tc.path)

		var body domain.ErrorResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, "MISSING_TOKEN", body.Category)
	}
}

func TestRouter_CreateProductAuthenticated(t *testing.T) {
	handler, tokenSvc := newTestRouter()

	tokenString, err := tokenSvc.GenerateToken("user-123")
	assert.NoError(t, err)

	rec := doRequest(handler, http.MethodPost, "/products", `{"name": "Cafeteira", "price": 199.90, "stock": 10}`, tokenString)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Product
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "Cafeteira", created.Name)
	// A descrição e a categoria vêm preenchidas na resposta de criação
	assert.NotEmpty(t, created.Description)
	assert.NotEmpty(t, created.Category)
}

func TestRouter_DeleteProductReturnsNoContent(t *testing.T) {
	handler, tokenSvc := newTestRouter()

	tokenString, err := tokenSvc.GenerateToken("user-123")
	assert.NoError(t, err)

	rec := doRequest(handler, http.MethodDelete, "/products/p-1", "", tokenString)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRouter_RegisterAndLoginArePublic(t *testing.T) {
	handler, _ := newTestRouter()

	rec := doRequest(handler, http.MethodPost, "/users/register", `{"name": "Maria", "email": "maria@exemplo.com", "password": "segredo123"}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	var auth domain.AuthResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&auth))
	assert.NotEmpty(t, auth.Token)

	rec = doRequest(handler, http.MethodPost, "/users/login", `{"email": "maria@exemplo.com", "password": "segredo123"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_MeWithValidToken(t *testing.T) {
	handler, tokenSvc := newTestRouter()

	tokenString, err := tokenSvc.GenerateToken("user-123")
	assert.NoError(t, err)

	rec := doRequest(handler, http.MethodGet, "/users/me", "", tokenString)

	assert.Equal(t, http.StatusOK, rec.Code)

	var view domain.UserView
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, "user-123", view.ID)
}

// TestRouter_TokenOfDeletedUser garante que um token criptograficamente
// válido de um usuário inexistente é rejeitado.
func TestRouter_TokenOfDeletedUser(t *testing.T) {
	handler, tokenSvc := newTestRouter()

	tokenString, err := tokenSvc.GenerateToken("user-apagado")
	assert.NoError(t, err)

	rec := doRequest(handler, http.MethodGet, "/users/me", "", tokenString)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	handler, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "gocatalog/docs" // registro da especificação OpenAPI gerada pelo swag
	"gocatalog/internal/api/product"
	"gocatalog/internal/api/user"
)

// Middleware é o formato padrão de middleware HTTP usado pelo roteador.
type Middleware func(next http.Handler) http.Handler

// Deps agrupa tudo que o roteador precisa receber por injeção de dependências.
type Deps struct {
	ProductHandler *product.Handler
	UserHandler    *user.Handler

	// AuthMiddleware protege as rotas que exigem usuário autenticado.
	AuthMiddleware Middleware
	// CORSMiddleware e LoggingMiddleware são globais.
	CORSMiddleware    Middleware
	LoggingMiddleware Middleware

	// MetricsHandler serve o endpoint /metrics (Prometheus).
	MetricsHandler http.Handler
}

// NewRouter configura e retorna o roteador HTTP principal.
// A tabela de rotas segue o contrato da API: as rotas de leitura de produtos
// são públicas; escrita de produtos e perfil exigem Bearer token.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Middlewares globais (ordem: log por fora, CORS por dentro)
	r.Use(deps.LoggingMiddleware)
	r.Use(deps.CORSMiddleware)

	// --- 1. Rotas de infraestrutura ---
	r.Get("/ping", PingHandler)
	r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// --- 2. Rotas do Módulo de Usuários ---
	r.Route("/users", func(r chi.Router) {
		r.Post("/register", deps.UserHandler.RegisterUserHandler)
		r.Post("/login", deps.UserHandler.LoginUserHandler)

		// Rotas autenticadas
		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware)
			r.Get("/me", deps.UserHandler.MeHandler)
			r.Put("/", deps.UserHandler.UpdateUserHandler)
		})
	})

	// --- 3. Rotas do Módulo de Produtos ---
	r.Route("/products", func(r chi.Router) {
		// Rotas públicas (leitura)
		r.Get("/", deps.ProductHandler.ListProductsHandler)
		r.Get("/search", deps.ProductHandler.SearchProductsHandler)
		r.Get("/category/{category}", deps.ProductHandler.GetByCategoryHandler)
		r.Get("/{id}", deps.ProductHandler.GetProductByIDHandler)

		// Rotas autenticadas (escrita)
		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware)
			r.Post("/", deps.ProductHandler.CreateProductHandler)
			r.Put("/{id}", deps.ProductHandler.UpdateProductHandler)
			r.Delete("/{id}", deps.ProductHandler.DeleteProductHandler)
		})
	})

	return r
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

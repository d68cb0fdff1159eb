package product

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/middleware"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	Create(ctx context.Context, create domain.ProductCreate) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, error)
	Update(ctx context.Context, id string, update domain.ProductUpdate) (domain.Product, error)
	Delete(ctx context.Context, id string) error
	FindByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Search(ctx context.Context, query string) ([]domain.Product, error)
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		if data == nil && successStatus == http.StatusNoContent {
			w.WriteHeader(successStatus)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	// TRATAMENTO DE ERROS: tradução do erro tipado para o contrato HTTP.
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error("Erro interno no serviço de produto:", err)
	} else {
		h.Logger.Debug("Requisição rejeitada.", map[string]interface{}{
			"path":     r.URL.Path,
			"status":   status,
			"category": category,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// CreateProductHandler lida com a requisição POST /products.
// @Summary Cria um novo produto
// @Description Valida preço/estoque, gera descrição e categoria via IA e persiste. Se a geração falhar, nada é salvo.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body domain.ProductCreate true "Dados do produto (nome, preço, estoque opcional)"
// @Success 201 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse "Preço ou estoque negativos"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 500 {object} domain.ErrorResponse "Falha na geração de descrição/categoria"
// @Router /products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
		h.Logger.Debug("Criação de produto solicitada.", map[string]interface{}{"user_id": userID})
	}

	var create domain.ProductCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusCreated)
		return
	}

	newProduct, err := h.Service.Create(ctx, create)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	h.handleServiceResponse(w, r, newProduct, nil, http.StatusCreated)
}

// ListProductsHandler lida com a requisição GET /products.
// @Summary Lista todos os produtos (mais recentes primeiro)
// @Tags products
// @Produce json
// @Success 200 {array} domain.Product
// @Router /products [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.FindAll(r.Context())
	h.handleServiceResponse(w, r, products, err, http.StatusOK)
}

// GetProductByIDHandler lida com a requisição GET /products/{id}.
// @Summary Busca um produto pelo ID
// @Tags products
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /products/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.Service.FindByID(r.Context(), id)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, product, nil, http.StatusOK)
}

// UpdateProductHandler lida com a requisição PUT /products/{id}.
// @Summary Atualiza parcialmente um produto
// @Description Somente os campos presentes no payload são alterados; os demais mantêm o valor anterior.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param update body domain.ProductUpdate true "Campos a atualizar"
// @Success 200 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse "Preço ou estoque negativos"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /products/{id} [put]
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var update domain.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusOK)
		return
	}

	product, err := h.Service.Update(r.Context(), id, update)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, product, nil, http.StatusOK)
}

// DeleteProductHandler lida com a requisição DELETE /products/{id}.
// @Summary Remove um produto permanentemente
// @Tags products
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 204 "Removido com sucesso (corpo vazio)"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /products/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(r.Context(), id); err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
		return
	}

	h.handleServiceResponse(w, r, nil, nil, http.StatusNoContent)
}

// SearchProductsHandler lida com a requisição GET /products/search?q=.
// @Summary Busca produtos por substring (nome, descrição ou categoria)
// @Tags products
// @Produce json
// @Param q query string true "Termo de busca (case-insensitive)"
// @Success 200 {array} domain.Product
// @Router /products/search [get]
func (h *Handler) SearchProductsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	products, err := h.Service.Search(r.Context(), query)
	h.handleServiceResponse(w, r, products, err, http.StatusOK)
}

// GetByCategoryHandler lida com a requisição GET /products/category/{category}.
// @Summary Lista produtos por categoria (match exato)
// @Tags products
// @Produce json
// @Param category path string true "Categoria"
// @Success 200 {array} domain.Product
// @Router /products/category/{category} [get]
func (h *Handler) GetByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	products, err := h.Service.FindByCategory(r.Context(), category)
	h.handleServiceResponse(w, r, products, err, http.StatusOK)
}

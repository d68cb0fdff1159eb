package productservice

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
)

// MetricsRecorder é o contrato mínimo de métricas que o serviço alimenta.
type MetricsRecorder interface {
	RecordProductCreated()
	RecordEnrichmentFailure()
}

// Service é a estrutura que implementa a interface domain.ProductService.
type Service struct {
	repo     domain.ProductRepository
	enricher domain.ProductEnricher
	metrics  MetricsRecorder // pode ser nil (e.g., em testes)
	logger   logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo domain.ProductRepository, enricher domain.ProductEnricher, collector MetricsRecorder, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		enricher: enricher,
		metrics:  collector,
		logger:   log,
	}
}

// Create valida, enriquece e então persiste um novo produto.
// A ordem importa: o colaborador de IA é chamado ANTES de qualquer escrita.
// Se o enriquecimento falhar, nada é persistido (sem estado parcial).
func (s *Service) Create(ctx context.Context, create domain.ProductCreate) (domain.Product, error) {
	// 1. Validação de Regras de Negócio
	if create.Name == "" {
		return domain.Product{}, apperror.NewValidationError("O nome do produto é obrigatório.")
	}
	if create.Price < 0 {
		return domain.Product{}, apperror.NewInvalidPriceError()
	}
	if create.Stock < 0 {
		return domain.Product{}, apperror.NewInvalidStockError()
	}

	// 2. Enriquecimento (descrição e categoria geradas pelo colaborador)
	details, err := s.enricher.GenerateProductDetails(ctx, create.Name)
	if err != nil {
		s.logger.Error("Falha no enriquecimento do produto.", err)
		if s.metrics != nil {
			s.metrics.RecordEnrichmentFailure()
		}
		return domain.Product{}, apperror.NewEnrichmentError(err)
	}

	// 3. Montagem da entidade
	now := time.Now().UTC()
	product := domain.Product{
		ID:          uuid.NewString(),
		Name:        create.Name,
		Description: details.Description,
		Price:       create.Price,
		Stock:       create.Stock,
		Category:    details.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// 4. Delegação para a Camada de Persistência
	created, err := s.repo.Save(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}

	if s.metrics != nil {
		s.metrics.RecordProductCreated()
	}
	s.logger.Info("Produto criado com sucesso.", map[string]interface{}{
		"product_id": created.ID,
		"category":   created.Category,
	})
	return created, nil
}

// FindAll lista todos os produtos (mais recentes primeiro).
func (s *Service) FindAll(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

// FindByID busca um produto pelo identificador.
func (s *Service) FindByID(ctx context.Context, id string) (domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Update aplica uma atualização parcial: só os campos presentes no payload
// mudam; os demais mantêm o valor anterior do documento. Strings vazias
// contam como campo ausente: nome, descrição e categoria nunca são apagados.
func (s *Service) Update(ctx context.Context, id string, update domain.ProductUpdate) (domain.Product, error) {
	if update.Name != nil && *update.Name == "" {
		update.Name = nil
	}
	if update.Description != nil && *update.Description == "" {
		update.Description = nil
	}
	if update.Category != nil && *update.Category == "" {
		update.Category = nil
	}

	// 1. O produto precisa existir
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	// 2. Validação de limites apenas nos campos presentes
	if update.Price != nil && *update.Price < 0 {
		return domain.Product{}, apperror.NewInvalidPriceError()
	}
	if update.Stock != nil && *update.Stock < 0 {
		return domain.Product{}, apperror.NewInvalidStockError()
	}

	// 3. Merge dos campos informados
	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Stock != nil {
		product.Stock = *update.Stock
	}
	if update.Category != nil {
		product.Category = *update.Category
	}

	// 4. Persistência do documento completo já mesclado
	return s.repo.Update(ctx, product)
}

// Delete remove o produto permanentemente.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// FindByCategory lista produtos com a categoria exata informada.
func (s *Service) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.repo.FindByCategory(ctx, category)
}

// Search busca por substring (case-insensitive) em nome, descrição e categoria.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Product, error) {
	return s.repo.Search(ctx, query)
}

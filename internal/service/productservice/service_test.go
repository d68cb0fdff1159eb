package productservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/service/productservice"
)

// MockProductRepository é uma implementação mock da interface domain.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, query string) ([]domain.Product, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.Product), args.Error(1)
}

// MockEnricher simula o colaborador externo de geração de texto.
type MockEnricher struct {
	mock.Mock
}

func (m *MockEnricher) GenerateProductDetails(ctx context.Context, productName string) (domain.ProductDetails, error) {
	args := m.Called(ctx, productName)
	return args.Get(0).(domain.ProductDetails), args.Error(1)
}

func newTestLogger() logger.Logger {
	return logger.NewLogger("error")
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }
func strPtr(s string) *string     { return &s }

// --- Testes para Create ---

func TestCreate_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEnricher := new(MockEnricher)

	mockEnricher.On("GenerateProductDetails", mock.Anything, "Cafeteira Elétrica").
		Return(domain.ProductDetails{
			Description: "Cafeteira elétrica com jarra de vidro de 1,2 litro.",
			Category:    "Eletrodomésticos",
		}, nil)

	var savedProduct domain.Product
	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("domain.Product")).
		Run(func(args mock.Arguments) { savedProduct = args.Get(1).(domain.Product) }).
		Return(domain.Product{ID: "p-1", Name: "Cafeteira Elétrica", Category: "Eletrodomésticos"}, nil)

	svc := productservice.NewService(mockRepo, mockEnricher, nil, newTestLogger())

	created, err := svc.Create(context.Background(), domain.ProductCreate{
		Name:  "Cafeteira Elétrica",
		Price: 199.90,
		Stock: 15,
	})

	assert.NoError(t, err)
	assert.Equal(t, "p-1", created.ID)

	// O documento persistido já vai enriquecido e com id/timestamps atribuídos
	assert.NotEmpty(t, savedProduct.ID)
	assert.Equal(t, "Cafeteira elétrica com jarra de vidro de 1,2 litro.", savedProduct.Description)
	assert.Equal(t, "Eletrodomésticos", savedProduct.Category)
	assert.Equal(t, 199.90, savedProduct.Price)
	assert.Equal(t, 15, savedProduct.Stock)
	assert.False(t, savedProduct.CreatedAt.IsZero())
	assert.Equal(t, savedProduct.CreatedAt, savedProduct.UpdatedAt)

	mockRepo.AssertExpectations(t)
	mockEnricher.AssertExpectations(t)
}

func TestCreate_MissingName(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEnricher := new(MockEnricher)

	svc := productservice.NewService(mockRepo, mockEnricher, nil, newTestLogger())

	_, err := svc.Create(context.Background(), domain.ProductCreate{Price: 10, Stock: 1})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	// A validação acontece antes de qualquer efeito colateral
	mockEnricher.AssertNotCalled(t, "GenerateProductDetails", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreate_NegativePrice(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEnricher := new(MockEnricher)

	svc := productservice.NewService(mockRepo, mockEnricher, nil, newTestLogger())

	_, err := svc.Create(context.Background(), domain.ProductCreate{Name: "Produto", Price: -1, Stock: 1})

	assert.Error(t, err)
	assert.IsType(t, &apperror.InvalidPriceError{}, err)
	mockEnricher.AssertNotCalled(t, "GenerateProductDetails", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreate_NegativeStock(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEnricher := new(MockEnricher)

	svc := productservice.NewService(mockRepo, mockEnricher, nil, newTestLogger())

	_, err := svc.Create(context.Background(), domain.ProductCreate{Name: "Produto", Price: 10, Stock: -3})

	assert.Error(t, err)
	assert.IsType(t, &apperror.InvalidStockError{}, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestCreate_EnrichmentFailure garante que, quando o colaborador externo
// falha, nada é persistido (sem documento parcial no banco).
func TestCreate_EnrichmentFailure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockEnricher := new(MockEnricher)

	mockEnricher.On("GenerateProductDetails", mock.Anything, "Produto Azarado").
		Return(domain.ProductDetails{}, errors.New("timeout na chamada externa"))

	svc := productservice.NewService(mockRepo, mockEnricher, nil, newTestLogger())

	_, err := svc.Create(context.Background(), domain.ProductCreate{Name: "Produto Azarado", Price: 10, Stock: 1})

	assert.Error(t, err)
	assert.IsType(t, &apperror.EnrichmentError{}, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)

	// O erro original fica encapsulado para o log, mas a mensagem ao cliente é fixa
	status, category, msg := apperror.MapToHTTPStatus(err)
	assert.Equal(t, 500, status)
	assert.Equal(t, "ENRICHMENT_FAILED", category)
	assert.Equal(t, "Erro ao gerar detalhes do produto. Por favor, tente novamente.", msg)
}

// --- Testes para Update ---

func TestUpdate_PartialPriceOnly(t *testing.T) {
	mockRepo := new(MockProductRepository)

	existing := domain.Product{
		ID:          "p-1",
		Name:        "Cafeteira Elétrica",
		Description: "Descrição original.",
		Price:       199.90,
		Stock:       15,
		Category:    "Eletrodomésticos",
	}
	mockRepo.On("FindByID", mock.Anything, "p-1").Return(existing, nil)

	var updatedProduct domain.Product
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("domain.Product")).
		Run(func(args mock.Arguments) { updatedProduct = args.Get(1).(domain.Product) }).
		Return(existing, nil)

	svc := productservice.NewService(mockRepo, new(MockEnricher), nil, newTestLogger())

	_, err := svc.Update(context.Background(), "p-1", domain.ProductUpdate{Price: floatPtr(149.90)})

	assert.NoError(t, err)
	// Somente o preço mudou; os demais campos permanecem intactos
	assert.Equal(t, 149.90, updatedProduct.Price)
	assert.Equal(t, "Cafeteira Elétrica", updatedProduct.Name)
	assert.Equal(t, "Descrição original.", updatedProduct.Description)
	assert.Equal(t, 15, updatedProduct.Stock)
	assert.Equal(t, "Eletrodomésticos", updatedProduct.Category)
}

func TestUpdate_AllFields(t *testing.T) {
	mockRepo := new(MockProductRepository)

	existing := domain.Product{ID: "p-1", Name: "Antigo", Price: 10, Stock: 1, Category: "Velha"}
	mockRepo.On("FindByID", mock.Anything, "p-1").Return(existing, nil)

	var updatedProduct domain.Product
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("domain.Product")).
		Run(func(args mock.Arguments) { updatedProduct = args.Get(1).(domain.Product) }).
		Return(existing, nil)

	svc := productservice.NewService(mockRepo, new(MockEnricher), nil, newTestLogger())

	_, err := svc.Update(context.Background(), "p-1", domain.ProductUpdate{
		Name:        strPtr("Novo"),
		Description: strPtr("Nova descrição."),
		Price:       floatPtr(25.50),
		Stock:       intPtr(99),
		Category:    strPtr("Nova"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Novo", updatedProduct.Name)
	assert.Equal(t, "Nova descrição.", updatedProduct.Description)
	assert.Equal(t, 25.50, updatedProduct.Price)
	assert.Equal(t, 99, updatedProduct.Stock)
	assert.Equal(t, "Nova", updatedProduct.Category)
}

// TestUpdate_EmptyStringsAreIgnored garante que strings vazias no payload
// não apagam nome, descrição nem categoria do documento.
func TestUpdate_EmptyStringsAreIgnored(t *testing.T) {
	mockRepo := new(MockProductRepository)

	existing := domain.Product{
		ID:          "p-1",
		Name:        "Cafeteira Elétrica",
		Description: "Descrição original.",
		Price:       199.90,
		Stock:       15,
		Category:    "Eletrodomésticos",
	}
	mockRepo.On("FindByID", mock.Anything, "p-1").Return(existing, nil)

	var updatedProduct domain.Product
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("domain.Product")).
		Run(func(args mock.Arguments) { updatedProduct = args.Get(1).(domain.Product) }).
		Return(existing, nil)

	svc := productservice.NewService(mockRepo, new(MockEnricher), nil, newTestLogger())

	_, err := svc.Update(context.Background(), "p-1", domain.ProductUpdate{
		Name:        strPtr(""),
		Description: strPtr(""),
		Category:    strPtr(""),
		Price:       floatPtr(149.90),
	})

	assert.NoError(t, err)
	// Apenas o preço mudou; os campos de texto mantêm o valor anterior
	assert.Equal(t, 149.90, updatedProduct.Price)
	assert.Equal(t, "Cafeteira Elétrica", updatedProduct.Name)
	assert.Equal(t, "Descrição original.", updatedProduct.Description)
	assert.Equal(t, "Eletrodomésticos", updatedProduct.Category)
}

func TestUpdate_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindByID", mock.Anything, "p-fantasma").
		Return(domain.Product{}, apperror.NewNotFoundError("Produto não encontrado."))

	svc := productservice.NewService(mockRepo, new(MockEnricher), nil, newTestLogger())

	_, err := svc.Update(context.Background(), "p-fantasma", domain.ProductUpdate{Price: floatPtr(1)})

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_NegativePrice(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindByID", mock.Anything, "p-1").
		Return(domain.Product{ID: "p-1", Name: "Produto", Price: 10}, nil)

	svc := productservice.NewService(mockRepo, new(MockEnricher), nil, newTestLogger())

	_, err := svc.Update(context.Background(), "p-1", domain.ProductUpdate{Price: floatPtr(-0.01)})

	assert.Error(t, err)
	assert.IsType(t, &apperror.InvalidPriceError{}, err)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_NegativeStock(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindByID", mock.Anything, "p-1").
		Return(domain.Product{ID: "p-1", Name: "Produto", Stock: 5}, nil)

	svc := productservice.NewService(mockRepo, new(MockEnricher), nil, newTestLogger())

	_, err := svc.Update(context.Background(), "p-1", domain.ProductUpdate{Stock: intPtr(-1)})

	assert.Error(t, err)
	assert.IsType(t, &apperror.InvalidStockError{}, err)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// --- Testes para consultas e remoção ---

func TestFindAll_Passthrough(t *testing.T) {
	mockRepo := new(MockProductRepository)
	products := []domain.Product{{ID: "p-2", Name: "Mais recente"}, {ID: "p-1", Name: "Mais antigo"}}
	mockRepo.On("FindAll", mock.Anything).Return(products, nil)

	svc := productservice.NewService(mockRepo, new(MockEnricher), nil, newTestLogger())

	result, err := svc.FindAll(context.Background())

	assert.NoError(t, err)
	// A ordenação (mais recente primeiro) vem do repositório e é preservada
	assert.Equal(t, products, result)
}

func TestFindByID_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindByID", mock.Anything, "p-fantasma").
		Return(domain.Product{}, apperror.NewNotFoundError("Produto não encontrado."))

	svc := productservice.NewService(mockRepo, new(MockEnricher), nil, newTestLogger())

	_, err := svc.FindByID(context.Background(), "p-fantasma")

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestDelete_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("Delete", mock.Anything, "p-fantasma").
		Return(apperror.NewNotFoundError("Produto não encontrado."))

	svc := productservice.NewService(mockRepo, new(MockEnricher), nil, newTestLogger())

	err := svc.Delete(context.Background(), "p-fantasma")

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
}

func TestSearch_Passthrough(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("Search", mock.Anything, "cafe").
		Return([]domain.Product{{ID: "p-1", Name: "Cafeteira"}}, nil)

	svc := productservice.NewService(mockRepo, new(MockEnricher), nil, newTestLogger())

	result, err := svc.Search(context.Background(), "cafe")

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, "Cafeteira", result[0].Name)
}

func TestFindByCategory_EmptyResult(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockRepo.On("FindByCategory", mock.Anything, "Inexistente").
		Return([]domain.Product{}, nil)

	svc := productservice.NewService(mockRepo, new(MockEnricher), nil, newTestLogger())

	result, err := svc.FindByCategory(context.Background(), "Inexistente")

	assert.NoError(t, err)
	// Categoria sem produtos devolve lista vazia, não erro
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

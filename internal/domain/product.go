package domain

import (
	"context"
	"time"
)

// Product representa o item principal do catálogo (a Entidade).
// Descrição e categoria são geradas pelo colaborador de IA no momento da criação.
type Product struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Stock       int       `json:"stock" bson:"stock"`
	Category    string    `json:"category" bson:"category"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// ProductCreate representa o payload de criação de produto.
// Estoque ausente assume 0; descrição/categoria vêm do enriquecimento.
type ProductCreate struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// ProductUpdate representa o payload de atualização parcial.
// Campos nil mantêm o valor anterior do documento.
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
}

// ProductDetails é o resultado do colaborador externo de geração de texto.
type ProductDetails struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

// --- Interfaces de Contrato (O CORAÇÃO DA ARQUITETURA LIMPA) ---

// ProductService é a interface que a camada de Serviço (Business Logic) DEVE implementar.
// Ela define o que o Handler (Camada API) pode pedir para a camada de Serviço fazer.
type ProductService interface {
	Create(ctx context.Context, create ProductCreate) (Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id string) (Product, error)
	Update(ctx context.Context, id string, update ProductUpdate) (Product, error)
	Delete(ctx context.Context, id string) error
	FindByCategory(ctx context.Context, category string) ([]Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
}

// ProductRepository é a interface que a camada de Repositório (Data Access) DEVE implementar.
type ProductRepository interface {
	Save(ctx context.Context, product Product) (Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id string) (Product, error)
	Update(ctx context.Context, product Product) (Product, error)
	Delete(ctx context.Context, id string) error
	FindByCategory(ctx context.Context, category string) ([]Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
}

// ProductEnricher é o contrato do colaborador externo de geração de texto.
// A falha do colaborador impede a criação do produto (nada é persistido).
type ProductEnricher interface {
	GenerateProductDetails(ctx context.Context, productName string) (ProductDetails, error)
}

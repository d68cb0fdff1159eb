package productrepo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/database"
	"gocatalog/internal/pkg/logger"
)

// ProductRepository implementa a interface domain.ProductRepository sobre a
// collection "products" do MongoDB.
type ProductRepository struct {
	Col       *mongo.Collection
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewProductRepository cria e retorna uma nova instância do Repositório.
func NewProductRepository(db *mongo.Database, dbTimeout time.Duration, log logger.Logger) *ProductRepository {
	return &ProductRepository{
		Col:       db.Collection(database.ColProducts),
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Save persiste um novo Produto já enriquecido.
// O Serviço só chama Save depois que o enriquecimento teve sucesso, então
// nunca existe documento sem descrição/categoria.
func (r *ProductRepository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if _, err := r.Col.InsertOne(ctxTimeout, product); err != nil {
		r.logger.Error("Falha ao inserir produto no DB.", err)
		return domain.Product{}, apperror.NewDBError("failed to insert product", err)
	}

	return product, nil
}

// FindAll retorna todos os produtos, ordenados por criação (mais recente primeiro).
func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.findMany(ctxTimeout, bson.D{}, opts)
}

// FindByID busca um produto pelo ID.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var product domain.Product
	err := r.Col.FindOne(ctxTimeout, bson.D{{Key: "_id", Value: id}}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %s não encontrado.", id))
		}
		return domain.Product{}, apperror.NewDBError("failed to find product", err)
	}

	return product, nil
}

// Update grava o documento completo já mesclado pela camada de serviço.
func (r *ProductRepository) Update(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	product.UpdatedAt = time.Now().UTC()

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: product.Name},
		{Key: "description", Value: product.Description},
		{Key: "price", Value: product.Price},
		{Key: "stock", Value: product.Stock},
		{Key: "category", Value: product.Category},
		{Key: "updated_at", Value: product.UpdatedAt},
	}}}

	res, err := r.Col.UpdateOne(ctxTimeout, bson.D{{Key: "_id", Value: product.ID}}, update)
	if err != nil {
		r.logger.Error("Falha ao atualizar produto no DB.", err)
		return domain.Product{}, apperror.NewDBError("failed to update product", err)
	}
	if res.MatchedCount == 0 {
		return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %s não encontrado.", product.ID))
	}

	return product, nil
}

// Delete remove o produto permanentemente.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.Col.DeleteOne(ctxTimeout, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		r.logger.Error("Falha ao remover produto no DB.", err)
		return apperror.NewDBError("failed to delete product", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %s não encontrado.", id))
	}

	return nil
}

// FindByCategory retorna os produtos com a categoria exata informada.
func (r *ProductRepository) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	return r.findMany(ctxTimeout, bson.D{{Key: "category", Value: category}})
}

// Search faz busca por substring (case-insensitive) em nome, descrição e
// categoria. O termo é escapado antes de virar regex: a semântica contratual
// é substring, não expressão regular.
func (r *ProductRepository) Search(ctx context.Context, query string) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	pattern := bson.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "name", Value: pattern}},
		bson.D{{Key: "description", Value: pattern}},
		bson.D{{Key: "category", Value: pattern}},
	}}}

	return r.findMany(ctxTimeout, filter)
}

// findMany executa um Find e decodifica o cursor em uma slice.
// Retorna slice vazia (nunca nil) quando não há resultados.
func (r *ProductRepository) findMany(ctx context.Context, filter bson.D, opts ...options.Lister[options.FindOptions]) ([]domain.Product, error) {
	cursor, err := r.Col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, apperror.NewDBError("failed to query products", err)
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	for cursor.Next(ctx) {
		var p domain.Product
		if err := cursor.Decode(&p); err != nil {
			return nil, apperror.NewDBError("failed to decode product", err)
		}
		products = append(products, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate products", err)
	}

	return products, nil
}

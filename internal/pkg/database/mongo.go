package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Nomes das collections usadas pelos repositórios.
const (
	ColUsers    = "users"
	ColProducts = "products"
)

// NewMongoDB abre a conexão com o MongoDB, valida com um PING e garante os
// índices necessários. Esta função é chamada no main.go.
//
// uri: URI de conexão, e.g. "mongodb://localhost:27017"
// dbName: nome do banco, e.g. "gocatalog"
func NewMongoDB(uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("falha ao conectar ao MongoDB: %w", err)
	}

	// Teste de conexão: PING para garantir que o banco está disponível.
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("falha no ping ao MongoDB: %w", err)
	}

	db := client.Database(dbName)

	// Índices são garantidos no startup; substituem migrações SQL.
	if err := ensureIndexes(ctx, db); err != nil {
		return nil, nil, fmt.Errorf("falha ao criar índices: %w", err)
	}

	return client, db, nil
}

// Close encerra a conexão com o MongoDB com um timeout curto.
func Close(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

// ensureIndexes cria todos os índices necessários.
// A unicidade de e-mail é garantida AQUI, no banco: a checagem
// read-then-write da camada de serviço é apenas a primeira linha de defesa.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		// users: e-mail único (case já normalizado pela camada de serviço)
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},

		// products: listagem mais-recente-primeiro e filtro por categoria
		{ColProducts, bson.D{{Key: "created_at", Value: -1}}, false},
		{ColProducts, bson.D{{Key: "category", Value: 1}}, false},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := db.Collection(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("índice em %s: %w", i.col, err)
		}
	}

	return nil
}

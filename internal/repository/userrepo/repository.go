package userrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/database"
	"gocatalog/internal/pkg/logger"
)

// UserRepository implementa a interface domain.UserRepository sobre a
// collection "users" do MongoDB.
type UserRepository struct {
	Col       *mongo.Collection
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *mongo.Database, dbTimeout time.Duration, log logger.Logger) *UserRepository {
	return &UserRepository{
		Col:       db.Collection(database.ColUsers),
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Save insere um novo usuário na collection.
// O índice único em "email" é a garantia final de unicidade: em uma corrida
// entre dois registros simultâneos, o perdedor recebe EmailTakenError aqui.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	// 1. Prepara dados e ID
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	r.logger.Debug("Gerado novo ID e timestamps para o usuário.", map[string]interface{}{"user_id": user.ID, "email": user.Email})

	// 2. Executa o INSERT
	_, err := r.Col.InsertOne(ctxTimeout, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.User{}, apperror.NewEmailTakenError(user.Email)
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to insert user", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": user.ID, "email": user.Email})
	return user, nil
}

// FindByEmail busca um usuário pelo e-mail (já normalizado pelo serviço).
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var user domain.User
	err := r.Col.FindOne(ctxTimeout, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com email %s não encontrado.", email))
		}
		return domain.User{}, apperror.NewDBError("failed to find user by email", err)
	}

	return user, nil
}

// FindByID busca um usuário pelo identificador.
func (r *UserRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var user domain.User
	err := r.Col.FindOne(ctxTimeout, bson.D{{Key: "_id", Value: id}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, apperror.NewNotFoundError("Usuário não encontrado.")
		}
		return domain.User{}, apperror.NewDBError("failed to find user by id", err)
	}

	return user, nil
}

// Update grava os campos mutáveis do usuário (nome, e-mail, hash da senha).
// A escrita é por-documento e atômica: atualizações concorrentes seguem
// last-write-wins, sem token de concorrência otimista.
func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	user.UpdatedAt = time.Now().UTC()

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: user.Name},
		{Key: "email", Value: user.Email},
		{Key: "password_hash", Value: user.PasswordHash},
		{Key: "updated_at", Value: user.UpdatedAt},
	}}}

	res, err := r.Col.UpdateOne(ctxTimeout, bson.D{{Key: "_id", Value: user.ID}}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.User{}, apperror.NewEmailTakenError(user.Email)
		}
		r.logger.Error("Falha ao atualizar usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to update user", err)
	}
	if res.MatchedCount == 0 {
		return domain.User{}, apperror.NewNotFoundError("Usuário não encontrado.")
	}

	return user, nil
}

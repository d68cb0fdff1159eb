package userservice

import (
	"context"
	"errors"
	"strings"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
)

// MinPasswordLength é o tamanho mínimo aceito para senhas.
const MinPasswordLength = 6

// PasswordHasher é o contrato da camada de hashing (internal/pkg/password).
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID string) (string, error)
}

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	UserRepo domain.UserRepository
	Hasher   PasswordHasher
	TokenSvc TokenService

	// RequireOldPassword exige a senha atual para trocar a senha.
	// Desligado por padrão (paridade com o comportamento histórico).
	RequireOldPassword bool
}

// NewService cria uma nova instância do UserService, injetando as dependências.
func NewService(repo domain.UserRepository, hasher PasswordHasher, tokenSvc TokenService, requireOldPassword bool) *UserService {
	return &UserService{
		UserRepo:           repo,
		Hasher:             hasher,
		TokenSvc:           tokenSvc,
		RequireOldPassword: requireOldPassword,
	}
}

// normalizeEmail padroniza o e-mail para comparação case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register registra um novo usuário no sistema.
// Valida os campos, faz o hashing da senha, persiste e já emite o token.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.AuthResponse, error) {
	// 1. Validação Básica
	if registration.Name == "" || registration.Email == "" || registration.Password == "" {
		return domain.AuthResponse{}, apperror.NewValidationError("Nome, email e senha são obrigatórios.")
	}
	if len(registration.Password) < MinPasswordLength {
		return domain.AuthResponse{}, apperror.NewValidationError("A senha deve ter no mínimo 6 caracteres.")
	}

	email := normalizeEmail(registration.Email)

	// 2. Checagem de unicidade (read-then-write; o índice único do banco
	// resolve a corrida entre dois registros simultâneos)
	if _, err := s.UserRepo.FindByEmail(ctx, email); err == nil {
		return domain.AuthResponse{}, apperror.NewEmailTakenError(email)
	} else {
		var notFound *apperror.NotFoundError
		if !errors.As(err, &notFound) {
			return domain.AuthResponse{}, err
		}
	}

	// 3. Hashing da Senha
	hashedPassword, err := s.Hasher.Hash(registration.Password)
	if err != nil {
		return domain.AuthResponse{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	// 4. Persistência
	newUser := domain.User{
		Name:         registration.Name,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	user, err := s.UserRepo.Save(ctx, newUser)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	// 5. Emissão do Token
	tokenString, err := s.TokenSvc.GenerateToken(user.ID)
	if err != nil {
		return domain.AuthResponse{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	return domain.AuthResponse{User: user.View(), Token: tokenString}, nil
}

// Login autentica um usuário, verifica a senha e gera um JWT novo.
// E-mail desconhecido e senha incorreta produzem exatamente o mesmo erro,
// para impedir enumeração de contas.
func (s *UserService) Login(ctx context.Context, email string, password string) (domain.AuthResponse, error) {
	if email == "" || password == "" {
		return domain.AuthResponse{}, apperror.NewInvalidCredentialsError()
	}

	// 1. Buscar Usuário pelo Email
	user, err := s.UserRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return domain.AuthResponse{}, apperror.NewInvalidCredentialsError()
		}
		return domain.AuthResponse{}, err
	}

	// 2. Comparar Senhas (hash)
	if !s.Hasher.Verify(password, user.PasswordHash) {
		return domain.AuthResponse{}, apperror.NewInvalidCredentialsError()
	}

	// 3. Gerar JWT
	tokenString, err := s.TokenSvc.GenerateToken(user.ID)
	if err != nil {
		return domain.AuthResponse{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	return domain.AuthResponse{User: user.View(), Token: tokenString}, nil
}

// GetByID retorna a visão pública do usuário. Nunca expõe o hash da senha.
func (s *UserService) GetByID(ctx context.Context, id string) (domain.UserView, error) {
	user, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return domain.UserView{}, err
	}
	return user.View(), nil
}

// Update aplica uma atualização parcial no perfil do usuário.
// Somente campos presentes no payload são alterados. Strings vazias contam
// como campo ausente: nome e e-mail nunca ficam vazios depois de um update.
func (s *UserService) Update(ctx context.Context, id string, update domain.UserUpdate) (domain.UserView, error) {
	if update.Name != nil && *update.Name == "" {
		update.Name = nil
	}
	if update.Email != nil && *update.Email == "" {
		update.Email = nil
	}
	if update.Password != nil && *update.Password == "" {
		update.Password = nil
	}

	// 1. O usuário precisa existir
	user, err := s.UserRepo.FindByID(ctx, id)
	if err != nil {
		return domain.UserView{}, err
	}

	// 2. Troca de e-mail: o novo endereço não pode pertencer a outra conta
	if update.Email != nil {
		newEmail := normalizeEmail(*update.Email)
		if newEmail != user.Email {
			if _, err := s.UserRepo.FindByEmail(ctx, newEmail); err == nil {
				return domain.UserView{}, apperror.NewEmailTakenError(newEmail)
			} else {
				var notFound *apperror.NotFoundError
				if !errors.As(err, &notFound) {
					return domain.UserView{}, err
				}
			}
		}
		user.Email = newEmail
	}

	// 3. Troca de senha
	if update.Password != nil {
		if update.OldPassword != nil {
			// Com a senha atual informada, ela precisa conferir.
			if !s.Hasher.Verify(*update.OldPassword, user.PasswordHash) {
				return domain.UserView{}, apperror.NewWrongPasswordError()
			}
		} else if s.RequireOldPassword {
			return domain.UserView{}, apperror.NewValidationError("A senha atual é obrigatória para alterar a senha.")
		}
		// Sem REQUIRE_OLD_PASSWORD, a troca sem senha atual é aceita
		// (comportamento histórico mantido de propósito).

		if len(*update.Password) < MinPasswordLength {
			return domain.UserView{}, apperror.NewValidationError("A senha deve ter no mínimo 6 caracteres.")
		}

		hashedPassword, err := s.Hasher.Hash(*update.Password)
		if err != nil {
			return domain.UserView{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
		}
		user.PasswordHash = hashedPassword
	}

	// 4. Demais campos
	if update.Name != nil {
		user.Name = *update.Name
	}

	// 5. Persistência
	updated, err := s.UserRepo.Update(ctx, user)
	if err != nil {
		return domain.UserView{}, err
	}

	return updated.View(), nil
}

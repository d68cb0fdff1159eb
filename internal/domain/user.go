package domain

import (
	"context"
	"time"
)

// User representa a entidade do usuário no sistema (Credential Store).
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"` // Oculta o hash da senha no JSON de resposta
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// UserView é a visão pública do usuário, a única forma que sai pela API.
// Nunca carrega o hash da senha.
type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// View converte a entidade para a visão pública.
func (u User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, Email: u.Email}
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate representa o payload de atualização parcial do perfil.
// Campos nil não são alterados.
type UserUpdate struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	OldPassword *string `json:"oldPassword"`
	Password    *string `json:"password"`
}

// AuthResponse é a resposta de registro/login: visão pública + token.
type AuthResponse struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}

// --- Interfaces de Contrato (O CORAÇÃO DA ARQUITETURA LIMPA) ---

// UserRepository define o contrato de persistência para a entidade User.
// A camada de Serviço só conhece esta interface, nunca o driver do MongoDB.
type UserRepository interface {
	Save(ctx context.Context, user User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	Update(ctx context.Context, user User) (User, error)
}

// UserService define o contrato de lógica de negócio para a entidade User.
type UserService interface {
	Register(ctx context.Context, registration UserRegistration) (AuthResponse, error)
	Login(ctx context.Context, email string, password string) (AuthResponse, error)
	GetByID(ctx context.Context, id string) (UserView, error)
	Update(ctx context.Context, id string, update UserUpdate) (UserView, error)
}

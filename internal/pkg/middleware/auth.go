package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
// Usamos um tipo próprio para garantir que a chave seja única e não haja
// conflito com chaves string de outros pacotes.
type ContextKey int

const (
	// UserIDKey guarda o ID do usuário autenticado no contexto da requisição.
	UserIDKey ContextKey = iota
)

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// UserResolver re-resolve o usuário dono do token a cada requisição.
// Isso garante que uma conta apagada não continue agindo com um token
// criptograficamente válido, ao custo de uma leitura no store por requisição.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (domain.UserView, error)
}

// NewAuthMiddleware cria o gateway de autenticação: extrai o Bearer token,
// valida, re-resolve o usuário e anexa o ID ao contexto da requisição.
//
// Falhas:
//   - header ausente            -> 401 MISSING_TOKEN
//   - header malformado         -> 401 INVALID_TOKEN
//   - token inválido/expirado   -> 401 INVALID_TOKEN
//   - usuário não existe mais   -> 401 INVALID_TOKEN
func NewAuthMiddleware(tokenSvc TokenService, users UserResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, apperror.NewMissingTokenError())
				return
			}
			if !strings.HasPrefix(authHeader, "Bearer ") {
				respondError(w, apperror.NewInvalidTokenError())
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			// 2. Validar o Token
			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				respondError(w, apperror.NewInvalidTokenError())
				return
			}

			// 3. Re-resolver o usuário no Credential Store (sem cache)
			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				respondError(w, apperror.NewInvalidTokenError())
				return
			}

			// 4. Anexar o ID ao Contexto e seguir
			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extrai o ID do usuário autenticado no handler.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok
}

// respondError escreve o corpo de erro padronizado da API.
func respondError(w http.ResponseWriter, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

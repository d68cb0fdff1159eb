package errors

import (
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do GoCatalog.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND")
	HTTPStatus() int  // Código HTTP contratual para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada
// (campos obrigatórios ausentes, senha curta, payload malformado).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return e.Msg }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// EmailTakenError representa a tentativa de usar um e-mail já cadastrado.
// O contrato da API devolve 400 (não 409) para este caso.
type EmailTakenError struct {
	Email string
}

func (e *EmailTakenError) Error() string    { return fmt.Sprintf("O email '%s' já está em uso.", e.Email) }
func (e *EmailTakenError) Category() string { return "EMAIL_TAKEN" }
func (e *EmailTakenError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *EmailTakenError) Unwrap() error    { return nil }

// NewEmailTakenError cria um erro de e-mail duplicado.
func NewEmailTakenError(email string) AppError {
	return &EmailTakenError{Email: email}
}

// WrongPasswordError representa a falha de verificação da senha atual
// durante a troca de senha.
type WrongPasswordError struct{}

func (e *WrongPasswordError) Error() string    { return "Senha atual incorreta." }
func (e *WrongPasswordError) Category() string { return "WRONG_PASSWORD" }
func (e *WrongPasswordError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *WrongPasswordError) Unwrap() error    { return nil }

// NewWrongPasswordError cria um erro de senha atual incorreta.
func NewWrongPasswordError() AppError {
	return &WrongPasswordError{}
}

// InvalidPriceError representa um preço fora dos limites (negativo).
type InvalidPriceError struct{}

func (e *InvalidPriceError) Error() string    { return "O preço não pode ser negativo." }
func (e *InvalidPriceError) Category() string { return "INVALID_PRICE" }
func (e *InvalidPriceError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *InvalidPriceError) Unwrap() error    { return nil }

// NewInvalidPriceError cria um erro de preço inválido.
func NewInvalidPriceError() AppError {
	return &InvalidPriceError{}
}

// InvalidStockError representa um estoque fora dos limites (negativo).
type InvalidStockError struct{}

func (e *InvalidStockError) Error() string    { return "O estoque não pode ser negativo." }
func (e *InvalidStockError) Category() string { return "INVALID_STOCK" }
func (e *InvalidStockError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *InvalidStockError) Unwrap() error    { return nil }

// NewInvalidStockError cria um erro de estoque inválido.
func NewInvalidStockError() AppError {
	return &InvalidStockError{}
}

// InvalidCredentialsError representa falha de login. A mensagem é idêntica
// para e-mail desconhecido e senha incorreta, para não dar dicas a invasores.
type InvalidCredentialsError struct{}

func (e *InvalidCredentialsError) Error() string    { return "Email ou senha incorretos." }
func (e *InvalidCredentialsError) Category() string { return "INVALID_CREDENTIALS" }
func (e *InvalidCredentialsError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *InvalidCredentialsError) Unwrap() error    { return nil }

// NewInvalidCredentialsError cria um erro de credenciais inválidas.
func NewInvalidCredentialsError() AppError {
	return &InvalidCredentialsError{}
}

// MissingTokenError representa a ausência do header Authorization.
type MissingTokenError struct{}

func (e *MissingTokenError) Error() string    { return "Token não fornecido." }
func (e *MissingTokenError) Category() string { return "MISSING_TOKEN" }
func (e *MissingTokenError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *MissingTokenError) Unwrap() error    { return nil }

// NewMissingTokenError cria um erro de token ausente.
func NewMissingTokenError() AppError {
	return &MissingTokenError{}
}

// InvalidTokenError representa um token malformado, expirado, com assinatura
// inválida ou que referencia um usuário inexistente. Todas as causas são
// tratadas de forma idêntica pelo gateway de autenticação.
type InvalidTokenError struct{}

func (e *InvalidTokenError) Error() string    { return "Token inválido." }
func (e *InvalidTokenError) Category() string { return "INVALID_TOKEN" }
func (e *InvalidTokenError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *InvalidTokenError) Unwrap() error    { return nil }

// NewInvalidTokenError cria um erro de token inválido.
func NewInvalidTokenError() AppError {
	return &InvalidTokenError{}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return e.Msg }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// EnrichmentError representa a falha do colaborador externo de geração de
// texto durante a criação do produto. Nada é persistido nesse caso.
type EnrichmentError struct {
	Err error // Erro original subjacente (rede, status não-2xx, parse)
}

func (e *EnrichmentError) Error() string {
	return "Erro ao gerar detalhes do produto. Por favor, tente novamente."
}
func (e *EnrichmentError) Category() string { return "ENRICHMENT_FAILED" }
func (e *EnrichmentError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *EnrichmentError) Unwrap() error    { return e.Err }

// NewEnrichmentError encapsula a falha do colaborador de IA.
func NewEnrichmentError(err error) AppError {
	return &EnrichmentError{Err: err}
}

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver Mongo)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}

// --- Helper para o Handler (Tradução Final) ---

// genericServerMessage é o corpo devolvido para qualquer falha 5xx interna.
// Detalhes internos (SQL, driver, stack) nunca vazam para o cliente.
const genericServerMessage = "Ocorreu um erro inesperado. Tente novamente mais tarde."

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, a categoria e
// a mensagem voltada ao usuário.
func MapToHTTPStatus(err error) (int, string, string) {
	if appErr, ok := err.(AppError); ok {
		// Erros internos viram uma mensagem genérica; o detalhe fica no log.
		if _, internal := appErr.(*InternalError); internal {
			return appErr.HTTPStatus(), appErr.Category(), genericServerMessage
		}
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratar como erro interno genérico.
	return http.StatusInternalServerError, "INTERNAL_ERROR", genericServerMessage
}

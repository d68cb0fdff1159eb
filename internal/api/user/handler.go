package user

import (
	"context"
	"encoding/json"
	"net/http"

	"gocatalog/internal/domain"
	apperror "gocatalog/internal/errors"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/middleware"
)

// UserService define o contrato que o Handler espera da camada de Serviço.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.AuthResponse, error)
	Login(ctx context.Context, email string, password string) (domain.AuthResponse, error)
	GetByID(ctx context.Context, id string) (domain.UserView, error)
	Update(ctx context.Context, id string, update domain.UserUpdate) (domain.UserView, error)
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	// Mapeamento de Erros de Negócio para Status HTTP
	status, category, message := apperror.MapToHTTPStatus(err)

	// Log apenas de erros graves; a causa raiz fica no log, nunca no corpo.
	if status >= 500 {
		h.Logger.Error("Erro interno no serviço de usuário:", err)
	} else {
		h.Logger.Debug("Requisição rejeitada.", map[string]interface{}{
			"path":     r.URL.Path,
			"status":   status,
			"category": category,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// RegisterUserHandler lida com a requisição POST /users/register.
// @Summary Registra um novo usuário
// @Description Cria um novo usuário, hasheia a senha e já devolve o token de autenticação.
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Dados de registro (nome, email e senha)"
// @Success 201 {object} domain.AuthResponse "Usuário criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Campos ausentes, senha curta ou email já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /users/register [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reg domain.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusCreated)
		return
	}

	result, err := h.Service.Register(ctx, reg)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusCreated)
		return
	}

	h.handleServiceResponse(w, r, result, nil, http.StatusCreated)
}

// LoginUserHandler lida com a requisição POST /users/login.
// @Summary Autentica um usuário e retorna um JWT
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credenciais (email e senha)"
// @Success 200 {object} domain.AuthResponse "Autenticado com sucesso"
// @Failure 401 {object} domain.ErrorResponse "Email ou senha incorretos"
// @Router /users/login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusOK)
		return
	}

	result, err := h.Service.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, result, nil, http.StatusOK)
}

// MeHandler lida com a requisição GET /users/me.
// @Summary Retorna o perfil do usuário autenticado
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.UserView
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Router /users/me [get]
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		// Só acontece se a rota for montada sem o middleware de autenticação.
		h.handleServiceResponse(w, r, nil, apperror.NewMissingTokenError(), http.StatusOK)
		return
	}

	user, err := h.Service.GetByID(ctx, userID)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, user, nil, http.StatusOK)
}

// UpdateUserHandler lida com a requisição PUT /users.
// @Summary Atualiza o perfil do usuário autenticado
// @Description Atualização parcial: somente os campos enviados são alterados. Trocar a senha com oldPassword incorreto falha.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param update body domain.UserUpdate true "Campos a atualizar"
// @Success 200 {object} domain.UserView
// @Failure 400 {object} domain.ErrorResponse "Email em uso ou senha atual incorreta"
// @Failure 401 {object} domain.ErrorResponse "Token ausente ou inválido"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users [put]
func (h *Handler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		h.handleServiceResponse(w, r, nil, apperror.NewMissingTokenError(), http.StatusOK)
		return
	}

	var update domain.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusOK)
		return
	}

	user, err := h.Service.Update(ctx, userID, update)
	if err != nil {
		h.handleServiceResponse(w, r, nil, err, http.StatusOK)
		return
	}

	h.handleServiceResponse(w, r, user, nil, http.StatusOK)
}

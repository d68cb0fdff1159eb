package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"gocatalog/internal/domain"
	"gocatalog/internal/pkg/logger"
)

// Client é o colaborador externo de geração de texto (implementa
// domain.ProductEnricher). Ele pede ao modelo uma descrição e uma categoria
// para o nome do produto e espera APENAS um JSON como resposta.
//
// Não há retry nem timeout próprio: a chamada respeita somente o contexto da
// requisição. Uma falha aqui impede a criação do produto.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient cria o cliente do colaborador de IA.
// baseURL aponta para uma API compatível com chat-completions
// (e.g. "https://api.openai.com/v1").
func NewClient(baseURL, apiKey, model string, log logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{},
		logger:     log,
	}
}

// Estruturas do protocolo chat-completions (somente os campos que usamos).

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateProductDetails gera descrição e categoria para o nome do produto.
// Falha com erro em: erro de rede, resposta não-2xx ou conteúdo que não seja
// o JSON esperado com os dois campos preenchidos.
func (c *Client) GenerateProductDetails(ctx context.Context, productName string) (domain.ProductDetails, error) {
	prompt := fmt.Sprintf(`Gere uma descrição atraente e uma categoria apropriada para o seguinte produto: %q.
Responda APENAS no formato JSON abaixo, sem explicações adicionais:
{
  "description": "descrição detalhada do produto em português, com 2-3 frases",
  "category": "categoria mais apropriada em português"
}`, productName)

	reqBody := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   200,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return domain.ProductDetails{}, fmt.Errorf("falha ao montar payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return domain.ProductDetails{}, fmt.Errorf("falha ao montar requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ProductDetails{}, fmt.Errorf("falha na chamada ao colaborador de IA: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// O corpo do erro não interessa ao chamador; só logamos o status.
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn("Colaborador de IA respondeu com status não-2xx.", map[string]interface{}{
			"status": resp.StatusCode,
		})
		return domain.ProductDetails{}, fmt.Errorf("colaborador de IA respondeu com status %d", resp.StatusCode)
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return domain.ProductDetails{}, fmt.Errorf("falha ao decodificar resposta do colaborador: %w", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return domain.ProductDetails{}, fmt.Errorf("resposta do colaborador sem conteúdo")
	}

	// O conteúdo da mensagem deve ser o JSON pedido no prompt.
	var details domain.ProductDetails
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &details); err != nil {
		c.logger.Warn("Conteúdo do colaborador de IA não é um JSON válido.", map[string]interface{}{
			"product_name": productName,
		})
		return domain.ProductDetails{}, fmt.Errorf("formato de resposta inválido: %w", err)
	}

	if details.Description == "" || details.Category == "" {
		return domain.ProductDetails{}, fmt.Errorf("resposta do colaborador sem descrição ou categoria")
	}

	return details, nil
}

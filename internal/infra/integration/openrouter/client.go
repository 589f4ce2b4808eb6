package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "google/gemini-2.0-flash-001"
)

// ErrEmptyResponse: o modelo respondeu sem nenhum conteúdo de mensagem.
var ErrEmptyResponse = errors.New("no content from model")

// UpstreamError: a chamada HTTP para o OpenRouter não foi aceita.
// Guarda status e corpo para diagnóstico.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("openrouter recusou a requisição (status %d): %s", e.Status, e.Body)
}

// MalformedResponseError: o conteúdo não parseou como JSON nem depois da
// limpeza de code fences. Carrega o conteúdo bruto.
type MalformedResponseError struct {
	Raw string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("resposta do modelo não é JSON válido: %q", e.Raw)
}

type Client struct {
	client *openai.Client
	model  string
}

// NewClient cria o cliente de classificação. O OpenRouter fala o protocolo
// da OpenAI, então basta apontar o BaseURL.
func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &Client{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

type classificationResult struct {
	Summary             string `json:"summary"`
	LeadQualityScore    string `json:"leadQualityScore"`
	SuggestedNextAction string `json:"suggestedNextAction"`
}

// Classify faz uma única chamada de chat completion e parseia a resposta.
// Não faz retry de rede; a única recuperação local é reparsear o JSON
// depois de remover marcadores de code fence.
func (c *Client) Classify(ctx context.Context, lead *entity.Lead) (*entity.LeadAnalysis, error) {
	prompt := buildPrompt(lead)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, &UpstreamError{
				Status: apiErr.HTTPStatusCode,
				Body:   apiErr.Message,
			}
		}
		return nil, &UpstreamError{Body: err.Error()}
	}

	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, ErrEmptyResponse
	}

	var result classificationResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		// Alguns modelos embrulham o JSON em ```json ... ``` mesmo com
		// response_format pedido. Limpa e tenta uma única vez.
		cleaned := stripCodeFences(content)
		if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
			return nil, &MalformedResponseError{Raw: content}
		}
	}

	return &entity.LeadAnalysis{
		Summary:      result.Summary,
		QualityScore: result.LeadQualityScore,
		NextAction:   result.SuggestedNextAction,
	}, nil
}

func stripCodeFences(content string) string {
	cleaned := strings.ReplaceAll(content, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type OllamaProvider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ Provider = &OllamaProvider{}

func NewOllamaProvider(baseURL, modelName string) *OllamaProvider {
	return &OllamaProvider{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (p *OllamaProvider) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	// Ollama has no task-type concept; taskType is accepted for interface
	// parity and ignored.
	reqPayload := ollamaEmbedRequest{
		Model:  p.ModelName,
		Prompt: text,
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, NewEmbeddingError("ollama", err)
	}

	endpoint := fmt.Sprintf("%s/api/embeddings", p.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, NewEmbeddingError("ollama", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, NewEmbeddingError("ollama", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, NewEmbeddingError("ollama", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, NewEmbeddingError("ollama", fmt.Errorf("status %d, body %s", res.StatusCode, string(body)))
	}

	var embRes ollamaEmbedResponse
	if err := json.Unmarshal(body, &embRes); err != nil {
		return nil, NewEmbeddingError("ollama", err)
	}

	return embRes.Embedding, nil
}

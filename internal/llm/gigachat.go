// Package llm wraps the GigaChat API: verdict generation through the gigago
// SDK and embeddings through the REST API the SDK does not cover.
package llm

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"sync"

	"formguard/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

const systemInstruction = `You are a bank form validation expert. You check extracted form data against the bank's policy documents for completeness and compliance. Always return valid JSON matching the requested schema, with no commentary before or after it.`

type Client struct {
	client     *gigago.Client
	model      *gigago.GenerativeModel
	config     *config.GigaChatConfig
	logger     *zap.Logger
	httpClient *http.Client
	baseURL    string
	oauthURL   string

	// tokenMu guards accessToken: embeddings run on concurrent request
	// paths and a 401 refresh rewrites the token.
	tokenMu     sync.Mutex
	accessToken string
}

func NewClient(cfg *config.GigaChatConfig, logger *zap.Logger) (*Client, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = systemInstruction
	model.Temperature = 0.1

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	if cfg.InsecureSkipVerify {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	// The embeddings endpoint is not exposed by the SDK, so direct REST calls
	// need their own OAuth token.
	accessToken, err := getAccessToken(ctx, cfg, httpClient, defaultOAuthURL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	return &Client{
		client:      client,
		model:       model,
		config:      cfg,
		logger:      logger,
		httpClient:  httpClient,
		accessToken: accessToken,
		baseURL:     "https://gigachat.devices.sberbank.ru/api/v1",
		oauthURL:    defaultOAuthURL,
	}, nil
}

// token returns the current access token.
func (c *Client) token() string {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()
	return c.accessToken
}

// refreshToken replaces a stale access token. Concurrent callers holding the
// same stale token trigger a single OAuth round trip; the rest reuse its
// result.
func (c *Client) refreshToken(ctx context.Context, stale string) (string, error) {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.accessToken != stale {
		return c.accessToken, nil
	}

	accessToken, err := getAccessToken(ctx, c.config, c.httpClient, c.oauthURL, c.logger)
	if err != nil {
		return "", err
	}
	c.accessToken = accessToken
	return accessToken, nil
}

// Generate sends one user prompt to the chat model and returns the raw text
// of the first choice.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := c.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *Client) Close() error {
	if c.client != nil {
		c.client.Close()
	}
	return nil
}

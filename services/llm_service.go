package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"content-backend/config"
	"content-backend/models"
	"content-backend/prompts"

	openai "github.com/sashabaranov/go-openai"
)

// LLMService generates one-line digests for trending articles. It is an
// optional enrichment: when no provider key is configured the service is
// disabled and the trending feed is served without digests.
type LLMService struct {
	client      *openai.Client
	cfg         *config.Config
	digestCache sync.Map // Cache for article digests
}

// NewLLMService creates a new LLM service instance
func NewLLMService(cfg *config.Config) *LLMService {
	var client *openai.Client

	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIKey != "" {
			clientConfig := openai.DefaultConfig(cfg.OpenAIKey)
			client = openai.NewClientWithConfig(clientConfig)
		}
	case "groq":
		if cfg.GroqKey != "" {
			clientConfig := openai.DefaultConfig(cfg.GroqKey)
			clientConfig.BaseURL = cfg.LLMBaseURL
			client = openai.NewClientWithConfig(clientConfig)
		}
	default:
		log.Printf("Unknown LLM provider %q, digests disabled", cfg.LLMProvider)
	}

	if client == nil {
		log.Println("LLM not configured, trending digests disabled")
	}

	return &LLMService{
		client: client,
		cfg:    cfg,
	}
}

// Enabled reports whether digest generation is available.
func (s *LLMService) Enabled() bool {
	return s != nil && s.client != nil
}

// GenerateDigest creates a one-line digest for a trending article.
func (s *LLMService) GenerateDigest(article models.Article) string {
	if !s.Enabled() {
		return ""
	}

	// Check cache first
	if cached, ok := s.digestCache.Load(article.ID); ok {
		return cached.(string)
	}

	input := fmt.Sprintf(
		"Title: %s\nVote score: %d\nViews: %d\nShares: %d\nComments: %d",
		article.Title, article.VoteScore, article.TotalViews, article.TotalShares, article.TotalComments,
	)

	resp, err := s.client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model: s.cfg.SummaryModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: "system", Content: prompts.TrendingDigestPrompt},
			{Role: "user", Content: input},
		},
		Temperature: 0.3,
		MaxTokens:   80,
	})
	if err != nil {
		log.Printf("LLM digest error for article %s: %v", article.ID, err)
		return ""
	}

	digest := strings.TrimSpace(resp.Choices[0].Message.Content)
	s.digestCache.Store(article.ID, digest)
	return digest
}

// GenerateDigestsBatch fills in digests for a trending feed concurrently.
func (s *LLMService) GenerateDigestsBatch(articles []models.TrendingArticle) {
	if !s.Enabled() {
		return
	}

	var wg sync.WaitGroup
	for i := range articles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			articles[i].Digest = s.GenerateDigest(articles[i].Article)
		}(i)
	}
	wg.Wait()
}

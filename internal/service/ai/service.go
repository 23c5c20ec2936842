package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"nomadcity/internal/chat"
	"nomadcity/internal/config"
)

// Service is the process-wide handle to the chat-completion provider. It is
// constructed once at startup from read-only configuration and is safe for
// concurrent use; each Stream call opens an independent provider request.
type Service struct {
	chatModel model.ToolCallingChatModel
	provider  string
	modelName string
}

// NewService builds the provider client selected by basic_config.chat_provider.
func NewService(ctx context.Context, cfg *config.Config) (*Service, error) {
	provider := cfg.BasicConfig.ChatProvider
	provCfg, ok := cfg.Providers[provider]
	if !ok {
		return nil, fmt.Errorf("provider %s not configured", provider)
	}
	if provCfg.APIKey == "" {
		return nil, fmt.Errorf("api key for provider %s not configured", provider)
	}

	var chatModel model.ToolCallingChatModel
	var err error
	switch provider {
	case "openai":
		modelCfg := &openai.ChatModelConfig{
			BaseURL: provCfg.BaseURL,
			Model:   provCfg.Model,
			APIKey:  provCfg.APIKey,
		}
		if provCfg.MaxTokens > 0 {
			maxTokens := provCfg.MaxTokens
			modelCfg.MaxTokens = &maxTokens
		}
		if provCfg.Temperature > 0 {
			temperature := provCfg.Temperature
			modelCfg.Temperature = &temperature
		}
		chatModel, err = openai.NewChatModel(ctx, modelCfg)
	case "gemini":
		var client *genai.Client
		client, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: provCfg.APIKey,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		chatModel, err = gemini.NewChatModel(ctx, &gemini.Config{
			Client: client,
			Model:  provCfg.Model,
		})
	case "claude":
		var baseURLPtr *string
		if provCfg.BaseURL != "" {
			baseURLPtr = &provCfg.BaseURL
		}
		maxTokens := provCfg.MaxTokens
		if maxTokens <= 0 {
			maxTokens = 1000
		}
		chatModel, err = claude.NewChatModel(ctx, &claude.Config{
			APIKey:    provCfg.APIKey,
			Model:     provCfg.Model,
			BaseURL:   baseURLPtr,
			MaxTokens: maxTokens,
		})
	default:
		return nil, fmt.Errorf("invalid provider: %s", provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s chat model: %w", provider, err)
	}

	return &Service{
		chatModel: chatModel,
		provider:  provider,
		modelName: provCfg.Model,
	}, nil
}

// Provider reports which provider the service was configured with.
func (s *Service) Provider() string {
	return s.provider
}

// Stream opens a single streaming request for the composed message sequence
// and returns the provider's incremental output as a ChunkStream.
func (s *Service) Stream(ctx context.Context, messages []*schema.Message) (chat.ChunkStream, error) {
	reader, err := s.chatModel.Stream(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("open %s stream: %w", s.provider, err)
	}
	return &chunkStream{reader: reader}, nil
}

// chunkStream adapts eino's typed stream reader to the relay's pull
// abstraction. Recv surfaces io.EOF unchanged at end-of-stream.
type chunkStream struct {
	reader *schema.StreamReader[*schema.Message]
}

func (cs *chunkStream) Recv() (string, error) {
	msg, err := cs.reader.Recv()
	if err != nil {
		return "", err
	}
	return msg.Content, nil
}

func (cs *chunkStream) Close() {
	cs.reader.Close()
}

// Package ai wraps the external reply collaborator used when no keyword rule
// matches an inbound message.
package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/hanibassam/hanibot/backend/internal/config"
)

// Service generates replies through the configured chat model. A nil
// *Service means the collaborator is not configured and escalation should
// fall back to the canned reply.
type Service struct {
	cfg   config.AIConfig
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the collaborator from configuration. The prompt chain
// is compiled once and reused for every call.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{cfg: cfg, chain: runnable}, nil
}

// Reply asks the model for an answer to an unmatched question. The call is
// bounded by the configured timeout; exceeding it is an error like any other
// transport failure, and the caller recovers with the canned reply.
func (s *Service) Reply(ctx context.Context, question, sender string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	if sender == "" {
		sender = "ukendt"
	}

	input := map[string]any{
		"system": s.cfg.SystemPrompt,
		"query":  fmt.Sprintf("Bruger: %s\nSpørgsmål: %s", sender, question),
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run reply chain: %w", err)
	}

	content := strings.TrimSpace(response.Content)
	if content == "" {
		return "", fmt.Errorf("model returned an empty reply")
	}

	log.Printf("[llm] generated reply for sender=%s, length=%d", sender, len(content))
	return content, nil
}

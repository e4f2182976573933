// Package agent sends the assembled prompt to the hosted LLM and shields
// the rest of the pipeline from its failures: whatever goes wrong with
// the call, the session keeps running.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pkoukk/tiktoken-go"
	openai "github.com/sashabaranov/go-openai"

	"fcajbot/config"
)

// WarningPrefix marks an answer that is really an error report. The UI
// shows it verbatim instead of crashing the conversation.
const WarningPrefix = "⚠️ Lỗi: "

// Result is the structured outcome of one generation. Failures stay
// typed until the presentation boundary renders them with Text.
type Result struct {
	Answer string
	Err    error
}

// Text converts the result into the user-visible string contract: the
// raw answer, or a warning-prefixed error description.
func (r Result) Text() string {
	if r.Err != nil {
		return WarningPrefix + r.Err.Error()
	}
	return r.Answer
}

type Generator struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
	logger      *slog.Logger

	encOnce sync.Once
	enc     *tiktoken.Tiktoken
}

func New(cfg *config.Settings) *Generator {
	clientCfg := openai.DefaultConfig(cfg.GroqAPIKey)
	clientCfg.BaseURL = cfg.GroqBaseURL
	return &Generator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.ChatModel,
		temperature: cfg.Temperature,
		timeout:     cfg.RequestTimeout,
		logger:      slog.Default(),
	}
}

// BuildPrompt combines the retrieved context and the (possibly
// history-prefixed) question into the human message.
func BuildPrompt(contextText, question string) string {
	return fmt.Sprintf("Thông tin:\n%s\n\nCâu hỏi:\n%s", contextText, question)
}

// Generate asks the model. Any error — network, auth, rate limit,
// timeout — lands in Result.Err; nothing is propagated as a fault.
func (g *Generator) Generate(ctx context.Context, contextText, question string) Result {
	prompt := BuildPrompt(contextText, question)

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		g.logger.Error("llm request failed", "model", g.model, "error", err)
		return Result{Err: err}
	}
	if len(resp.Choices) == 0 {
		return Result{Err: fmt.Errorf("llm returned no choices")}
	}

	g.logger.Info("llm answer",
		"model", g.model,
		"prompt_tokens", g.countTokens(SystemPrompt)+g.countTokens(prompt),
		"took", time.Since(start))
	return Result{Answer: resp.Choices[0].Message.Content}
}

// countTokens sizes the prompt with the cl100k encoding, which is close
// enough for llama-family models to watch the context budget. Returns 0
// when the encoding is unavailable.
func (g *Generator) countTokens(s string) int {
	g.encOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			g.logger.Warn("token encoding unavailable", "error", err)
			return
		}
		g.enc = enc
	})
	if g.enc == nil {
		return 0
	}
	return len(g.enc.Encode(s, nil, nil))
}

// Package service wires the full answer pipeline together: normalize
// the question, retrieve context, assemble the prompt, ask the model and
// record the turn. The HTTP layer on top of it stays thin.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"fcajbot/app/agent"
	"fcajbot/config"
	"fcajbot/model"
	"fcajbot/normalize"
	"fcajbot/retriever"
	"fcajbot/session"
	"fcajbot/store"
	"fcajbot/types"
)

const contextSeparator = "\n\n"

type Assistant struct {
	cfg      *config.Settings
	sessions *session.Manager
	logger   *slog.Logger

	// Heavy collaborators are built once on first use and shared
	// read-only afterwards (get-or-create, never rebuilt).
	initOnce sync.Once
	initErr  error
	storer   store.VectorStorer
	retr     *retriever.Retriever
	gen      *agent.Generator
}

func New(cfg *config.Settings) *Assistant {
	return &Assistant{
		cfg:      cfg,
		sessions: session.NewManager(),
		logger:   slog.Default(),
	}
}

// Init loads the persisted index and constructs the model clients. It is
// safe to call repeatedly; the first outcome sticks. A missing API key
// or missing index is fatal here — the assistant refuses to answer from
// nothing.
func (a *Assistant) Init(ctx context.Context) error {
	a.initOnce.Do(func() {
		if err := a.cfg.RequireAPIKey(); err != nil {
			a.initErr = err
			return
		}

		embedder, err := model.NewEmbedder(a.cfg)
		if err != nil {
			a.initErr = err
			return
		}

		storer, err := store.Open(ctx, a.cfg)
		if err != nil {
			a.initErr = err
			return
		}

		a.storer = storer
		a.retr = retriever.New(a.cfg, embedder, storer)
		a.gen = agent.New(a.cfg)

		n, _ := storer.Count(ctx)
		a.logger.Info("assistant ready",
			"chunks", n, "embedder", embedder.ModelInfo(), "chat_model", a.cfg.ChatModel)
	})
	return a.initErr
}

// Ask runs one question through the pipeline for the given session.
// Pipeline failures after Init never surface as errors: they become the
// warning-prefixed answer text and the turn is recorded anyway, so the
// conversation survives.
func (a *Assistant) Ask(ctx context.Context, sessionID, question string) (types.AskResponse, error) {
	if err := a.Init(ctx); err != nil {
		return types.AskResponse{}, err
	}

	sess := a.sessions.Get(sessionID)
	sess.Append(types.Turn{Role: types.RoleUser, Content: question})

	answer, sources := a.respond(ctx, sess, question)
	sess.Append(types.Turn{Role: types.RoleAssistant, Content: answer})

	return types.AskResponse{
		Answer:    answer,
		Sources:   sources,
		Timestamp: time.Now(),
	}, nil
}

func (a *Assistant) respond(ctx context.Context, sess *session.Session, question string) (string, []types.Source) {
	normalized := normalize.Query(question)

	chunks, err := a.retr.Retrieve(ctx, normalized)
	if err != nil {
		a.logger.Error("retrieval failed", "session", sess.ID(), "error", err)
		return agent.Result{Err: err}.Text(), nil
	}

	contextText := JoinContext(chunks)
	res := a.gen.Generate(ctx, contextText, withHistory(sess, normalized))
	if res.Err != nil {
		return res.Text(), nil
	}

	sources := make([]types.Source, len(chunks))
	for i, c := range chunks {
		sources[i] = types.Source{Source: c.Source, Index: c.Index, ChunkText: c.Content}
	}
	return res.Answer, sources
}

// JoinContext concatenates the retrieved chunk texts. Zero chunks yield
// an empty context; the persona prompt tells the model what to do then.
func JoinContext(chunks []types.Chunk) string {
	if len(chunks) == 0 {
		return ""
	}
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	return strings.Join(texts, contextSeparator)
}

// withHistory prefixes the question with a transcript of every prior
// turn when the session holds more than the current pending question.
func withHistory(sess *session.Session, question string) string {
	turns := sess.Turns()
	if len(turns) <= 1 {
		return question
	}

	lines := make([]string, 0, len(turns)-1)
	for _, t := range turns[:len(turns)-1] {
		lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(string(t.Role)), t.Content))
	}
	return fmt.Sprintf("Lịch sử cuộc trò chuyện:\n%s\n\nCâu hỏi hiện tại: %s",
		strings.Join(lines, "\n"), question)
}

// Reset wipes the session's conversation history.
func (a *Assistant) Reset(sessionID string) {
	a.sessions.Reset(sessionID)
}

// Session exposes the turn list, for the API layer and tests.
func (a *Assistant) Session(sessionID string) *session.Session {
	return a.sessions.Get(sessionID)
}

// Close releases the store handle.
func (a *Assistant) Close() error {
	if a.storer != nil {
		return a.storer.Close()
	}
	return nil
}

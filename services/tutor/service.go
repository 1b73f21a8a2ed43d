// Package tutor runs the tutoring dialogue: one graph turn per learner message.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"log"

	"lessontutor/models"
	"lessontutor/services/capability"
	"lessontutor/services/lessonindex"
	"lessontutor/services/transcript"
)

const (
	StageRouter          = "router"
	StageTranscribe      = "transcribe_youtube"
	StageSummarize       = "summarize_transcript"
	StageAnalyzeLevel    = "analyze_student_level"
	StageExtractResponse = "extract_student_response"
	StageCreateQuiz      = "create_quiz"
)

// CheckpointStore holds the last committed state of each session.
// SaveCheckpoint must reject a state that does not follow the stored version.
type CheckpointStore interface {
	LoadCheckpoint(ctx context.Context, sessionID string) (*models.ConversationState, error)
	SaveCheckpoint(ctx context.Context, sessionID string, state *models.ConversationState) error
}

type Service struct {
	llm       capability.Client
	fetcher   transcript.Fetcher
	index     lessonindex.Retriever
	quizGuard bool
	maxSteps  int
	graph     *CompiledGraph
}

type Option func(*Service)

// WithLessonIndex indexes transcripts and feeds matching excerpts to quiz creation.
func WithLessonIndex(index lessonindex.Retriever) Option {
	return func(s *Service) {
		s.index = index
	}
}

// WithQuizGuard controls whether a quiz may be created before any assessment
// exists. The guard is on by default.
func WithQuizGuard(enabled bool) Option {
	return func(s *Service) {
		s.quizGuard = enabled
	}
}

func WithGraphMaxSteps(n int) Option {
	return func(s *Service) {
		s.maxSteps = n
	}
}

func NewService(llm capability.Client, fetcher transcript.Fetcher, opts ...Option) (*Service, error) {
	if llm == nil {
		return nil, errors.New("capability client is required")
	}
	if fetcher == nil {
		return nil, errors.New("transcript fetcher is required")
	}

	s := &Service{
		llm:       llm,
		fetcher:   fetcher,
		quizGuard: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	graph, err := s.buildGraph().Compile(WithMaxSteps(s.maxSteps))
	if err != nil {
		return nil, fmt.Errorf("failed to compile tutor graph: %w", err)
	}
	s.graph = graph

	return s, nil
}

func (s *Service) buildGraph() *Graph {
	return NewGraph().
		AddNode(StageRouter, s.route).
		AddNode(StageTranscribe, s.transcribe).
		AddNode(StageSummarize, s.summarize).
		AddNode(StageAnalyzeLevel, s.analyzeLevel).
		AddNode(StageExtractResponse, s.extractResponse).
		AddNode(StageCreateQuiz, s.createQuiz).
		SetEntry(StageRouter).
		AddConditionalEdge(StageRouter, routeByState,
			StageTranscribe, StageAnalyzeLevel, StageCreateQuiz, StageExtractResponse).
		AddEdge(StageTranscribe, StageSummarize).
		AddEdge(StageSummarize, End).
		AddEdge(StageExtractResponse, StageAnalyzeLevel).
		AddEdge(StageAnalyzeLevel, End).
		AddEdge(StageCreateQuiz, End)
}

// Step runs one turn for userMessage and returns the new state. The input
// state is never modified; a failed turn leaves nothing behind.
func (s *Service) Step(ctx context.Context, state *models.ConversationState, userMessage string) (*models.ConversationState, error) {
	next := state.Clone()
	if userMessage != "" {
		next.Messages = append(next.Messages, models.UserMessage(userMessage))
	}

	result, err := s.graph.Run(ctx, next)
	observeTurn(err)
	if err != nil {
		return nil, err
	}

	result.Version++
	return result, nil
}

// RunTurn loads the session checkpoint, runs one turn and commits the result.
// Nothing is saved when the turn fails.
func (s *Service) RunTurn(ctx context.Context, store CheckpointStore, sessionID, userMessage string) (*models.ConversationState, error) {
	state, err := store.LoadCheckpoint(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}

	log.Printf("[INFO] Running turn %d for session %s", state.Version+1, sessionID)
	next, err := s.Step(ctx, state, userMessage)
	if err != nil {
		log.Printf("[ERROR] Turn failed for session %s: %v", sessionID, err)
		return nil, err
	}

	if err := store.SaveCheckpoint(ctx, sessionID, next); err != nil {
		return nil, fmt.Errorf("failed to save session %s: %w", sessionID, err)
	}

	return next, nil
}

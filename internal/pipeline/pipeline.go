// Package pipeline orchestrates the verification agents as a linear
// state machine. Each stage reads and writes its slice of the shared
// State; a stage failure records an error and substitutes a safe
// default so the run always completes.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ppiankov/trustlens/internal/agent"
	"github.com/ppiankov/trustlens/internal/llm"
	"github.com/ppiankov/trustlens/internal/model"
	"github.com/ppiankov/trustlens/internal/search"
)

// State carries intermediate results between stages of one run
type State struct {
	RawText  string
	URL      string
	Vertical model.Vertical
	Language string

	CleanText string
	WordCount int

	ExtractedClaims  []model.Claim
	VerifiableClaims []model.Claim
	SearchQueries    map[string][]string
	RawEvidence      map[string][]model.EvidenceItem
	RankedEvidence   map[string][]model.EvidenceItem
	Verdicts         []model.Verdict
	Claims           []model.ClaimResult

	ModelsUsed     []string
	SourcesChecked int

	mu     sync.Mutex
	Errors []string
}

// AddError appends a diagnostic error. Safe for concurrent use.
func (s *State) AddError(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errors = append(s.Errors, fmt.Sprintf(format, args...))
}

func (s *State) addModel(name string) {
	for _, m := range s.ModelsUsed {
		if m == name {
			return
		}
	}
	s.ModelsUsed = append(s.ModelsUsed, name)
}

// textIngestor is the cleaning stage's contract: text in, cleaned
// text and word count out.
type textIngestor interface {
	Process(text string) (string, int)
}

// Pipeline wires the agents together in execution order
type Pipeline struct {
	ingestor   textIngestor
	extractor  *agent.Extractor
	classifier *agent.Classifier
	planner    *agent.Planner
	retriever  *agent.Retriever
	ranker     *agent.Ranker
	verifier   *agent.Verifier
	formatter  *agent.Formatter

	model     string
	fastModel string
	logger    *zap.Logger
}

// New creates a pipeline from the configuration. The heavy model
// handles extraction and verification; the fast model handles
// classification, query planning, and relevance ranking.
func New(cfg *model.Config, completer llm.Completer, provider search.Provider, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		ingestor:   agent.NewIngestor(),
		extractor:  agent.NewExtractor(completer, cfg.LLM.Model, cfg.Pipeline, logger),
		classifier: agent.NewClassifier(completer, cfg.LLM.FastModel, logger),
		planner:    agent.NewPlanner(completer, cfg.LLM.FastModel, cfg.Pipeline, logger),
		retriever:  agent.NewRetriever(provider, cfg.Search.Workers, logger),
		ranker:     agent.NewRanker(completer, cfg.LLM.FastModel, cfg.Pipeline, logger),
		verifier:   agent.NewVerifier(completer, cfg.LLM.Model, logger),
		formatter:  agent.NewFormatter(),
		model:      cfg.LLM.Model,
		fastModel:  cfg.LLM.FastModel,
		logger:     logger,
	}
}

// Run executes the full pipeline over the given text. It never returns
// an error: stage failures degrade the result and are reported through
// RunResult.Errors instead.
func (p *Pipeline) Run(ctx context.Context, text, url string, vertical model.Vertical, language string) model.RunResult {
	state := &State{
		RawText:          text,
		URL:              url,
		Vertical:         vertical,
		Language:         language,
		ExtractedClaims:  []model.Claim{},
		VerifiableClaims: []model.Claim{},
		SearchQueries:    map[string][]string{},
		RawEvidence:      map[string][]model.EvidenceItem{},
		RankedEvidence:   map[string][]model.EvidenceItem{},
		Verdicts:         []model.Verdict{},
		Claims:           []model.ClaimResult{},
		ModelsUsed:       []string{},
	}

	p.logger.Info("pipeline started",
		zap.Int("text_len", len(text)),
		zap.String("vertical", string(vertical)))

	p.runIngestion(state)
	p.runExtraction(ctx, state)
	p.runClassification(ctx, state)
	p.runQueryPlanning(ctx, state)
	p.runRetrieval(ctx, state)
	p.runRanking(ctx, state)
	p.runVerification(ctx, state)
	p.runFormatting(state)

	p.logger.Info("pipeline completed",
		zap.Int("claims", len(state.Claims)),
		zap.Int("sources_checked", state.SourcesChecked),
		zap.Int("errors", len(state.Errors)))

	return model.RunResult{
		Claims:         state.Claims,
		ModelsUsed:     state.ModelsUsed,
		SourcesChecked: state.SourcesChecked,
		Errors:         state.Errors,
	}
}

// guard converts a stage panic into a recorded error so one bad stage
// cannot take down the run.
func (p *Pipeline) guard(state *State, stage string) {
	if r := recover(); r != nil {
		p.logger.Error("stage panicked",
			zap.String("stage", stage), zap.Any("panic", r))
		state.AddError("%s panic: %v", stage, r)
	}
}

func (p *Pipeline) runIngestion(state *State) {
	// If cleaning blows up, extraction still gets the raw text
	state.CleanText = state.RawText
	defer p.guard(state, "ingestion")
	state.CleanText, state.WordCount = p.ingestor.Process(state.RawText)
}

func (p *Pipeline) runExtraction(ctx context.Context, state *State) {
	defer p.guard(state, "claim extraction")
	claims, err := p.extractor.Extract(ctx, state.CleanText, state.Vertical)
	if err != nil {
		state.AddError("claim extraction error: %v", err)
		return
	}
	state.ExtractedClaims = claims
	state.addModel(p.model)
}

func (p *Pipeline) runClassification(ctx context.Context, state *State) {
	defer p.guard(state, "classification")
	filtered, err := p.classifier.Filter(ctx, state.ExtractedClaims)
	if err != nil {
		// Losing the filter is recoverable; losing the claims is not
		state.AddError("classification error: %v", err)
		state.VerifiableClaims = state.ExtractedClaims
		return
	}
	state.VerifiableClaims = filtered
	state.addModel(p.fastModel)
}

func (p *Pipeline) runQueryPlanning(ctx context.Context, state *State) {
	defer p.guard(state, "query planning")
	state.SearchQueries = p.planner.Plan(ctx, state.VerifiableClaims, state.Vertical)
}

func (p *Pipeline) runRetrieval(ctx context.Context, state *State) {
	defer p.guard(state, "retrieval")
	state.RawEvidence = p.retriever.Fetch(ctx, state.SearchQueries)
	for _, items := range state.RawEvidence {
		state.SourcesChecked += len(items)
	}
}

func (p *Pipeline) runRanking(ctx context.Context, state *State) {
	// If ranking blows up, unranked evidence still beats none
	state.RankedEvidence = state.RawEvidence
	defer p.guard(state, "evidence ranking")
	state.RankedEvidence = p.ranker.Rank(ctx, state.VerifiableClaims, state.RawEvidence)
}

func (p *Pipeline) runVerification(ctx context.Context, state *State) {
	defer p.guard(state, "verification")
	state.Verdicts = p.verifier.Verify(ctx, state.VerifiableClaims, state.RankedEvidence)
}

func (p *Pipeline) runFormatting(state *State) {
	defer p.guard(state, "result formatting")
	state.Claims = p.formatter.Format(state.VerifiableClaims, state.Verdicts, state.RankedEvidence)
}

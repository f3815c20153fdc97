// Package recommend is the request-scoped orchestration over the engine:
// validate the assessment, resolve the current stack, run the pipeline and
// the three policies, then enrich each scenario with costs and prose.
package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"stackadvisor-backend/internal/assessment"
	"stackadvisor-backend/internal/catalog"
	"stackadvisor-backend/internal/costs"
	"stackadvisor-backend/internal/matcher"
	"stackadvisor-backend/internal/narrative"
	"stackadvisor-backend/internal/recommend/engine"
	"stackadvisor-backend/internal/shared/telemetry"
)

// ErrInvalidAssessment wraps validation failures so the handler can map them
// to a 400 without inspecting message text.
type ErrInvalidAssessment struct {
	Reason error
}

func (e ErrInvalidAssessment) Error() string {
	return fmt.Sprintf("invalid assessment: %v", e.Reason)
}

func (e ErrInvalidAssessment) Unwrap() error { return e.Reason }

// Service runs one recommendation end to end.
type Service struct {
	Catalog       catalog.Repo
	Matcher       *matcher.Service
	Pipeline      *engine.Pipeline
	Builder       *engine.Builder
	Narrative     narrative.Generator
	fallback      *narrative.TemplateGenerator
	EngineVersion string
}

func NewService(cat catalog.Repo, match *matcher.Service, pipeline *engine.Pipeline, builder *engine.Builder, gen narrative.Generator, engineVersion string) *Service {
	if gen == nil {
		gen = narrative.NewTemplateGenerator()
	}
	return &Service{
		Catalog:       cat,
		Matcher:       match,
		Pipeline:      pipeline,
		Builder:       builder,
		Narrative:     gen,
		fallback:      narrative.NewTemplateGenerator(),
		EngineVersion: engineVersion,
	}
}

// Recommend validates the assessment and produces the three scenarios.
func (s *Service) Recommend(ctx context.Context, raw assessment.Assessment) (Response, error) {
	a := assessment.Normalize(raw)
	if err := assessment.Validate(a); err != nil {
		return Response{}, ErrInvalidAssessment{Reason: err}
	}

	runID := uuid.NewString()

	snapshot, err := s.Catalog.GetAll(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("load catalog: %w", err)
	}

	matched, err := s.Matcher.Resolve(ctx, a.CurrentToolNames())
	if err != nil {
		return Response{}, fmt.Errorf("resolve current tools: %w", err)
	}

	pc := s.Pipeline.BuildContext(ctx, a, snapshot, matched.Tools, nil)
	built := s.Builder.BuildAll(ctx, pc)

	scenarios := make([]ScenarioDTO, len(built))
	g, gctx := errgroup.WithContext(ctx)
	for i, sc := range built {
		g.Go(func() error {
			proj := costs.Project(sc.Tools, matched.Tools, a.TeamSize)
			scenarios[i] = ScenarioDTO{
				Name:                sc.Name,
				Strategy:            sc.Strategy,
				Narrative:           s.narrate(gctx, a, sc, proj, runID),
				Tools:               sc.Tools,
				Displaced:           sc.Displaced,
				ComplexityReduction: sc.ComplexityReduction,
				Costs:               proj,
				MatchedClusters:     sc.MatchedClusters,
				Workflow:            sc.Workflow,
			}
			return nil
		})
	}
	_ = g.Wait()

	telemetry.Info("recommend.complete", map[string]any{
		"run_id":     runID,
		"stage":      string(a.Stage),
		"team_size":  string(a.TeamSize),
		"anchored":   pc.Anchor != nil,
		"unresolved": len(matched.Unresolved),
	})

	return Response{
		RunID:         runID,
		EngineVersion: s.EngineVersion,
		Anchor:        pc.Anchor,
		Unresolved:    matched.Unresolved,
		Weights:       pc.Weights,
		Scenarios:     scenarios,
	}, nil
}

// narrate never fails the run: a generator error falls back to the
// deterministic template, and a template error to empty prose.
func (s *Service) narrate(ctx context.Context, a assessment.Assessment, sc engine.BuiltScenario, proj costs.Projection, runID string) string {
	in := narrative.Input{Assessment: a, Scenario: sc, Costs: proj}
	text, err := s.Narrative.Narrate(ctx, in)
	if err == nil && strings.TrimSpace(text) != "" {
		return text
	}
	if err != nil {
		telemetry.Warn("recommend.narrative_degraded", map[string]any{
			"run_id":   runID,
			"scenario": string(sc.Strategy),
			"error":    err.Error(),
		})
	}
	text, err = s.fallback.Narrate(ctx, in)
	if err != nil {
		return ""
	}
	return text
}

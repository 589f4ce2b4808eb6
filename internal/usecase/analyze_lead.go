package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

// Tempo máximo que o lease de análise fica de pé. Cobre com folga uma
// chamada travada no OpenRouter; depois disso o lead volta a ficar analisável.
const analysisLeaseTTL = 2 * time.Minute

type AnalyzeLeadUseCase struct {
	Repo       entity.LeadRepositoryInterface
	Classifier Classifier
	Events     EventPublisher

	leases *cache.Cache
}

func NewAnalyzeLeadUseCase(repo entity.LeadRepositoryInterface, classifier Classifier, events EventPublisher) *AnalyzeLeadUseCase {
	return &AnalyzeLeadUseCase{
		Repo:       repo,
		Classifier: classifier,
		Events:     events,
		leases:     cache.New(analysisLeaseTTL, 5*time.Minute),
	}
}

// Execute roda o pipeline de análise: busca → classifica → persiste.
// Idempotente em forma: reanalisar sobrescreve os três campos derivados.
// Em qualquer falha antes da escrita, o lead permanece intocado.
func (uc *AnalyzeLeadUseCase) Execute(ctx context.Context, leadID string) (*entity.LeadAnalysis, error) {
	// Lease por lead: duas análises simultâneas do mesmo ID disputariam a
	// escrita final. cache.Add é atômico, só o primeiro chamador passa.
	if err := uc.leases.Add(leadID, struct{}{}, cache.DefaultExpiration); err != nil {
		return nil, ErrAnalysisInProgress
	}
	defer uc.leases.Delete(leadID)

	// 1. Busca
	lead, err := uc.Repo.FindByID(ctx, leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, err
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to fetch lead",
			Err:     err,
		}
	}

	// 2. Classificação remota. O tipo detalhado do erro (upstream, resposta
	// vazia, JSON quebrado) fica no log; o chamador recebe um código único.
	analysis, err := uc.Classifier.Classify(ctx, lead)
	if err != nil {
		log.Printf("❌ [ANALYZE] Classificação falhou para lead %s: %v", leadID, err)
		return nil, &TechnicalError{
			Code:    "ANALYSIS_FAILED",
			Message: "ai analysis failed",
			Err:     err,
		}
	}

	// 3. Valida a forma antes de persistir: o dashboard filtra por esses
	// valores, então resposta fora da enumeração é tratada como falha.
	if err := normalizeAnalysis(analysis); err != nil {
		log.Printf("❌ [ANALYZE] Resposta fora do contrato para lead %s: %v", leadID, err)
		return nil, &TechnicalError{
			Code:    "ANALYSIS_FAILED",
			Message: "ai analysis failed",
			Err:     err,
		}
	}

	// 4. Persiste os três campos derivados em um único UPDATE.
	if err := uc.Repo.UpdateAnalysis(ctx, leadID, *analysis); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return nil, err
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist analysis",
			Err:     err,
		}
	}

	lead.ApplyAnalysis(*analysis)

	if uc.Events != nil {
		go func() {
			if err := uc.Events.LeadAnalyzed(context.Background(), lead); err != nil {
				log.Printf("⚠️ [ANALYZE] Falha ao publicar lead.analyzed para %s: %v", lead.ID, err)
			}
		}()
	}

	return analysis, nil
}

func normalizeAnalysis(a *entity.LeadAnalysis) error {
	if a.Summary == "" {
		return errors.New("model returned empty summary")
	}

	score, ok := entity.CanonicalQualityScore(a.QualityScore)
	if !ok {
		return fmt.Errorf("model returned unknown leadQualityScore %q", a.QualityScore)
	}

	action, ok := entity.CanonicalNextAction(a.NextAction)
	if !ok {
		return fmt.Errorf("model returned unknown suggestedNextAction %q", a.NextAction)
	}

	a.QualityScore = score
	a.NextAction = action
	return nil
}

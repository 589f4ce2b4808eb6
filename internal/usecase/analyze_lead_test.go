package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func storedLead() *entity.Lead {
	return &entity.Lead{
		ID:           "lead-123",
		Name:         "Jane Doe",
		Email:        "jane@x.com",
		Phone:        "555-0100",
		BusinessType: "SaaS",
		Budget:       "5L+",
		Timeline:     "Urgent",
		Requirement:  "Need a CRM integration",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestAnalyzeLeadSuccess(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockClassifier := new(MockClassifier)

	mockRepo.On("FindByID", mock.Anything, "lead-123").Return(storedLead(), nil)
	mockClassifier.On("Classify", mock.Anything, mock.Anything).Return(&entity.LeadAnalysis{
		Summary:      "SaaS company needs urgent CRM integration with high budget.",
		QualityScore: "Hot",
		NextAction:   "Call",
	}, nil)
	mockRepo.On("UpdateAnalysis", mock.Anything, "lead-123", entity.LeadAnalysis{
		Summary:      "SaaS company needs urgent CRM integration with high budget.",
		QualityScore: "Hot",
		NextAction:   "Call",
	}).Return(nil)

	uc := usecase.NewAnalyzeLeadUseCase(mockRepo, mockClassifier, nil)

	analysis, err := uc.Execute(context.Background(), "lead-123")

	assert.NoError(t, err)
	assert.Equal(t, "Hot", analysis.QualityScore)
	assert.Equal(t, "Call", analysis.NextAction)
	mockRepo.AssertExpectations(t)
	mockClassifier.AssertExpectations(t)
}

func TestAnalyzeLeadNormalizesEnumCasing(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockClassifier := new(MockClassifier)

	mockRepo.On("FindByID", mock.Anything, "lead-123").Return(storedLead(), nil)
	mockClassifier.On("Classify", mock.Anything, mock.Anything).Return(&entity.LeadAnalysis{
		Summary:      "Exploratory inquiry.",
		QualityScore: "cold",
		NextAction:   "follow up",
	}, nil)
	mockRepo.On("UpdateAnalysis", mock.Anything, "lead-123", entity.LeadAnalysis{
		Summary:      "Exploratory inquiry.",
		QualityScore: "Cold",
		NextAction:   "Follow-up",
	}).Return(nil)

	uc := usecase.NewAnalyzeLeadUseCase(mockRepo, mockClassifier, nil)

	analysis, err := uc.Execute(context.Background(), "lead-123")

	assert.NoError(t, err)
	assert.Equal(t, "Cold", analysis.QualityScore)
	assert.Equal(t, "Follow-up", analysis.NextAction)
	mockRepo.AssertExpectations(t)
}

func TestAnalyzeLeadNotFound(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockClassifier := new(MockClassifier)

	mockRepo.On("FindByID", mock.Anything, "ghost").Return(nil, entity.ErrLeadNotFound)

	uc := usecase.NewAnalyzeLeadUseCase(mockRepo, mockClassifier, nil)

	analysis, err := uc.Execute(context.Background(), "ghost")

	assert.Nil(t, analysis)
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
	mockClassifier.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "UpdateAnalysis", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyzeLeadClassifierFailure(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockClassifier := new(MockClassifier)

	mockRepo.On("FindByID", mock.Anything, "lead-123").Return(storedLead(), nil)
	mockClassifier.On("Classify", mock.Anything, mock.Anything).
		Return(nil, errors.New("openrouter recusou a requisição (status 500)"))

	uc := usecase.NewAnalyzeLeadUseCase(mockRepo, mockClassifier, nil)

	analysis, err := uc.Execute(context.Background(), "lead-123")

	assert.Nil(t, analysis)
	assert.True(t, usecase.IsTechnicalError(err))
	var te *usecase.TechnicalError
	errors.As(err, &te)
	assert.Equal(t, "ANALYSIS_FAILED", te.Code)
	// O erro detalhado do upstream continua acessível via Unwrap
	assert.Contains(t, te.Unwrap().Error(), "status 500")
	// Nenhuma escrita no banco em falha pré-persistência
	mockRepo.AssertNotCalled(t, "UpdateAnalysis", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyzeLeadRejectsUnknownScore(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockClassifier := new(MockClassifier)

	mockRepo.On("FindByID", mock.Anything, "lead-123").Return(storedLead(), nil)
	mockClassifier.On("Classify", mock.Anything, mock.Anything).Return(&entity.LeadAnalysis{
		Summary:      "Some summary",
		QualityScore: "Scorching",
		NextAction:   "Call",
	}, nil)

	uc := usecase.NewAnalyzeLeadUseCase(mockRepo, mockClassifier, nil)

	analysis, err := uc.Execute(context.Background(), "lead-123")

	assert.Nil(t, analysis)
	assert.True(t, usecase.IsTechnicalError(err))
	mockRepo.AssertNotCalled(t, "UpdateAnalysis", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyzeLeadStoreFailureOnUpdate(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockClassifier := new(MockClassifier)

	mockRepo.On("FindByID", mock.Anything, "lead-123").Return(storedLead(), nil)
	mockClassifier.On("Classify", mock.Anything, mock.Anything).Return(&entity.LeadAnalysis{
		Summary:      "Some summary",
		QualityScore: "Warm",
		NextAction:   "Email",
	}, nil)
	mockRepo.On("UpdateAnalysis", mock.Anything, "lead-123", mock.Anything).
		Return(errors.New("connection reset"))

	uc := usecase.NewAnalyzeLeadUseCase(mockRepo, mockClassifier, nil)

	analysis, err := uc.Execute(context.Background(), "lead-123")

	assert.Nil(t, analysis)
	var te *usecase.TechnicalError
	errors.As(err, &te)
	assert.Equal(t, "DATABASE_ERROR", te.Code)
}

// Reanalisar um lead já analisado sobrescreve os três campos derivados.
func TestAnalyzeLeadReRunOverwrites(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockClassifier := new(MockClassifier)

	analyzed := storedLead()
	analyzed.ApplyAnalysis(entity.LeadAnalysis{
		Summary:      "Old summary",
		QualityScore: "Cold",
		NextAction:   "Email",
	})

	mockRepo.On("FindByID", mock.Anything, "lead-123").Return(analyzed, nil)
	mockClassifier.On("Classify", mock.Anything, mock.Anything).Return(&entity.LeadAnalysis{
		Summary:      "Fresh summary",
		QualityScore: "Hot",
		NextAction:   "Call",
	}, nil)
	mockRepo.On("UpdateAnalysis", mock.Anything, "lead-123", entity.LeadAnalysis{
		Summary:      "Fresh summary",
		QualityScore: "Hot",
		NextAction:   "Call",
	}).Return(nil)

	uc := usecase.NewAnalyzeLeadUseCase(mockRepo, mockClassifier, nil)

	analysis, err := uc.Execute(context.Background(), "lead-123")

	assert.NoError(t, err)
	assert.Equal(t, "Fresh summary", analysis.Summary)
	mockRepo.AssertExpectations(t)
}

// Duas análises simultâneas do mesmo lead: a segunda é rejeitada pelo lease.
func TestAnalyzeLeadConcurrentLease(t *testing.T) {
	mockRepo := new(MockLeadRepository)
	mockClassifier := new(MockClassifier)

	started := make(chan struct{}, 2)
	release := make(chan struct{})

	mockRepo.On("FindByID", mock.Anything, "lead-123").Return(storedLead(), nil)
	mockClassifier.On("Classify", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			started <- struct{}{}
			<-release
		}).
		Return(&entity.LeadAnalysis{
			Summary:      "Slow summary",
			QualityScore: "Warm",
			NextAction:   "Email",
		}, nil)
	mockRepo.On("UpdateAnalysis", mock.Anything, "lead-123", mock.Anything).Return(nil)

	uc := usecase.NewAnalyzeLeadUseCase(mockRepo, mockClassifier, nil)

	firstDone := make(chan error)
	go func() {
		_, err := uc.Execute(context.Background(), "lead-123")
		firstDone <- err
	}()

	// Espera a primeira análise segurar o lease
	<-started

	_, err := uc.Execute(context.Background(), "lead-123")
	assert.ErrorIs(t, err, usecase.ErrAnalysisInProgress)

	close(release)
	assert.NoError(t, <-firstDone)

	// Com o lease liberado, uma nova análise passa normalmente
	_, err = uc.Execute(context.Background(), "lead-123")
	assert.NoError(t, err)
}

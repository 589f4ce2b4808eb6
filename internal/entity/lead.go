package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

// Valores válidos para lead_quality_score
const (
	QualityHot  = "Hot"
	QualityWarm = "Warm"
	QualityCold = "Cold"
)

// Valores válidos para suggested_next_action
const (
	ActionCall         = "Call"
	ActionEmail        = "Email"
	ActionFollowUp     = "Follow-up"
	ActionScheduleDemo = "Schedule Demo"
)

var (
	ErrLeadNotFound        = errors.New("lead not found")
	ErrConstraintViolation = errors.New("constraint violation")
)

// Entidade: Lead
type Lead struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	BusinessType string `json:"business_type"`
	Requirement  string `json:"requirement"`

	// Opcionais no formulário (brackets fixos no front, texto livre no banco)
	Budget   string `json:"budget,omitempty"`
	Timeline string `json:"timeline,omitempty"`

	// Campos derivados pela análise de IA. Nulos até a primeira análise bem-sucedida.
	AISummary           *string `json:"ai_summary,omitempty"`
	LeadQualityScore    *string `json:"lead_quality_score,omitempty"`
	SuggestedNextAction *string `json:"suggested_next_action,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LeadAnalysis é o resultado de uma rodada de classificação.
type LeadAnalysis struct {
	Summary      string `json:"ai_summary"`
	QualityScore string `json:"lead_quality_score"`
	NextAction   string `json:"suggested_next_action"`
}

// Factory
func NewLead(name, email, phone, businessType, requirement, budget, timeline string) (*Lead, error) {
	lead := &Lead{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Phone:        phone,
		BusinessType: businessType,
		Requirement:  requirement,
		Budget:       budget,
		Timeline:     timeline,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.Name == "" {
		return errors.New("name is required")
	}
	if l.Email == "" {
		return errors.New("email is required")
	}
	if l.Phone == "" {
		return errors.New("phone is required")
	}
	if l.BusinessType == "" {
		return errors.New("business_type is required")
	}
	if l.Requirement == "" {
		return errors.New("requirement is required")
	}
	return nil
}

// Analyzed indica se o lead já passou por uma análise completa.
// Os três campos derivados andam sempre juntos.
func (l *Lead) Analyzed() bool {
	return l.AISummary != nil && l.LeadQualityScore != nil && l.SuggestedNextAction != nil
}

func (l *Lead) ApplyAnalysis(a LeadAnalysis) {
	l.AISummary = &a.Summary
	l.LeadQualityScore = &a.QualityScore
	l.SuggestedNextAction = &a.NextAction
	l.UpdatedAt = time.Now()
}

// CanonicalQualityScore normaliza a resposta do modelo para o valor canônico.
// Retorna false se o valor não pertence à enumeração.
func CanonicalQualityScore(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hot":
		return QualityHot, true
	case "warm":
		return QualityWarm, true
	case "cold":
		return QualityCold, true
	}
	return "", false
}

func CanonicalNextAction(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call":
		return ActionCall, true
	case "email":
		return ActionEmail, true
	case "follow-up", "followup", "follow up":
		return ActionFollowUp, true
	case "schedule demo", "schedule-demo":
		return ActionScheduleDemo, true
	}
	return "", false
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindAll(ctx context.Context) ([]*Lead, error)
	UpdateAnalysis(ctx context.Context, id string, analysis LeadAnalysis) error
}

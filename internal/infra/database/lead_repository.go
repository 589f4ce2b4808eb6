package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/lib/pq"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, email, phone, business_type, budget, timeline, requirement, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.BusinessType,
		nullString(lead.Budget),
		nullString(lead.Timeline),
		lead.Requirement,
		lead.CreatedAt,
		lead.UpdatedAt,
	)

	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped
		}

		log.Printf("Erro crítico no banco: %v", err)
		return err
	}

	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `
		SELECT id, name, email, phone, business_type, budget, timeline, requirement,
		       ai_summary, lead_quality_score, suggested_next_action, created_at, updated_at
		FROM leads
		WHERE id = $1
	`

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}

	return lead, nil
}

// FindAll retorna todos os leads, mais recentes primeiro.
func (r *LeadRepository) FindAll(ctx context.Context) ([]*entity.Lead, error) {
	query := `
		SELECT id, name, email, phone, business_type, budget, timeline, requirement,
		       ai_summary, lead_quality_score, suggested_next_action, created_at, updated_at
		FROM leads
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []*entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	return leads, rows.Err()
}

// UpdateAnalysis grava os três campos derivados em um único UPDATE.
// Os campos obrigatórios do lead não são tocados.
func (r *LeadRepository) UpdateAnalysis(ctx context.Context, id string, analysis entity.LeadAnalysis) error {
	query := `
		UPDATE leads
		SET ai_summary = $2,
		    lead_quality_score = $3,
		    suggested_next_action = $4,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.DB.ExecContext(ctx, query,
		id,
		analysis.Summary,
		analysis.QualityScore,
		analysis.NextAction,
	)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped
		}

		log.Printf("Erro crítico no banco: %v", err)
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var budget, timeline, aiSummary, qualityScore, nextAction sql.NullString

	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.BusinessType,
		&budget,
		&timeline,
		&lead.Requirement,
		&aiSummary,
		&qualityScore,
		&nextAction,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	lead.Budget = budget.String
	lead.Timeline = timeline.String
	lead.AISummary = nullStringPtr(aiSummary)
	lead.LeadQualityScore = nullStringPtr(qualityScore)
	lead.SuggestedNextAction = nullStringPtr(nextAction)

	return &lead, nil
}

// mapConstraintError traduz violações de constraint (classe 23) do Postgres
// para o sentinel de domínio, preservando a mensagem original.
func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return fmt.Errorf("%w: %s", entity.ErrConstraintViolation, pqErr.Message)
	}
	return nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

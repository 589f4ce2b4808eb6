package usecase

import "errors"

// ErrAnalysisInProgress: já existe uma análise rodando para o mesmo lead.
// O lease por lead evita duas escritas concorrentes dos campos derivados.
var ErrAnalysisInProgress = errors.New("analysis already in progress for this lead")

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

type TechnicalError struct {
	Code    string
	Message string
	Err     error // causa detalhada, preservada para logs/telemetria
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

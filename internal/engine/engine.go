package engine

import (
	"fmt"

	"go.uber.org/zap"

	"tax-engine/internal/model"
	"tax-engine/internal/taxyear"
)

// Tables resolves a tax year to its constant table.
type Tables interface {
	Get(year int) (*taxyear.Table, error)
}

// Engine computes returns. It holds no per-return state and is safe for
// concurrent use.
type Engine struct {
	tables      Tables
	defaultYear int
	log         *zap.Logger
}

func New(tables Tables, defaultYear int, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{tables: tables, defaultYear: defaultYear, log: log}
}

// Year returns the tax year a situation is computed for.
func (e *Engine) Year(sit *model.Situation) int {
	if sit.TaxYear > 0 {
		return sit.TaxYear
	}
	return e.defaultYear
}

// Compute runs the full pipeline on sit. Input problems come back as messages;
// a critical message means no return was produced. The error is reserved for
// configuration failures (see taxyear.ErrUnsupportedYear and friends).
func (e *Engine) Compute(sit *model.Situation) (*model.TaxReturn, []model.CalculationMessage, error) {
	status, err := model.ParseFilingStatus(string(sit.Profile.Status))
	if err != nil {
		return nil, []model.CalculationMessage{{
			Level:   model.LevelCritical,
			Code:    model.CodeInvalidFilingStatus,
			Message: err.Error(),
			Field:   "profile.filing_status",
		}}, nil
	}

	year := e.Year(sit)
	table, err := e.tables.Get(year)
	if err != nil {
		e.log.Warn("tax table unavailable", zap.Int("tax_year", year), zap.Error(err))
		return nil, nil, fmt.Errorf("compute %d return: %w", year, err)
	}
	brackets, err := table.Brackets(status)
	if err != nil {
		e.log.Warn("bracket table unavailable", zap.Int("tax_year", year), zap.String("filing_status", string(status)), zap.Error(err))
		return nil, nil, fmt.Errorf("compute %d return: %w", year, err)
	}

	in := *sit
	in.TaxYear = year
	in.Profile.Status = status

	p := &pipeline{table: table, brackets: brackets, year: year, status: status}
	ret := p.run(&in)

	for _, d := range ret.Defaulted {
		e.log.Debug("input field defaulted", zap.String("path", d.Path), zap.String("raw", d.Raw), zap.String("reason", d.Reason))
	}
	return ret, p.messages, nil
}

package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tax-engine/internal/model"
	"tax-engine/internal/mutations"
)

// MessageLog numbers messages in the order they are raised.
type MessageLog struct {
	Messages []model.CalculationMessage
	critical bool
}

// Add appends msgs and returns their ids.
func (l *MessageLog) Add(msgs ...model.CalculationMessage) []int {
	var ids []int
	for _, m := range msgs {
		m.ID = len(l.Messages)
		l.Messages = append(l.Messages, m)
		ids = append(ids, m.ID)
		if m.Level == model.LevelCritical {
			l.critical = true
		}
	}
	return ids
}

func (l *MessageLog) Critical() bool { return l.critical }

// ApplyMutations validates and applies each mutation to sit in order. It stops
// at the first mutation that raises a critical message; sit then holds the
// changes of every mutation before it.
func ApplyMutations(sit *model.Situation, muts []model.Mutation, log *MessageLog) []model.ProcessedMutation {
	processed := make([]model.ProcessedMutation, 0, len(muts))
	for _, mut := range muts {
		handler, ok := mutations.Get(mut.MutationDefinitionName)
		if !ok {
			ids := log.Add(model.CalculationMessage{
				Level:   model.LevelCritical,
				Code:    model.CodeUnknownMutation,
				Message: fmt.Sprintf("Unknown mutation: %s", mut.MutationDefinitionName),
			})
			processed = append(processed, model.ProcessedMutation{Mutation: mut, CalculationMessageIndexes: ids})
			break
		}

		ids := log.Add(handler.Validate(sit, &mut)...)
		if log.Critical() {
			processed = append(processed, model.ProcessedMutation{Mutation: mut, CalculationMessageIndexes: ids})
			break
		}

		ids = append(ids, log.Add(handler.Apply(sit, &mut)...)...)
		processed = append(processed, model.ProcessedMutation{Mutation: mut, CalculationMessageIndexes: ids})
		if log.Critical() {
			break
		}
	}
	return processed
}

// Process applies the request's mutations to its starting situation and
// computes the resulting return.
func (e *Engine) Process(req *model.CalculationRequest) *model.CalculationResponse {
	start := time.Now()

	var sit model.Situation
	if req.Situation != nil {
		sit = req.Situation.Clone()
	}
	if req.TaxYear > 0 {
		sit.TaxYear = req.TaxYear
	}

	log := &MessageLog{}
	processed := ApplyMutations(&sit, req.CalculationInstructions.Mutations, log)

	var ret *model.TaxReturn
	if !log.Critical() {
		ret = e.ComputeLogged(&sit, log)
	}

	outcome := model.OutcomeSuccess
	if log.Critical() {
		outcome = model.OutcomeFailure
		ret = nil
	}

	elapsed := time.Since(start)
	now := time.Now().UTC()
	calcID := uuid.New().String()

	messages := log.Messages
	if messages == nil {
		messages = []model.CalculationMessage{}
	}

	e.log.Info("calculation completed",
		zap.String("calculation_id", calcID),
		zap.String("return_id", req.ReturnID),
		zap.Int("tax_year", e.Year(&sit)),
		zap.String("outcome", outcome),
		zap.Int("messages", len(messages)),
		zap.Duration("duration", elapsed),
	)

	return &model.CalculationResponse{
		CalculationMetadata: model.CalculationMetadata{
			CalculationID:          calcID,
			ReturnID:               req.ReturnID,
			TaxYear:                e.Year(&sit),
			CalculationStartedAt:   now.Add(-elapsed).Format(time.RFC3339),
			CalculationCompletedAt: now.Format(time.RFC3339),
			CalculationDurationMs:  elapsed.Milliseconds(),
			CalculationOutcome:     outcome,
		},
		CalculationResult: model.CalculationResult{
			Messages:  messages,
			Mutations: processed,
			Situation: sit,
			Return:    ret,
		},
	}
}

// ComputeLogged runs Compute and records its messages in log. A configuration
// failure becomes a critical CONFIGURATION_ERROR message and a nil return.
func (e *Engine) ComputeLogged(sit *model.Situation, log *MessageLog) *model.TaxReturn {
	ret, msgs, err := e.Compute(sit)
	log.Add(msgs...)
	if err != nil {
		log.Add(model.CalculationMessage{
			Level:   model.LevelCritical,
			Code:    model.CodeConfigurationError,
			Message: err.Error(),
			Field:   "tax_year",
		})
		return nil
	}
	return ret
}

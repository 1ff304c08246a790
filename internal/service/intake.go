package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"planhaus/internal/intake"
	"planhaus/internal/model"

	"gorm.io/gorm"
)

// IntakeService owns the intake wizard lifecycle: a draft row appears on the
// first step save, step submissions mutate it, and Submit marks it terminal
// once the complete schema (consent included) passes.
type IntakeService struct{ db *gorm.DB }

func NewIntakeService(db *gorm.DB) *IntakeService { return &IntakeService{db: db} }

func (s *IntakeService) Get(ctx context.Context, userID int) (*model.IntakeRecord, *intake.Record, error) {
	var row model.IntakeRecord
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("get intake: %w", err)
	}
	rec, err := decodeIntake(&row)
	if err != nil {
		return nil, nil, err
	}
	return &row, rec, nil
}

// SaveStep validates one step in draft mode and persists it. A failing draft
// validation is returned to the caller as the Result; nothing is stored then.
func (s *IntakeService) SaveStep(ctx context.Context, userID int, step string, payload json.RawMessage) (intake.Result, error) {
	res := intake.ValidateStep(step, payload, intake.ModeDraft)
	if !res.OK {
		return res, nil
	}

	row, rec, err := s.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		row = &model.IntakeRecord{UserID: userID}
		rec = &intake.Record{}
		err = nil
	}
	if err != nil {
		return res, err
	}

	applyStep(rec, step, res.Data)
	data, merr := json.Marshal(rec)
	if merr != nil {
		return res, fmt.Errorf("encode intake: %w", merr)
	}
	row.Data = data
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return res, fmt.Errorf("save intake: %w", err)
	}
	return res, nil
}

// Submit validates the whole record with the complete schema and marks the
// intake terminal. Validation failures come back as the Result, not an error.
func (s *IntakeService) Submit(ctx context.Context, userID int) (intake.Result, error) {
	row, rec, err := s.Get(ctx, userID)
	if err != nil {
		return intake.Result{}, err
	}
	res := intake.ValidateRecord(rec, intake.ModeComplete)
	if !res.OK {
		return res, nil
	}
	if err := s.db.WithContext(ctx).Model(row).Update("submitted", true).Error; err != nil {
		return res, fmt.Errorf("mark submitted: %w", err)
	}
	return res, nil
}

func (s *IntakeService) Status(ctx context.Context, userID int) (*model.IntakeStatus, error) {
	row, rec, err := s.Get(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return &model.IntakeStatus{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &model.IntakeStatus{
		Completion: intake.Completion(rec),
		Complete:   intake.IsComplete(rec),
		Submitted:  row.Submitted,
	}, nil
}

func decodeIntake(row *model.IntakeRecord) (*intake.Record, error) {
	rec := &intake.Record{}
	if len(row.Data) > 0 {
		if err := json.Unmarshal(row.Data, rec); err != nil {
			return nil, fmt.Errorf("decode intake: %w", err)
		}
	}
	return rec, nil
}

func applyStep(rec *intake.Record, step string, data any) {
	switch step {
	case intake.StepCouple:
		rec.Couple, _ = data.(*intake.CoupleStep)
	case intake.StepBasics:
		rec.Basics, _ = data.(*intake.BasicsStep)
	case intake.StepBudget:
		rec.Budget, _ = data.(*intake.BudgetStep)
	case intake.StepCeremony:
		rec.Ceremony, _ = data.(*intake.CeremonyStep)
	case intake.StepVendors:
		rec.Vendors, _ = data.(*intake.VendorsStep)
	case intake.StepLogistics:
		rec.Logistics, _ = data.(*intake.LogisticsStep)
	case intake.StepReview:
		rec.Review, _ = data.(*intake.ReviewStep)
	}
}

package service

import (
	"context"
	"encoding/json"
	"testing"

	"planhaus/internal/intake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveStep_CreatesDraftOnFirstSave(t *testing.T) {
	db := openTestDB(t)
	svc := NewIntakeService(db)
	ctx := context.Background()

	res, err := svc.SaveStep(ctx, 1, intake.StepBasics, json.RawMessage(`{"city":"Asheville"}`))
	require.NoError(t, err)
	require.True(t, res.OK)

	row, rec, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, row.Submitted)
	require.NotNil(t, rec.Basics)
	assert.Equal(t, "Asheville", *rec.Basics.City)
}

func TestSaveStep_InvalidDraftIsNotPersisted(t *testing.T) {
	db := openTestDB(t)
	svc := NewIntakeService(db)
	ctx := context.Background()

	res, err := svc.SaveStep(ctx, 1, intake.StepBudget, json.RawMessage(`{"categories":[{"name":"venue","percent":50}]}`))
	require.NoError(t, err)
	assert.False(t, res.OK) // sums to 50

	_, _, err = svc.Get(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveStep_LaterStepsMergeIntoRecord(t *testing.T) {
	db := openTestDB(t)
	svc := NewIntakeService(db)
	ctx := context.Background()

	_, err := svc.SaveStep(ctx, 1, intake.StepBasics, json.RawMessage(`{"city":"Asheville"}`))
	require.NoError(t, err)
	_, err = svc.SaveStep(ctx, 1, intake.StepVendors, json.RawMessage(`{"requiredVendors":["photographer"]}`))
	require.NoError(t, err)

	_, rec, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, rec.Basics)
	require.NotNil(t, rec.Vendors)
	assert.Equal(t, []string{"photographer"}, rec.Vendors.RequiredVendors)
}

func TestSubmit_RejectsIncompleteRecord(t *testing.T) {
	db := openTestDB(t)
	svc := NewIntakeService(db)
	ctx := context.Background()

	_, err := svc.SaveStep(ctx, 1, intake.StepBasics, json.RawMessage(`{"city":"Asheville"}`))
	require.NoError(t, err)

	res, err := svc.Submit(ctx, 1)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.NotEmpty(t, res.Issues)

	row, _, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, row.Submitted)
}

func TestSubmit_MarksTerminalWhenComplete(t *testing.T) {
	db := openTestDB(t)
	svc := NewIntakeService(db)
	ctx := context.Background()

	steps := map[string]string{
		intake.StepCouple: `{"emails":["ana@example.com"]}`,
		intake.StepBasics: `{"firstNames":["Ana","Bea"],"workingTitle":"Ana & Bea","weddingDate":"2025-06-15","city":"Asheville"}`,
		intake.StepBudget: `{"totalBudget":50000,"categories":[{"name":"venue","percent":100}]}`,
		intake.StepReview: `{"consent":true}`,
	}
	for step, payload := range steps {
		res, err := svc.SaveStep(ctx, 1, step, json.RawMessage(payload))
		require.NoError(t, err)
		require.True(t, res.OK, "step %s: %v", step, res.Issues)
	}

	res, err := svc.Submit(ctx, 1)
	require.NoError(t, err)
	require.True(t, res.OK, "issues: %v", res.Issues)

	row, _, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, row.Submitted)

	status, err := svc.Status(ctx, 1)
	require.NoError(t, err)
	assert.True(t, status.Complete)
	assert.True(t, status.Submitted)
}

func TestStatus_NoIntakeIsZero(t *testing.T) {
	db := openTestDB(t)
	svc := NewIntakeService(db)
	status, err := svc.Status(context.Background(), 99)
	require.NoError(t, err)
	assert.Zero(t, status.Completion)
	assert.False(t, status.Complete)
}

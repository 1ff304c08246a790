package intake

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func budgetStep(total float64, percents map[string]float64) *BudgetStep {
	s := &BudgetStep{TotalBudget: &total}
	for name, p := range percents {
		s.Categories = append(s.Categories, BudgetCategory{Name: name, Percent: p})
	}
	return s
}

func TestValidateBudget_SumExactly100(t *testing.T) {
	raw := mustJSON(t, budgetStep(50000, map[string]float64{
		"venue": 45, "catering": 30, "photography": 15, "misc": 10,
	}))
	res := ValidateStep(StepBudget, raw, ModeDraft)
	assert.True(t, res.OK)
	assert.Empty(t, res.Issues)
}

func TestValidateBudget_SumOutOfTolerance(t *testing.T) {
	for _, sum := range []map[string]float64{
		{"venue": 44, "catering": 30, "misc": 10}, // 84
		{"venue": 45, "catering": 45, "bar": 26},  // 116
	} {
		res := ValidateStep(StepBudget, mustJSON(t, budgetStep(10000, sum)), ModeDraft)
		require.False(t, res.OK)
		found := false
		for _, issue := range res.Issues {
			if issue.Path == "budget.categories" {
				found = true
			}
		}
		assert.True(t, found, "expected an issue on budget.categories, got %v", res.Issues)
	}
}

func TestValidateBudget_SumWithinRoundingTolerance(t *testing.T) {
	res := ValidateStep(StepBudget, mustJSON(t, budgetStep(10000, map[string]float64{
		"venue": 33.3, "catering": 33.3, "misc": 33.3, // 99.9
	})), ModeDraft)
	assert.True(t, res.OK)
}

func TestValidateBudget_UnknownCategory(t *testing.T) {
	res := ValidateStep(StepBudget, mustJSON(t, budgetStep(10000, map[string]float64{
		"fireworks": 100,
	})), ModeDraft)
	require.False(t, res.OK)
	assert.Equal(t, "budget.categories[0].name", res.Issues[0].Path)
}

func TestValidateCouple_PhoneFormats(t *testing.T) {
	loose := "+1 (415) 555-0142"
	res := ValidateStep(StepCouple, mustJSON(t, &CoupleStep{
		Phones:       []string{"+14155550142", "+442071838750"},
		ContactPhone: &loose,
	}), ModeDraft)
	assert.True(t, res.OK)

	res = ValidateStep(StepCouple, mustJSON(t, &CoupleStep{
		Phones: []string{"415-555-0142"}, // not E.164
	}), ModeDraft)
	require.False(t, res.OK)
	assert.Equal(t, "couple.phones[0]", res.Issues[0].Path)

	short := "12345"
	res = ValidateStep(StepCouple, mustJSON(t, &CoupleStep{ContactPhone: &short}), ModeDraft)
	require.False(t, res.OK)
	assert.Equal(t, "couple.contactPhone", res.Issues[0].Path)
}

func TestValidateCouple_Email(t *testing.T) {
	res := ValidateStep(StepCouple, mustJSON(t, &CoupleStep{
		Emails: []string{"ana@example.com", "not-an-email"},
	}), ModeDraft)
	require.False(t, res.OK)
	assert.Equal(t, "couple.emails[1]", res.Issues[0].Path)
}

func TestValidateBasics_TwoPartnerNames(t *testing.T) {
	res := ValidateStep(StepBasics, mustJSON(t, &BasicsStep{
		FirstNames: []string{"Ana"},
	}), ModeDraft)
	require.False(t, res.OK)
	assert.Equal(t, "basics.firstNames", res.Issues[0].Path)

	res = ValidateStep(StepBasics, mustJSON(t, &BasicsStep{
		FirstNames: []string{"Ana", "Bea"},
	}), ModeDraft)
	assert.True(t, res.OK)
}

func TestValidateReview_ConsentRequiredOnSubmit(t *testing.T) {
	no := false
	res := ValidateStep(StepReview, mustJSON(t, &ReviewStep{Consent: &no}), ModeComplete)
	require.False(t, res.OK)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, "review.consent", res.Issues[0].Path)

	// Draft mode tolerates missing consent.
	res = ValidateStep(StepReview, mustJSON(t, &ReviewStep{}), ModeDraft)
	assert.True(t, res.OK)
}

func TestValidateStep_DraftAllowsEmptyPayloads(t *testing.T) {
	for _, step := range StepNames {
		res := ValidateStep(step, json.RawMessage(`{}`), ModeDraft)
		assert.True(t, res.OK, "step %s should accept an empty draft", step)
	}
}

func TestValidateStep_MalformedPayloadNeverPanics(t *testing.T) {
	res := ValidateStep(StepBudget, json.RawMessage(`{"totalBudget":"lots"}`), ModeDraft)
	require.False(t, res.OK)
	assert.Equal(t, "budget", res.Issues[0].Path)
}

func TestValidateStep_UnknownStep(t *testing.T) {
	res := ValidateStep("honeymoon", json.RawMessage(`{}`), ModeDraft)
	assert.False(t, res.OK)
}

func TestValidateRecord_RoundTripsValidRecord(t *testing.T) {
	rec := fullRecord()
	res := ValidateRecord(rec, ModeComplete)
	require.True(t, res.OK, "issues: %v", res.Issues)
	got, ok := res.Data.(*Record)
	require.True(t, ok)
	assert.Equal(t, rec.Basics.FirstNames, got.Basics.FirstNames)
	assert.Equal(t, rec.Budget.Categories, got.Budget.Categories)
}

package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompletion_FullRecordIs100(t *testing.T) {
	assert.Equal(t, 100, Completion(fullRecord()))
}

func TestCompletion_SingleStepIs14(t *testing.T) {
	rec := &Record{Couple: &CoupleStep{Emails: []string{"ana@example.com"}}}
	assert.Equal(t, 14, Completion(rec)) // round(1/7*100)
}

func TestCompletion_EmptyRecordIsZero(t *testing.T) {
	assert.Equal(t, 0, Completion(&Record{}))
	assert.Equal(t, 0, Completion(nil))
}

func TestCompletion_TouchedStepCountsRegardlessOfDepth(t *testing.T) {
	// One trivial field marks a step as touched; this is a progress signal,
	// not a completeness audit.
	rec := &Record{
		Basics: &BasicsStep{City: strp("Asheville")},
		Review: &ReviewStep{Newsletter: boolp(false)},
	}
	assert.Equal(t, 29, Completion(rec)) // round(2/7*100)
}

func TestIsComplete_FullRecord(t *testing.T) {
	assert.True(t, IsComplete(fullRecord()))
}

func TestIsComplete_ConsentFalseBlocks(t *testing.T) {
	rec := fullRecord()
	rec.Review.Consent = boolp(false)
	assert.False(t, IsComplete(rec))
}

func TestIsComplete_EachChecklistFieldRequired(t *testing.T) {
	breakers := map[string]func(*Record){
		"first name A": func(r *Record) { r.Basics.FirstNames[0] = "" },
		"first name B": func(r *Record) { r.Basics.FirstNames[1] = "" },
		"title":        func(r *Record) { r.Basics.WorkingTitle = nil },
		"date":         func(r *Record) { r.Basics.WeddingDate = nil },
		"city":         func(r *Record) { r.Basics.City = nil },
		"budget":       func(r *Record) { r.Budget.TotalBudget = nil },
		"consent":      func(r *Record) { r.Review.Consent = nil },
	}
	for name, breaker := range breakers {
		rec := fullRecord()
		breaker(rec)
		assert.False(t, IsComplete(rec), "missing %s should fail the checklist", name)
	}
}

package service

import (
	"context"
	"encoding/json"
	"testing"

	"planhaus/internal/intake"
	"planhaus/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func str(s string) *string   { return &s }
func f64(f float64) *float64 { return &f }
func boolean(b bool) *bool   { return &b }

func intakeFixture() *intake.Record {
	return &intake.Record{
		Basics: &intake.BasicsStep{
			FirstNames:   []string{"Ana", "Bea"},
			WorkingTitle: str("Ana & Bea 2025"),
			WeddingDate:  str("2025-06-15"),
			City:         str("Asheville"),
			StyleTags:    []string{"garden"},
		},
		Budget: &intake.BudgetStep{
			TotalBudget: f64(50000),
			Categories: []intake.BudgetCategory{
				{Name: "venue", Percent: 45},
				{Name: "catering", Percent: 55},
			},
		},
		Vendors: &intake.VendorsStep{RequiredVendors: []string{"photographer"}},
		Logistics: &intake.LogisticsStep{
			RSVPPreference: str("email"),
			WebsiteSlug:    str("ana-and-bea"),
			HotelBlock:     boolean(true),
		},
		Ceremony: &intake.CeremonyStep{CeremonyType: str("outdoor")},
		Review:   &intake.ReviewStep{Consent: boolean(true)},
	}
}

func prefillFixture(t *testing.T, rec *intake.Record) (*PrefillService, *gorm.DB, *model.Project) {
	t.Helper()
	db := openTestDB(t)
	p := seedProject(t, db, 1)
	if rec != nil {
		data, err := json.Marshal(rec)
		require.NoError(t, err)
		require.NoError(t, db.Create(&model.IntakeRecord{UserID: 1, Data: data}).Error)
	}
	return NewPrefillService(db, NewIntakeService(db)), db, p
}

func TestPrefillLoad_RunsAllMappers(t *testing.T) {
	svc, _, p := prefillFixture(t, intakeFixture())
	bundle, err := svc.Load(context.Background(), p.ID)
	require.NoError(t, err)
	require.NotNil(t, bundle.Meta)
	assert.Equal(t, "Ana & Bea 2025", bundle.Meta.Title)
	require.NotNil(t, bundle.Budget)
	assert.NotEmpty(t, bundle.Timeline)
	require.NotNil(t, bundle.Vendors)
	require.NotNil(t, bundle.Guests)
	require.NotNil(t, bundle.Event)
}

func TestPrefillLoad_NoIntakeIsNotFound(t *testing.T) {
	svc, _, p := prefillFixture(t, nil)
	_, err := svc.Load(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPrefillApply_SeedsEverything(t *testing.T) {
	svc, db, p := prefillFixture(t, intakeFixture())
	ctx := context.Background()

	summary, err := svc.Apply(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, summary.MetaApplied)
	assert.Equal(t, 2, summary.BudgetItems)
	assert.Greater(t, summary.Tasks, 0)
	assert.True(t, summary.VendorPrefs)
	assert.True(t, summary.SitePrefs)
	assert.True(t, summary.GuestPrefs)
	assert.True(t, summary.EventDetails)

	var proj model.Project
	require.NoError(t, db.First(&proj, p.ID).Error)
	assert.Equal(t, "Ana & Bea 2025", proj.Title)
	assert.Equal(t, "Asheville", proj.Location)
	require.NotNil(t, proj.WeddingDate)

	var items []model.BudgetItem
	require.NoError(t, db.Where("project_id = ?", p.ID).Find(&items).Error)
	require.Len(t, items, 2)
	assert.InDelta(t, 22500, items[0].EstimatedCost, 0.001)

	var tasks []model.Task
	require.NoError(t, db.Where("project_id = ?", p.ID).Find(&tasks).Error)
	assert.Equal(t, summary.Tasks, len(tasks))

	var prefs model.GuestPrefs
	require.NoError(t, db.Where("project_id = ?", p.ID).First(&prefs).Error)
	assert.Equal(t, "email", prefs.RSVPPreference)
	assert.True(t, prefs.HotelBlock)
}

func TestPrefillApply_ReapplyDoesNotDuplicateSeeds(t *testing.T) {
	svc, db, p := prefillFixture(t, intakeFixture())
	ctx := context.Background()

	first, err := svc.Apply(ctx, p.ID)
	require.NoError(t, err)
	second, err := svc.Apply(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var count int64
	require.NoError(t, db.Model(&model.BudgetItem{}).Where("project_id = ?", p.ID).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// One prefs row per project even after re-apply.
	require.NoError(t, db.Model(&model.GuestPrefs{}).Where("project_id = ?", p.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPrefillApply_ManualRecordsSurviveReapply(t *testing.T) {
	svc, db, p := prefillFixture(t, intakeFixture())
	ctx := context.Background()

	_, err := svc.Apply(ctx, p.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.BudgetItem{ProjectID: p.ID, Category: "misc", Source: "manual"}).Error)

	_, err = svc.Apply(ctx, p.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.BudgetItem{}).
		Where("project_id = ? AND source = ?", p.ID, "manual").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPrefillApply_FailureRollsBackEverything(t *testing.T) {
	svc, db, p := prefillFixture(t, intakeFixture())

	// Event details is the last payload in the apply order; breaking its
	// table makes the transaction fail after meta, budget and tasks wrote.
	require.NoError(t, db.Migrator().DropTable(&model.EventDetails{}))

	_, err := svc.Apply(context.Background(), p.ID)
	require.Error(t, err)

	var proj model.Project
	require.NoError(t, db.First(&proj, p.ID).Error)
	assert.Equal(t, "Test Wedding", proj.Title)
	assert.Nil(t, proj.WeddingDate)

	var count int64
	require.NoError(t, db.Model(&model.BudgetItem{}).Where("project_id = ?", p.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.Task{}).Where("project_id = ?", p.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPrefillApply_NoDateSkipsTimeline(t *testing.T) {
	rec := intakeFixture()
	rec.Basics.WeddingDate = nil
	svc, db, p := prefillFixture(t, rec)

	summary, err := svc.Apply(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.Tasks)

	var proj model.Project
	require.NoError(t, db.First(&proj, p.ID).Error)
	assert.Nil(t, proj.WeddingDate)
}

package intake

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToProjectMeta_TitleDefault(t *testing.T) {
	rec := fullRecord()
	rec.Basics.WorkingTitle = nil
	meta := ToProjectMeta(rec)
	require.NotNil(t, meta)
	assert.Equal(t, "Ana & Bea's Wedding", meta.Title)

	rec.Basics.WorkingTitle = strp("The Big One")
	assert.Equal(t, "The Big One", ToProjectMeta(rec).Title)
}

func TestToProjectMeta_AbsentDateStaysNil(t *testing.T) {
	rec := fullRecord()
	rec.Basics.WeddingDate = nil
	meta := ToProjectMeta(rec)
	require.NotNil(t, meta)
	assert.Nil(t, meta.Date)
}

func TestToProjectMeta_NilWithoutBasics(t *testing.T) {
	assert.Nil(t, ToProjectMeta(&Record{}))
	assert.Nil(t, ToProjectMeta(nil))
}

func TestToBudgetPlan_AbsentStepIsNil(t *testing.T) {
	assert.Nil(t, ToBudgetPlan(&Record{}))
}

func TestToBudgetPlan_EstimatedCost(t *testing.T) {
	plan := ToBudgetPlan(fullRecord())
	require.NotNil(t, plan)
	require.Len(t, plan.Categories, 4)
	assert.Equal(t, "venue", plan.Categories[0].Category)
	assert.InDelta(t, 22500, plan.Categories[0].EstimatedCost, 0.001) // 45% of 50000
}

func TestToBudgetPlan_HardCapWinsOverPercent(t *testing.T) {
	rec := fullRecord()
	rec.Budget.Categories[0].HardCap = f64p(18000)
	plan := ToBudgetPlan(rec)
	assert.InDelta(t, 18000, plan.Categories[0].EstimatedCost, 0.001)
}

func TestToTimelineSeed_EmptyWithoutDate(t *testing.T) {
	rec := fullRecord()
	rec.Basics.WeddingDate = nil
	assert.Empty(t, ToTimelineSeed(rec))
	assert.Empty(t, ToTimelineSeed(&Record{}))
}

func TestToTimelineSeed_PhotographerTask(t *testing.T) {
	seeds := ToTimelineSeed(fullRecord())
	var photo []TaskSeed
	for _, s := range seeds {
		if s.Title == "Book photographer" {
			photo = append(photo, s)
		}
	}
	require.Len(t, photo, 1)
	// 2025-06-15 minus 10 months.
	assert.Equal(t, time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC), photo[0].DueDate)
}

func TestToTimelineSeed_SkipsUnrequestedVendors(t *testing.T) {
	seeds := ToTimelineSeed(fullRecord()) // photographer + florist required
	for _, s := range seeds {
		assert.NotEqual(t, "Book caterer", s.Title)
		assert.NotEqual(t, "Book videographer", s.Title)
	}
}

func TestToTimelineSeed_Ordering(t *testing.T) {
	seeds := ToTimelineSeed(fullRecord())
	require.GreaterOrEqual(t, len(seeds), 7)
	// Core first, conditional in fixed category order, closing last.
	assert.Equal(t, "Set your budget", seeds[0].Title)
	assert.Equal(t, "Book your venue", seeds[1].Title)
	assert.Equal(t, "Hire a planner", seeds[2].Title)
	assert.Equal(t, "Book photographer", seeds[3].Title)
	assert.Equal(t, "Book florist", seeds[4].Title)
	assert.Equal(t, "Rehearsal walkthrough", seeds[len(seeds)-1].Title)
}

func TestToTimelineSeed_FractionalMonths(t *testing.T) {
	seeds := ToTimelineSeed(fullRecord())
	last := seeds[len(seeds)-1]
	// 0.1 months rounds to 3 days before the wedding.
	assert.Equal(t, time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC), last.DueDate)
}

func TestToVendorFilters_Defaults(t *testing.T) {
	rec := fullRecord()
	rec.Vendors.RadiusMiles = nil
	f := ToVendorFilters(rec)
	require.NotNil(t, f)
	assert.Equal(t, 50, f.RadiusMiles)
	assert.Equal(t, "Asheville", f.City)
	assert.Nil(t, ToVendorFilters(&Record{}))
}

func TestToGuestPrefs_Defaults(t *testing.T) {
	rec := fullRecord()
	rec.Logistics.RSVPPreference = nil
	p := ToGuestPrefs(rec)
	require.NotNil(t, p)
	assert.Equal(t, "site", p.RSVPPreference)
	assert.True(t, p.HotelBlock)
	assert.Nil(t, ToGuestPrefs(&Record{}))
}

func TestToEventDetails(t *testing.T) {
	d := ToEventDetails(fullRecord())
	require.NotNil(t, d)
	assert.Equal(t, "outdoor", d.CeremonyType)
	assert.Equal(t, "The Orchard Barn", d.ReceptionVenue)
	assert.Equal(t, "16:30", d.StartTime)
	assert.Nil(t, ToEventDetails(&Record{}))
}

func TestMapAll_Idempotent(t *testing.T) {
	rec := fullRecord()
	first := MapAll(rec)
	second := MapAll(rec)
	assert.Equal(t, first, second)
}

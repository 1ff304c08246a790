package intake

import "math"

// IsComplete reports whether the intake carries everything the prefill flow
// needs: both partners' first names, a working title, a date, a city, a total
// budget, and consent. All seven conditions must hold.
func IsComplete(rec *Record) bool {
	if rec == nil || rec.Basics == nil || rec.Budget == nil || rec.Review == nil {
		return false
	}
	b := rec.Basics
	if len(b.FirstNames) != 2 || b.FirstNames[0] == "" || b.FirstNames[1] == "" {
		return false
	}
	if strOr(b.WorkingTitle, "") == "" {
		return false
	}
	if _, ok := rec.WeddingDate(); !ok {
		return false
	}
	if strOr(b.City, "") == "" {
		return false
	}
	if rec.Budget.TotalBudget == nil {
		return false
	}
	return boolOr(rec.Review.Consent, false)
}

// Completion returns the wizard progress as 0..100: the share of the seven
// steps that hold at least one value, rounded to the nearest integer. A step
// with a single trivial field filled counts as done; this feeds a progress
// bar, not a completeness audit.
func Completion(rec *Record) int {
	if rec == nil {
		return 0
	}
	touched := 0
	if coupleTouched(rec.Couple) {
		touched++
	}
	if basicsTouched(rec.Basics) {
		touched++
	}
	if budgetTouched(rec.Budget) {
		touched++
	}
	if ceremonyTouched(rec.Ceremony) {
		touched++
	}
	if vendorsTouched(rec.Vendors) {
		touched++
	}
	if logisticsTouched(rec.Logistics) {
		touched++
	}
	if reviewTouched(rec.Review) {
		touched++
	}
	return int(math.Round(float64(touched) / 7 * 100))
}

func coupleTouched(s *CoupleStep) bool {
	if s == nil {
		return false
	}
	return len(s.Emails) > 0 || len(s.Phones) > 0 || s.PlannerEmail != nil || s.ContactPhone != nil
}

func basicsTouched(s *BasicsStep) bool {
	if s == nil {
		return false
	}
	return len(s.FirstNames) > 0 || len(s.LastNames) > 0 || s.WorkingTitle != nil ||
		s.WeddingDate != nil || s.City != nil || s.Venue != nil || s.GuestCount != nil || len(s.StyleTags) > 0
}

func budgetTouched(s *BudgetStep) bool {
	if s == nil {
		return false
	}
	return s.Currency != nil || s.TotalBudget != nil || len(s.Categories) > 0
}

func ceremonyTouched(s *CeremonyStep) bool {
	if s == nil {
		return false
	}
	return s.CeremonyType != nil || s.OfficiantNeeded != nil || s.ReceptionVenue != nil ||
		s.Indoor != nil || s.StartTime != nil
}

func vendorsTouched(s *VendorsStep) bool {
	if s == nil {
		return false
	}
	return len(s.RequiredVendors) > 0 || len(s.ExcludedVendors) > 0 || s.RadiusMiles != nil || s.Notes != nil
}

func logisticsTouched(s *LogisticsStep) bool {
	if s == nil {
		return false
	}
	return s.HotelBlock != nil || s.ShuttleNeeded != nil || s.RSVPPreference != nil ||
		s.WebsiteSlug != nil || s.DietaryNotes != nil
}

func reviewTouched(s *ReviewStep) bool {
	if s == nil {
		return false
	}
	return s.Consent != nil || s.Newsletter != nil
}

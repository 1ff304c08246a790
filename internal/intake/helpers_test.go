package intake

func strp(s string) *string   { return &s }
func intp(n int) *int         { return &n }
func f64p(f float64) *float64 { return &f }
func boolp(b bool) *bool      { return &b }

// fullRecord builds an intake that passes ModeComplete validation and every
// IsComplete checklist item.
func fullRecord() *Record {
	return &Record{
		Couple: &CoupleStep{
			Emails: []string{"ana@example.com", "bea@example.com"},
			Phones: []string{"+14155550142", "+14155550143"},
		},
		Basics: &BasicsStep{
			FirstNames:   []string{"Ana", "Bea"},
			LastNames:    []string{"Moreno", "Hart"},
			WorkingTitle: strp("Ana & Bea 2025"),
			WeddingDate:  strp("2025-06-15"),
			City:         strp("Asheville"),
			GuestCount:   intp(120),
			StyleTags:    []string{"garden", "rustic"},
		},
		Budget: &BudgetStep{
			Currency:    strp("USD"),
			TotalBudget: f64p(50000),
			Categories: []BudgetCategory{
				{Name: "venue", Percent: 45},
				{Name: "catering", Percent: 30},
				{Name: "photography", Percent: 15},
				{Name: "misc", Percent: 10},
			},
		},
		Ceremony: &CeremonyStep{
			CeremonyType:   strp("outdoor"),
			ReceptionVenue: strp("The Orchard Barn"),
			Indoor:         boolp(false),
			StartTime:      strp("16:30"),
		},
		Vendors: &VendorsStep{
			RequiredVendors: []string{"photographer", "florist"},
			RadiusMiles:     intp(25),
		},
		Logistics: &LogisticsStep{
			HotelBlock:     boolp(true),
			RSVPPreference: strp("email"),
			WebsiteSlug:    strp("ana-and-bea"),
		},
		Review: &ReviewStep{Consent: boolp(true)},
	}
}

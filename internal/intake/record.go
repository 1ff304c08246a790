package intake

import "time"

// Record is the seven-step questionnaire payload. Every step is optional so
// drafts can be saved with partial data; the submit path validates with
// ModeComplete before trusting any field.
type Record struct {
	Couple    *CoupleStep    `json:"couple,omitempty"`
	Basics    *BasicsStep    `json:"basics,omitempty"`
	Budget    *BudgetStep    `json:"budget,omitempty"`
	Ceremony  *CeremonyStep  `json:"ceremony,omitempty"`
	Vendors   *VendorsStep   `json:"vendors,omitempty"`
	Logistics *LogisticsStep `json:"logistics,omitempty"`
	Review    *ReviewStep    `json:"review,omitempty"`
}

// CoupleStep carries contact details for both partners.
type CoupleStep struct {
	Emails       []string `json:"emails,omitempty"`
	Phones       []string `json:"phones,omitempty"` // E.164, one per partner
	PlannerEmail *string  `json:"plannerEmail,omitempty"`
	ContactPhone *string  `json:"contactPhone,omitempty"` // day-of contact, loose format
}

// BasicsStep holds the wedding fundamentals. FirstNames/LastNames must hold
// exactly two entries on submit, one per partner.
type BasicsStep struct {
	FirstNames   []string `json:"firstNames,omitempty"`
	LastNames    []string `json:"lastNames,omitempty"`
	WorkingTitle *string  `json:"workingTitle,omitempty"`
	WeddingDate  *string  `json:"weddingDate,omitempty"` // YYYY-MM-DD
	City         *string  `json:"city,omitempty"`
	Venue        *string  `json:"venue,omitempty"`
	GuestCount   *int     `json:"guestCount,omitempty"`
	StyleTags    []string `json:"styleTags,omitempty"`
}

type BudgetStep struct {
	Currency    *string          `json:"currency,omitempty"`
	TotalBudget *float64         `json:"totalBudget,omitempty"`
	Categories  []BudgetCategory `json:"categories,omitempty"`
}

type BudgetCategory struct {
	Name    string   `json:"name"`
	Percent float64  `json:"percent"`
	HardCap *float64 `json:"hardCap,omitempty"`
}

type CeremonyStep struct {
	CeremonyType    *string `json:"ceremonyType,omitempty"`
	OfficiantNeeded *bool   `json:"officiantNeeded,omitempty"`
	ReceptionVenue  *string `json:"receptionVenue,omitempty"`
	Indoor          *bool   `json:"indoor,omitempty"`
	StartTime       *string `json:"startTime,omitempty"` // HH:MM
}

type VendorsStep struct {
	RequiredVendors []string `json:"requiredVendors,omitempty"`
	ExcludedVendors []string `json:"excludedVendors,omitempty"`
	RadiusMiles     *int     `json:"radiusMiles,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

type LogisticsStep struct {
	HotelBlock     *bool   `json:"hotelBlock,omitempty"`
	ShuttleNeeded  *bool   `json:"shuttleNeeded,omitempty"`
	RSVPPreference *string `json:"rsvpPreference,omitempty"` // site | email | mail
	WebsiteSlug    *string `json:"websiteSlug,omitempty"`
	DietaryNotes   *string `json:"dietaryNotes,omitempty"`
}

type ReviewStep struct {
	Consent    *bool `json:"consent,omitempty"`
	Newsletter *bool `json:"newsletter,omitempty"`
}

// StepNames lists the wizard steps in wizard order.
var StepNames = []string{
	StepCouple, StepBasics, StepBudget, StepCeremony, StepVendors, StepLogistics, StepReview,
}

const (
	StepCouple    = "couple"
	StepBasics    = "basics"
	StepBudget    = "budget"
	StepCeremony  = "ceremony"
	StepVendors   = "vendors"
	StepLogistics = "logistics"
	StepReview    = "review"
)

// BudgetCategories is the closed set of category names the budget step accepts.
var BudgetCategories = []string{
	"venue", "catering", "bar", "photography", "video", "florals", "planning",
	"music", "attire", "stationery", "rentals", "cake", "transportation",
	"beauty", "misc",
}

func validBudgetCategory(name string) bool {
	for _, c := range BudgetCategories {
		if c == name {
			return true
		}
	}
	return false
}

// DateFormat is the wire format for the wedding date.
const DateFormat = "2006-01-02"

// WeddingDate parses the basics step date. Returns the zero time with ok=false
// when the date is absent or malformed.
func (r *Record) WeddingDate() (time.Time, bool) {
	if r == nil || r.Basics == nil || r.Basics.WeddingDate == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(DateFormat, *r.Basics.WeddingDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func strOr(p *string, def string) string {
	if p != nil && *p != "" {
		return *p
	}
	return def
}

func intOr(p *int, def int) int {
	if p != nil {
		return *p
	}
	return def
}

func boolOr(p *bool, def bool) bool {
	if p != nil {
		return *p
	}
	return def
}

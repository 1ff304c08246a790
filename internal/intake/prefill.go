package intake

import (
	"fmt"
	"math"
	"time"
)

// Derived payloads. These are seed shapes handed to the prefill apply step,
// not persisted entities themselves.

type ProjectMeta struct {
	Title      string     `json:"title"`
	Date       *time.Time `json:"date,omitempty"`
	Location   string     `json:"location"`
	GuestCount int        `json:"guestCount"`
	StyleTags  []string   `json:"styleTags,omitempty"`
}

type BudgetPlan struct {
	Currency   string       `json:"currency"`
	Total      float64      `json:"total"`
	Categories []BudgetLine `json:"categories"`
}

type BudgetLine struct {
	Category      string   `json:"category"`
	Percent       float64  `json:"percent"`
	HardCap       *float64 `json:"hardCap,omitempty"`
	EstimatedCost float64  `json:"estimatedCost"`
}

type TaskSeed struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `json:"status"`
}

type VendorFilters struct {
	Required    []string `json:"required"`
	Excluded    []string `json:"excluded"`
	RadiusMiles int      `json:"radiusMiles"`
	City        string   `json:"city"`
}

type SiteContentPrefs struct {
	WebsiteSlug  string `json:"websiteSlug"`
	ShowCouple   bool   `json:"showCouple"`
	ShowSchedule bool   `json:"showSchedule"`
	Headline     string `json:"headline"`
}

type GuestPrefs struct {
	RSVPPreference string `json:"rsvpPreference"`
	CollectDietary bool   `json:"collectDietary"`
	HotelBlock     bool   `json:"hotelBlock"`
	ShuttleNeeded  bool   `json:"shuttleNeeded"`
}

type EventDetails struct {
	CeremonyType    string `json:"ceremonyType"`
	OfficiantNeeded bool   `json:"officiantNeeded"`
	ReceptionVenue  string `json:"receptionVenue"`
	Indoor          *bool  `json:"indoor,omitempty"`
	StartTime       string `json:"startTime"`
}

// ToProjectMeta derives project metadata. Nil when the basics step was never
// touched. An absent wedding date yields a nil Date: downstream timeline math
// must not be fed an invented "today" wedding.
func ToProjectMeta(rec *Record) *ProjectMeta {
	if rec == nil || rec.Basics == nil {
		return nil
	}
	b := rec.Basics
	title := strOr(b.WorkingTitle, "")
	if title == "" && len(b.FirstNames) == 2 {
		title = fmt.Sprintf("%s & %s's Wedding", b.FirstNames[0], b.FirstNames[1])
	}
	meta := &ProjectMeta{
		Title:      title,
		Location:   strOr(b.City, ""),
		GuestCount: intOr(b.GuestCount, 0),
		StyleTags:  b.StyleTags,
	}
	if d, ok := rec.WeddingDate(); ok {
		meta.Date = &d
	}
	return meta
}

// ToBudgetPlan derives the budget seed. Nil when the budget step is entirely
// absent: "no budget data" is distinct from "zero budget".
func ToBudgetPlan(rec *Record) *BudgetPlan {
	if rec == nil || rec.Budget == nil {
		return nil
	}
	b := rec.Budget
	total := 0.0
	if b.TotalBudget != nil {
		total = *b.TotalBudget
	}
	plan := &BudgetPlan{
		Currency: strOr(b.Currency, "USD"),
		Total:    total,
	}
	for _, cat := range b.Categories {
		line := BudgetLine{Category: cat.Name, Percent: cat.Percent, HardCap: cat.HardCap}
		if cat.HardCap != nil {
			line.EstimatedCost = *cat.HardCap
		} else {
			line.EstimatedCost = cat.Percent / 100 * total
		}
		plan.Categories = append(plan.Categories, line)
	}
	return plan
}

// vendorTask pairs a required-vendor category with its task and lead time.
// Order here is the emission order; the output is never re-sorted.
var vendorTasks = []struct {
	category string
	title    string
	months   float64
}{
	{"photographer", "Book photographer", 10},
	{"caterer", "Book caterer", 9},
	{"videographer", "Book videographer", 8},
	{"florist", "Book florist", 6},
	{"musician", "Book music", 6},
	{"baker", "Order wedding cake", 4},
	{"transportation", "Arrange transportation", 3},
	{"beautician", "Book hair and makeup", 2},
}

// ToTimelineSeed emits the seed task list for the wedding date. Empty when no
// date is present. Core tasks come first, then conditional vendor tasks in a
// fixed category order, then closing tasks; insertion order is the contract.
func ToTimelineSeed(rec *Record) []TaskSeed {
	date, ok := rec.WeddingDate()
	if !ok {
		return []TaskSeed{}
	}

	var seeds []TaskSeed
	add := func(title, desc, category, priority string, months float64) {
		seeds = append(seeds, TaskSeed{
			Title:       title,
			Description: desc,
			Category:    category,
			Priority:    priority,
			DueDate:     monthsBefore(date, months),
			Status:      "pending",
		})
	}

	add("Set your budget", "Agree on the total budget and split it across categories.", "planning", "high", 12)
	add("Book your venue", "Tour venues and sign the contract for your date.", "venue", "high", 11)
	add("Hire a planner", "Decide whether you want a full planner or day-of coordination.", "planning", "medium", 11)

	required := map[string]bool{}
	if rec.Vendors != nil {
		for _, name := range rec.Vendors.RequiredVendors {
			required[name] = true
		}
	}
	for _, vt := range vendorTasks {
		if required[vt.category] {
			add(vt.title, fmt.Sprintf("Shortlist and book your %s.", vt.category), vt.category, "medium", vt.months)
		}
	}

	add("Confirm final headcount", "Collect the last RSVPs and send the final count to your caterer.", "guests", "high", 0.5)
	add("Rehearsal walkthrough", "Walk the ceremony with the wedding party the day before.", "ceremony", "high", 0.1)

	return seeds
}

// monthsBefore subtracts a possibly fractional number of months from the
// wedding date. Whole months use calendar math; the fractional remainder is
// converted at 30 days per month (0.1 months is the 3-day "day before" slot).
func monthsBefore(date time.Time, months float64) time.Time {
	whole := int(months)
	frac := months - float64(whole)
	d := date.AddDate(0, -whole, 0)
	if frac > 0 {
		d = d.AddDate(0, 0, -int(math.Round(frac*30)))
	}
	return d
}

// ToVendorFilters derives the vendor discovery filters. Nil when the vendors
// step was never touched.
func ToVendorFilters(rec *Record) *VendorFilters {
	if rec == nil || rec.Vendors == nil {
		return nil
	}
	city := ""
	if rec.Basics != nil {
		city = strOr(rec.Basics.City, "")
	}
	return &VendorFilters{
		Required:    rec.Vendors.RequiredVendors,
		Excluded:    rec.Vendors.ExcludedVendors,
		RadiusMiles: intOr(rec.Vendors.RadiusMiles, 50),
		City:        city,
	}
}

// ToSiteContentPrefs derives wedding-website content preferences.
func ToSiteContentPrefs(rec *Record) *SiteContentPrefs {
	if rec == nil || rec.Logistics == nil {
		return nil
	}
	headline := ""
	if rec.Basics != nil && len(rec.Basics.FirstNames) == 2 {
		headline = fmt.Sprintf("%s & %s", rec.Basics.FirstNames[0], rec.Basics.FirstNames[1])
	}
	return &SiteContentPrefs{
		WebsiteSlug:  strOr(rec.Logistics.WebsiteSlug, ""),
		ShowCouple:   true,
		ShowSchedule: true,
		Headline:     headline,
	}
}

// ToGuestPrefs derives guest-management preferences.
func ToGuestPrefs(rec *Record) *GuestPrefs {
	if rec == nil || rec.Logistics == nil {
		return nil
	}
	l := rec.Logistics
	return &GuestPrefs{
		RSVPPreference: strOr(l.RSVPPreference, "site"),
		CollectDietary: l.DietaryNotes != nil,
		HotelBlock:     boolOr(l.HotelBlock, false),
		ShuttleNeeded:  boolOr(l.ShuttleNeeded, false),
	}
}

// ToEventDetails derives ceremony/reception details.
func ToEventDetails(rec *Record) *EventDetails {
	if rec == nil || rec.Ceremony == nil {
		return nil
	}
	c := rec.Ceremony
	return &EventDetails{
		CeremonyType:    strOr(c.CeremonyType, ""),
		OfficiantNeeded: boolOr(c.OfficiantNeeded, false),
		ReceptionVenue:  strOr(c.ReceptionVenue, ""),
		Indoor:          c.Indoor,
		StartTime:       strOr(c.StartTime, ""),
	}
}

// Bundle is the full derived output of a mapper run.
type Bundle struct {
	Meta     *ProjectMeta      `json:"meta,omitempty"`
	Budget   *BudgetPlan       `json:"budget,omitempty"`
	Timeline []TaskSeed        `json:"timeline"`
	Vendors  *VendorFilters    `json:"vendors,omitempty"`
	Site     *SiteContentPrefs `json:"site,omitempty"`
	Guests   *GuestPrefs       `json:"guests,omitempty"`
	Event    *EventDetails     `json:"event,omitempty"`
}

// MapAll runs all seven mappers over the record.
func MapAll(rec *Record) Bundle {
	return Bundle{
		Meta:     ToProjectMeta(rec),
		Budget:   ToBudgetPlan(rec),
		Timeline: ToTimelineSeed(rec),
		Vendors:  ToVendorFilters(rec),
		Site:     ToSiteContentPrefs(rec),
		Guests:   ToGuestPrefs(rec),
		Event:    ToEventDetails(rec),
	}
}

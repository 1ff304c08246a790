package intake

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Mode selects between the autosave schema (everything optional) and the
// submit schema (required fields per step).
type Mode int

const (
	ModeDraft Mode = iota
	ModeComplete
)

// Issue is one field-level validation failure.
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Result is the discriminated outcome of a validation call. Validation
// failures are data, not errors: callers branch on OK.
type Result struct {
	OK     bool    `json:"ok"`
	Step   string  `json:"step"`
	Data   any     `json:"data,omitempty"`
	Issues []Issue `json:"issues,omitempty"`
}

func fail(step string, issues ...Issue) Result {
	return Result{Step: step, Issues: issues}
}

var (
	v = validator.New()

	// Loose international pattern: optional +, then at least 10
	// digits/spaces/dashes/dots/parens.
	loosePhoneRe = regexp.MustCompile(`^\+?[0-9][0-9 .()\-]{8,}[0-9]$`)
)

// ValidateStep validates one wizard step payload. Unknown step names produce a
// single issue rather than an error; nothing here panics or returns a Go error.
func ValidateStep(step string, raw json.RawMessage, mode Mode) Result {
	switch step {
	case StepCouple:
		return validateCouple(raw, mode)
	case StepBasics:
		return validateBasics(raw, mode)
	case StepBudget:
		return validateBudget(raw, mode)
	case StepCeremony:
		return validateCeremony(raw, mode)
	case StepVendors:
		return validateVendors(raw, mode)
	case StepLogistics:
		return validateLogistics(raw, mode)
	case StepReview:
		return validateReview(raw, mode)
	default:
		return fail(step, Issue{Path: "step", Message: fmt.Sprintf("unknown step %q", step)})
	}
}

// ValidateRecord runs every step of the record through the given mode,
// collecting issues across steps. Used by the submit path.
func ValidateRecord(rec *Record, mode Mode) Result {
	res := Result{OK: true, Step: "all"}
	if rec == nil {
		rec = &Record{}
	}
	steps := []struct {
		name string
		data any
	}{
		{StepCouple, rec.Couple},
		{StepBasics, rec.Basics},
		{StepBudget, rec.Budget},
		{StepCeremony, rec.Ceremony},
		{StepVendors, rec.Vendors},
		{StepLogistics, rec.Logistics},
		{StepReview, rec.Review},
	}
	for _, s := range steps {
		raw, _ := json.Marshal(s.data)
		r := ValidateStep(s.name, raw, mode)
		if !r.OK {
			res.OK = false
			res.Issues = append(res.Issues, r.Issues...)
		}
	}
	if res.OK {
		res.Data = rec
	}
	return res
}

func decode(step string, raw json.RawMessage, dst any) *Result {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		r := fail(step, Issue{Path: step, Message: "malformed payload"})
		return &r
	}
	return nil
}

func validEmail(s string) bool {
	return v.Var(s, "email") == nil
}

// Strict E.164: + followed by 1-15 digits, first digit 1-9.
func validE164(s string) bool {
	return v.Var(s, "e164") == nil
}

func validLoosePhone(s string) bool {
	return loosePhoneRe.MatchString(s)
}

func validateCouple(raw json.RawMessage, mode Mode) Result {
	var s CoupleStep
	if r := decode(StepCouple, raw, &s); r != nil {
		return *r
	}
	var issues []Issue
	for i, e := range s.Emails {
		if e != "" && !validEmail(e) {
			issues = append(issues, Issue{Path: fmt.Sprintf("couple.emails[%d]", i), Message: "invalid email address"})
		}
	}
	for i, p := range s.Phones {
		if p != "" && !validE164(p) {
			issues = append(issues, Issue{Path: fmt.Sprintf("couple.phones[%d]", i), Message: "phone must be E.164 (+ and 1-15 digits)"})
		}
	}
	if s.PlannerEmail != nil && *s.PlannerEmail != "" && !validEmail(*s.PlannerEmail) {
		issues = append(issues, Issue{Path: "couple.plannerEmail", Message: "invalid email address"})
	}
	if s.ContactPhone != nil && *s.ContactPhone != "" && !validLoosePhone(*s.ContactPhone) {
		issues = append(issues, Issue{Path: "couple.contactPhone", Message: "invalid phone number"})
	}
	if mode == ModeComplete {
		if len(s.Emails) == 0 {
			issues = append(issues, Issue{Path: "couple.emails", Message: "at least one contact email is required"})
		}
	}
	if len(issues) > 0 {
		return fail(StepCouple, issues...)
	}
	return Result{OK: true, Step: StepCouple, Data: &s}
}

func validateBasics(raw json.RawMessage, mode Mode) Result {
	var s BasicsStep
	if r := decode(StepBasics, raw, &s); r != nil {
		return *r
	}
	var issues []Issue
	if len(s.FirstNames) != 0 && len(s.FirstNames) != 2 {
		issues = append(issues, Issue{Path: "basics.firstNames", Message: "exactly two partner first names are required"})
	}
	if len(s.LastNames) != 0 && len(s.LastNames) != 2 {
		issues = append(issues, Issue{Path: "basics.lastNames", Message: "exactly two partner last names are required"})
	}
	if s.WeddingDate != nil && *s.WeddingDate != "" {
		if _, err := time.Parse(DateFormat, *s.WeddingDate); err != nil {
			issues = append(issues, Issue{Path: "basics.weddingDate", Message: "date must be YYYY-MM-DD"})
		}
	}
	if s.GuestCount != nil && *s.GuestCount < 0 {
		issues = append(issues, Issue{Path: "basics.guestCount", Message: "guest count cannot be negative"})
	}
	if mode == ModeComplete {
		if len(s.FirstNames) != 2 || s.FirstNames[0] == "" || s.FirstNames[1] == "" {
			issues = append(issues, Issue{Path: "basics.firstNames", Message: "both partners' first names are required"})
		}
		if s.City == nil || *s.City == "" {
			issues = append(issues, Issue{Path: "basics.city", Message: "city is required"})
		}
	}
	if len(issues) > 0 {
		return fail(StepBasics, dedupe(issues)...)
	}
	return Result{OK: true, Step: StepBasics, Data: &s}
}

func validateBudget(raw json.RawMessage, mode Mode) Result {
	var s BudgetStep
	if r := decode(StepBudget, raw, &s); r != nil {
		return *r
	}
	var issues []Issue
	if s.TotalBudget != nil && *s.TotalBudget < 0 {
		issues = append(issues, Issue{Path: "budget.totalBudget", Message: "total budget cannot be negative"})
	}
	sum := 0.0
	for i, cat := range s.Categories {
		if !validBudgetCategory(cat.Name) {
			issues = append(issues, Issue{Path: fmt.Sprintf("budget.categories[%d].name", i), Message: fmt.Sprintf("unknown category %q", cat.Name)})
		}
		if cat.Percent < 0 || cat.Percent > 100 {
			issues = append(issues, Issue{Path: fmt.Sprintf("budget.categories[%d].percent", i), Message: "percent must be between 0 and 100"})
		}
		if cat.HardCap != nil && *cat.HardCap < 0 {
			issues = append(issues, Issue{Path: fmt.Sprintf("budget.categories[%d].hardCap", i), Message: "hard cap cannot be negative"})
		}
		sum += cat.Percent
	}
	// Rounding tolerance of 1 either side of 100.
	if len(s.Categories) > 0 && math.Abs(sum-100) > 1 {
		issues = append(issues, Issue{Path: "budget.categories", Message: fmt.Sprintf("category percentages must sum to 100, got %.1f", sum)})
	}
	if mode == ModeComplete {
		if s.TotalBudget == nil {
			issues = append(issues, Issue{Path: "budget.totalBudget", Message: "total budget is required"})
		}
		if len(s.Categories) == 0 {
			issues = append(issues, Issue{Path: "budget.categories", Message: "at least one category is required"})
		}
	}
	if len(issues) > 0 {
		return fail(StepBudget, issues...)
	}
	return Result{OK: true, Step: StepBudget, Data: &s}
}

func validateCeremony(raw json.RawMessage, mode Mode) Result {
	var s CeremonyStep
	if r := decode(StepCeremony, raw, &s); r != nil {
		return *r
	}
	var issues []Issue
	if s.StartTime != nil && *s.StartTime != "" && !validClock(*s.StartTime) {
		issues = append(issues, Issue{Path: "ceremony.startTime", Message: "start time must be HH:MM"})
	}
	if len(issues) > 0 {
		return fail(StepCeremony, issues...)
	}
	return Result{OK: true, Step: StepCeremony, Data: &s}
}

func validateVendors(raw json.RawMessage, mode Mode) Result {
	var s VendorsStep
	if r := decode(StepVendors, raw, &s); r != nil {
		return *r
	}
	var issues []Issue
	if s.RadiusMiles != nil && (*s.RadiusMiles < 1 || *s.RadiusMiles > 500) {
		issues = append(issues, Issue{Path: "vendors.radiusMiles", Message: "radius must be between 1 and 500 miles"})
	}
	for i, name := range s.RequiredVendors {
		if strings.TrimSpace(name) == "" {
			issues = append(issues, Issue{Path: fmt.Sprintf("vendors.requiredVendors[%d]", i), Message: "vendor category cannot be empty"})
		}
	}
	if len(issues) > 0 {
		return fail(StepVendors, issues...)
	}
	return Result{OK: true, Step: StepVendors, Data: &s}
}

func validateLogistics(raw json.RawMessage, mode Mode) Result {
	var s LogisticsStep
	if r := decode(StepLogistics, raw, &s); r != nil {
		return *r
	}
	var issues []Issue
	if s.RSVPPreference != nil && *s.RSVPPreference != "" {
		switch *s.RSVPPreference {
		case "site", "email", "mail":
		default:
			issues = append(issues, Issue{Path: "logistics.rsvpPreference", Message: "rsvp preference must be site, email or mail"})
		}
	}
	if len(issues) > 0 {
		return fail(StepLogistics, issues...)
	}
	return Result{OK: true, Step: StepLogistics, Data: &s}
}

func validateReview(raw json.RawMessage, mode Mode) Result {
	var s ReviewStep
	if r := decode(StepReview, raw, &s); r != nil {
		return *r
	}
	if mode == ModeComplete && !boolOr(s.Consent, false) {
		// Consent gets its own message so the UI can point at the checkbox.
		return fail(StepReview, Issue{Path: "review.consent", Message: "you must consent to the terms before submitting"})
	}
	return Result{OK: true, Step: StepReview, Data: &s}
}

var clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func validClock(s string) bool { return clockRe.MatchString(s) }

func dedupe(issues []Issue) []Issue {
	seen := map[string]bool{}
	out := issues[:0]
	for _, i := range issues {
		key := i.Path + "|" + i.Message
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, i)
	}
	return out
}

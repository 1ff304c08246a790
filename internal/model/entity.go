package model

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

type Project struct {
	ID          int            `gorm:"primaryKey" json:"id"`
	OwnerID     int            `gorm:"index" json:"owner_id"`
	Title       string         `json:"title"`
	WeddingDate *time.Time     `gorm:"type:date" json:"wedding_date,omitempty"`
	Location    string         `json:"location"`
	GuestCount  int            `json:"guest_count"`
	StyleTags   datatypes.JSON `json:"style_tags,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type Collaborator struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	ProjectID   int       `gorm:"index:idx_collab_project_user,unique" json:"project_id"`
	UserID      int       `gorm:"index:idx_collab_project_user,unique" json:"user_id"`
	Role        string    `gorm:"default:editor" json:"role"`
	InviteToken string    `gorm:"index" json:"-"`
	Accepted    bool      `json:"accepted"`
	CreatedAt   time.Time `json:"created_at"`
}

// IntakeRecord stores the seven-step wizard payload as one JSON document,
// one row per user. Data unmarshals into intake.Record.
type IntakeRecord struct {
	ID        int            `gorm:"primaryKey" json:"id"`
	UserID    int            `gorm:"uniqueIndex" json:"user_id"`
	Data      datatypes.JSON `json:"data"`
	Submitted bool           `json:"submitted"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type Task struct {
	ID          int        `gorm:"primaryKey" json:"id"`
	ProjectID   int        `gorm:"index" json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    string     `gorm:"default:medium" json:"priority"`
	Status      string     `gorm:"default:pending" json:"status"`
	DueDate     *time.Time `gorm:"type:date" json:"due_date,omitempty"`
	Source      string     `gorm:"default:manual" json:"source"`
	CreatedAt   time.Time  `json:"created_at"`
}

type Guest struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	ProjectID  int       `gorm:"index" json:"project_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	RSVPStatus string    `gorm:"default:pending" json:"rsvp_status"`
	PartySize  int       `gorm:"default:1" json:"party_size"`
	Dietary    string    `json:"dietary"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	RSVPPending  = "pending"
	RSVPAccepted = "accepted"
	RSVPDeclined = "declined"
)

type Vendor struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	ProjectID int       `gorm:"index" json:"project_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Website   string    `json:"website"`
	Status    string    `gorm:"default:candidate" json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

type BudgetItem struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	ProjectID     int       `gorm:"index" json:"project_id"`
	Category      string    `json:"category"`
	Percent       float64   `json:"percent"`
	HardCap       *float64  `json:"hard_cap,omitempty"`
	EstimatedCost float64   `json:"estimated_cost"`
	ActualCost    *float64  `json:"actual_cost,omitempty"`
	Source        string    `gorm:"default:manual" json:"source"`
	CreatedAt     time.Time `json:"created_at"`
}

type SeatingTable struct {
	ID        int            `gorm:"primaryKey" json:"id"`
	ProjectID int            `gorm:"index" json:"project_id"`
	Name      string         `json:"name"`
	MaxSeats  int            `json:"max_seats"`
	Capacity  int            `json:"capacity"`
	Position  datatypes.JSON `json:"position,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// SeatingAssignment holds guest-to-table placement. The unique index on
// (project_id, guest_id) backs the at-most-one-table-per-guest invariant at
// the storage layer; the service keeps it with a delete-then-insert inside
// one transaction.
type SeatingAssignment struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	ProjectID  int       `gorm:"index:idx_seating_project_guest,unique" json:"project_id"`
	TableID    int       `gorm:"index" json:"table_id"`
	GuestID    int       `gorm:"index:idx_seating_project_guest,unique" json:"guest_id"`
	SeatNumber *int      `json:"seat_number,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Per-project preference rows seeded by the prefill apply step; one row per
// project, upserted on re-apply.

type VendorPrefs struct {
	ID          int            `gorm:"primaryKey" json:"id"`
	ProjectID   int            `gorm:"uniqueIndex" json:"project_id"`
	Required    datatypes.JSON `json:"required,omitempty"`
	Excluded    datatypes.JSON `json:"excluded,omitempty"`
	RadiusMiles int            `json:"radius_miles"`
	City        string         `json:"city"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type SitePrefs struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	ProjectID    int       `gorm:"uniqueIndex" json:"project_id"`
	WebsiteSlug  string    `json:"website_slug"`
	ShowCouple   bool      `json:"show_couple"`
	ShowSchedule bool      `json:"show_schedule"`
	Headline     string    `json:"headline"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type GuestPrefs struct {
	ID             int       `gorm:"primaryKey" json:"id"`
	ProjectID      int       `gorm:"uniqueIndex" json:"project_id"`
	RSVPPreference string    `gorm:"default:site" json:"rsvp_preference"`
	CollectDietary bool      `json:"collect_dietary"`
	HotelBlock     bool      `json:"hotel_block"`
	ShuttleNeeded  bool      `json:"shuttle_needed"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type EventDetails struct {
	ID              int       `gorm:"primaryKey" json:"id"`
	ProjectID       int       `gorm:"uniqueIndex" json:"project_id"`
	CeremonyType    string    `json:"ceremony_type"`
	OfficiantNeeded bool      `json:"officiant_needed"`
	ReceptionVenue  string    `json:"reception_venue"`
	Indoor          *bool     `json:"indoor,omitempty"`
	StartTime       string    `json:"start_time"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (User) TableName() string              { return "users" }
func (Project) TableName() string           { return "projects" }
func (Collaborator) TableName() string      { return "collaborators" }
func (IntakeRecord) TableName() string      { return "intake_records" }
func (Task) TableName() string              { return "tasks" }
func (Guest) TableName() string             { return "guests" }
func (Vendor) TableName() string            { return "vendors" }
func (BudgetItem) TableName() string        { return "budget_items" }
func (SeatingTable) TableName() string      { return "seating_tables" }
func (SeatingAssignment) TableName() string { return "seating_assignments" }
func (VendorPrefs) TableName() string       { return "vendor_prefs" }
func (SitePrefs) TableName() string         { return "site_prefs" }
func (GuestPrefs) TableName() string        { return "guest_prefs" }
func (EventDetails) TableName() string      { return "event_details" }

// All lists every entity for AutoMigrate.
func All() []any {
	return []any{
		&User{}, &Project{}, &Collaborator{}, &IntakeRecord{},
		&Task{}, &Guest{}, &Vendor{}, &BudgetItem{},
		&SeatingTable{}, &SeatingAssignment{},
		&VendorPrefs{}, &SitePrefs{}, &GuestPrefs{}, &EventDetails{},
	}
}

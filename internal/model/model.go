package model

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type UserProfile struct {
	ID     int    `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type ChatRequest struct {
	Text      string        `json:"text" binding:"required"`
	ProjectID int           `json:"project_id"`
	History   []HistoryItem `json:"history,omitempty"`
}

type HistoryItem struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Content string `json:"content"`
}

type AssignGuestRequest struct {
	GuestID    int  `json:"guest_id" binding:"required"`
	TableID    int  `json:"table_id" binding:"required"`
	SeatNumber *int `json:"seat_number,omitempty"`
}

type IntakeStatus struct {
	Completion int  `json:"completion"`
	Complete   bool `json:"complete"`
	Submitted  bool `json:"submitted"`
}

// PrefillSummary reports what a transactional prefill apply wrote.
type PrefillSummary struct {
	MetaApplied  bool `json:"meta_applied"`
	BudgetItems  int  `json:"budget_items"`
	Tasks        int  `json:"tasks"`
	VendorPrefs  bool `json:"vendor_prefs"`
	SitePrefs    bool `json:"site_prefs"`
	GuestPrefs   bool `json:"guest_prefs"`
	EventDetails bool `json:"event_details"`
}

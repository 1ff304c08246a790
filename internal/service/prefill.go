package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"planhaus/internal/intake"
	"planhaus/internal/model"

	"gorm.io/gorm"
)

// PrefillService turns a submitted intake into seed records for a project.
// Apply is a single transaction covering all seven derived payloads, so a
// failure midway leaves the project untouched instead of half-seeded.
type PrefillService struct {
	db      *gorm.DB
	intakes *IntakeService
}

func NewPrefillService(db *gorm.DB, intakes *IntakeService) *PrefillService {
	return &PrefillService{db: db, intakes: intakes}
}

// Load fetches the project owner's intake and runs all seven mappers.
func (s *PrefillService) Load(ctx context.Context, projectID int) (*intake.Bundle, error) {
	var p model.Project
	if err := s.db.WithContext(ctx).First(&p, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	_, rec, err := s.intakes.Get(ctx, p.OwnerID)
	if err != nil {
		return nil, err
	}
	bundle := intake.MapAll(rec)
	return &bundle, nil
}

// Apply writes the derived bundle to the project in a fixed order: meta,
// budget, tasks, vendor prefs, site prefs, guest prefs, event details.
// All writes share one transaction; empty payloads are skipped.
func (s *PrefillService) Apply(ctx context.Context, projectID int) (*model.PrefillSummary, error) {
	bundle, err := s.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	summary := &model.PrefillSummary{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if bundle.Meta != nil {
			if err := applyMeta(tx, projectID, bundle.Meta); err != nil {
				return err
			}
			summary.MetaApplied = true
		}
		if bundle.Budget != nil {
			n, err := applyBudget(tx, projectID, bundle.Budget)
			if err != nil {
				return err
			}
			summary.BudgetItems = n
		}
		if len(bundle.Timeline) > 0 {
			n, err := applyTimeline(tx, projectID, bundle.Timeline)
			if err != nil {
				return err
			}
			summary.Tasks = n
		}
		if bundle.Vendors != nil {
			if err := applyVendorPrefs(tx, projectID, bundle.Vendors); err != nil {
				return err
			}
			summary.VendorPrefs = true
		}
		if bundle.Site != nil {
			if err := applySitePrefs(tx, projectID, bundle.Site); err != nil {
				return err
			}
			summary.SitePrefs = true
		}
		if bundle.Guests != nil {
			if err := applyGuestPrefs(tx, projectID, bundle.Guests); err != nil {
				return err
			}
			summary.GuestPrefs = true
		}
		if bundle.Event != nil {
			if err := applyEventDetails(tx, projectID, bundle.Event); err != nil {
				return err
			}
			summary.EventDetails = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func applyMeta(tx *gorm.DB, projectID int, meta *intake.ProjectMeta) error {
	fields := map[string]any{}
	if meta.Title != "" {
		fields["title"] = meta.Title
	}
	if meta.Date != nil {
		fields["wedding_date"] = *meta.Date
	}
	if meta.Location != "" {
		fields["location"] = meta.Location
	}
	if meta.GuestCount > 0 {
		fields["guest_count"] = meta.GuestCount
	}
	if len(meta.StyleTags) > 0 {
		tags, err := json.Marshal(meta.StyleTags)
		if err != nil {
			return fmt.Errorf("encode style tags: %w", err)
		}
		fields["style_tags"] = tags
	}
	if len(fields) == 0 {
		return nil
	}
	if err := tx.Model(&model.Project{}).Where("id = ?", projectID).Updates(fields).Error; err != nil {
		return fmt.Errorf("apply meta: %w", err)
	}
	return nil
}

func applyBudget(tx *gorm.DB, projectID int, plan *intake.BudgetPlan) (int, error) {
	// Re-applying replaces previously seeded items but leaves manual ones.
	if err := tx.Where("project_id = ? AND source = ?", projectID, "prefill").
		Delete(&model.BudgetItem{}).Error; err != nil {
		return 0, fmt.Errorf("clear seeded budget: %w", err)
	}
	var items []model.BudgetItem
	for _, line := range plan.Categories {
		items = append(items, model.BudgetItem{
			ProjectID:     projectID,
			Category:      line.Category,
			Percent:       line.Percent,
			HardCap:       line.HardCap,
			EstimatedCost: line.EstimatedCost,
			Source:        "prefill",
		})
	}
	if len(items) == 0 {
		return 0, nil
	}
	if err := tx.Create(&items).Error; err != nil {
		return 0, fmt.Errorf("apply budget: %w", err)
	}
	return len(items), nil
}

func applyTimeline(tx *gorm.DB, projectID int, seeds []intake.TaskSeed) (int, error) {
	if err := tx.Where("project_id = ? AND source = ?", projectID, "prefill").
		Delete(&model.Task{}).Error; err != nil {
		return 0, fmt.Errorf("clear seeded tasks: %w", err)
	}
	var tasks []model.Task
	for _, seed := range seeds {
		due := seed.DueDate
		tasks = append(tasks, model.Task{
			ProjectID:   projectID,
			Title:       seed.Title,
			Description: seed.Description,
			Category:    seed.Category,
			Priority:    seed.Priority,
			Status:      seed.Status,
			DueDate:     &due,
			Source:      "prefill",
		})
	}
	if err := tx.Create(&tasks).Error; err != nil {
		return 0, fmt.Errorf("apply timeline: %w", err)
	}
	return len(tasks), nil
}

func applyVendorPrefs(tx *gorm.DB, projectID int, f *intake.VendorFilters) error {
	required, err := json.Marshal(f.Required)
	if err != nil {
		return fmt.Errorf("encode required vendors: %w", err)
	}
	excluded, err := json.Marshal(f.Excluded)
	if err != nil {
		return fmt.Errorf("encode excluded vendors: %w", err)
	}
	return upsertByProject(tx, projectID, &model.VendorPrefs{}, map[string]any{
		"required":     required,
		"excluded":     excluded,
		"radius_miles": f.RadiusMiles,
		"city":         f.City,
		"updated_at":   time.Now(),
	}, func() any {
		return &model.VendorPrefs{ProjectID: projectID, Required: required, Excluded: excluded, RadiusMiles: f.RadiusMiles, City: f.City}
	})
}

func applySitePrefs(tx *gorm.DB, projectID int, p *intake.SiteContentPrefs) error {
	return upsertByProject(tx, projectID, &model.SitePrefs{}, map[string]any{
		"website_slug":  p.WebsiteSlug,
		"show_couple":   p.ShowCouple,
		"show_schedule": p.ShowSchedule,
		"headline":      p.Headline,
		"updated_at":    time.Now(),
	}, func() any {
		return &model.SitePrefs{ProjectID: projectID, WebsiteSlug: p.WebsiteSlug, ShowCouple: p.ShowCouple, ShowSchedule: p.ShowSchedule, Headline: p.Headline}
	})
}

func applyGuestPrefs(tx *gorm.DB, projectID int, p *intake.GuestPrefs) error {
	return upsertByProject(tx, projectID, &model.GuestPrefs{}, map[string]any{
		"rsvp_preference": p.RSVPPreference,
		"collect_dietary": p.CollectDietary,
		"hotel_block":     p.HotelBlock,
		"shuttle_needed":  p.ShuttleNeeded,
		"updated_at":      time.Now(),
	}, func() any {
		return &model.GuestPrefs{ProjectID: projectID, RSVPPreference: p.RSVPPreference, CollectDietary: p.CollectDietary, HotelBlock: p.HotelBlock, ShuttleNeeded: p.ShuttleNeeded}
	})
}

func applyEventDetails(tx *gorm.DB, projectID int, d *intake.EventDetails) error {
	return upsertByProject(tx, projectID, &model.EventDetails{}, map[string]any{
		"ceremony_type":    d.CeremonyType,
		"officiant_needed": d.OfficiantNeeded,
		"reception_venue":  d.ReceptionVenue,
		"indoor":           d.Indoor,
		"start_time":       d.StartTime,
		"updated_at":       time.Now(),
	}, func() any {
		return &model.EventDetails{ProjectID: projectID, CeremonyType: d.CeremonyType, OfficiantNeeded: d.OfficiantNeeded, ReceptionVenue: d.ReceptionVenue, Indoor: d.Indoor, StartTime: d.StartTime}
	})
}

// upsertByProject updates the per-project row when it exists, otherwise
// inserts a fresh one built by mk.
func upsertByProject(tx *gorm.DB, projectID int, probe any, fields map[string]any, mk func() any) error {
	res := tx.Model(probe).Where("project_id = ?", projectID).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("upsert prefs: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}
	if err := tx.Create(mk()).Error; err != nil {
		return fmt.Errorf("insert prefs: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"planhaus/internal/model"

	"gorm.io/gorm"
)

// Standard per-project CRUD for tasks, guests, vendors, and budget items.
// Partial updates take a field map; deletes are by id scoped to the project.

type TaskService struct{ db *gorm.DB }

func NewTaskService(db *gorm.DB) *TaskService { return &TaskService{db: db} }

func (s *TaskService) Create(ctx context.Context, t *model.Task) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (s *TaskService) List(ctx context.Context, projectID int, status string) ([]model.Task, error) {
	q := s.db.WithContext(ctx).Where("project_id = ?", projectID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var tasks []model.Task
	if err := q.Order("due_date IS NULL, due_date, id").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Update(ctx context.Context, projectID, id int, fields map[string]any) (*model.Task, error) {
	var t model.Task
	if err := firstScoped(s.db, ctx, &t, projectID, id); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&t).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return &t, nil
}

func (s *TaskService) Delete(ctx context.Context, projectID, id int) error {
	return deleteScoped(s.db, ctx, &model.Task{}, projectID, id)
}

type GuestService struct{ db *gorm.DB }

func NewGuestService(db *gorm.DB) *GuestService { return &GuestService{db: db} }

func (s *GuestService) Create(ctx context.Context, g *model.Guest) error {
	if g.RSVPStatus == "" {
		g.RSVPStatus = model.RSVPPending
	}
	if g.PartySize <= 0 {
		g.PartySize = 1
	}
	if err := s.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("create guest: %w", err)
	}
	return nil
}

func (s *GuestService) List(ctx context.Context, projectID int, rsvp string) ([]model.Guest, error) {
	q := s.db.WithContext(ctx).Where("project_id = ?", projectID)
	if rsvp != "" {
		q = q.Where("rsvp_status = ?", rsvp)
	}
	var guests []model.Guest
	if err := q.Order("name, id").Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return guests, nil
}

func (s *GuestService) Update(ctx context.Context, projectID, id int, fields map[string]any) (*model.Guest, error) {
	var g model.Guest
	if err := firstScoped(s.db, ctx, &g, projectID, id); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&g).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("update guest: %w", err)
	}
	return &g, nil
}

// Delete removes the guest and any seating assignment pointing at them.
func (s *GuestService) Delete(ctx context.Context, projectID, id int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("project_id = ?", projectID).Delete(&model.Guest{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete guest: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("project_id = ? AND guest_id = ?", projectID, id).
			Delete(&model.SeatingAssignment{}).Error; err != nil {
			return fmt.Errorf("delete guest assignment: %w", err)
		}
		return nil
	})
}

type VendorService struct{ db *gorm.DB }

func NewVendorService(db *gorm.DB) *VendorService { return &VendorService{db: db} }

func (s *VendorService) Create(ctx context.Context, v *model.Vendor) error {
	if err := s.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("create vendor: %w", err)
	}
	return nil
}

func (s *VendorService) List(ctx context.Context, projectID int, category string) ([]model.Vendor, error) {
	q := s.db.WithContext(ctx).Where("project_id = ?", projectID)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var vendors []model.Vendor
	if err := q.Order("category, name").Find(&vendors).Error; err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	return vendors, nil
}

func (s *VendorService) Update(ctx context.Context, projectID, id int, fields map[string]any) (*model.Vendor, error) {
	var v model.Vendor
	if err := firstScoped(s.db, ctx, &v, projectID, id); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&v).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("update vendor: %w", err)
	}
	return &v, nil
}

func (s *VendorService) Delete(ctx context.Context, projectID, id int) error {
	return deleteScoped(s.db, ctx, &model.Vendor{}, projectID, id)
}

type BudgetService struct{ db *gorm.DB }

func NewBudgetService(db *gorm.DB) *BudgetService { return &BudgetService{db: db} }

func (s *BudgetService) Create(ctx context.Context, item *model.BudgetItem) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("create budget item: %w", err)
	}
	return nil
}

func (s *BudgetService) List(ctx context.Context, projectID int) ([]model.BudgetItem, error) {
	var items []model.BudgetItem
	if err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list budget items: %w", err)
	}
	return items, nil
}

func (s *BudgetService) Update(ctx context.Context, projectID, id int, fields map[string]any) (*model.BudgetItem, error) {
	var item model.BudgetItem
	if err := firstScoped(s.db, ctx, &item, projectID, id); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&item).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("update budget item: %w", err)
	}
	return &item, nil
}

func (s *BudgetService) Delete(ctx context.Context, projectID, id int) error {
	return deleteScoped(s.db, ctx, &model.BudgetItem{}, projectID, id)
}

func firstScoped(db *gorm.DB, ctx context.Context, dst any, projectID, id int) error {
	err := db.WithContext(ctx).Where("project_id = ?", projectID).First(dst, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup: %w", err)
	}
	return nil
}

func deleteScoped(db *gorm.DB, ctx context.Context, mdl any, projectID, id int) error {
	res := db.WithContext(ctx).Where("project_id = ?", projectID).Delete(mdl, id)
	if res.Error != nil {
		return fmt.Errorf("delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"planhaus/internal/model"

	"gorm.io/gorm"
)

// SeatingService maintains tables and guest-to-table assignments. Each guest
// is either unassigned or assigned to exactly one table; moves are a
// delete-then-insert executed inside one transaction.
type SeatingService struct{ db *gorm.DB }

func NewSeatingService(db *gorm.DB) *SeatingService { return &SeatingService{db: db} }

func (s *SeatingService) CreateTable(ctx context.Context, t *model.SeatingTable) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	return nil
}

func (s *SeatingService) ListTables(ctx context.Context, projectID int) ([]model.SeatingTable, error) {
	var tables []model.SeatingTable
	if err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

func (s *SeatingService) UpdateTable(ctx context.Context, projectID, tableID int, fields map[string]any) (*model.SeatingTable, error) {
	var t model.SeatingTable
	if err := s.db.WithContext(ctx).Where("project_id = ?", projectID).First(&t, tableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get table: %w", err)
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(&t).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("update table: %w", err)
		}
	}
	return &t, nil
}

// DeleteTable removes the table and its assignments in one transaction so no
// orphaned assignment rows survive.
func (s *SeatingService) DeleteTable(ctx context.Context, projectID, tableID int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("project_id = ?", projectID).Delete(&model.SeatingTable{}, tableID)
		if res.Error != nil {
			return fmt.Errorf("delete table: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("project_id = ? AND table_id = ?", projectID, tableID).
			Delete(&model.SeatingAssignment{}).Error; err != nil {
			return fmt.Errorf("delete assignments: %w", err)
		}
		return nil
	})
}

// AssignGuest seats a guest at a table, replacing any prior assignment
// ("move" semantics). The whole operation runs in one transaction: the prior
// row is removed, occupancy is checked against MaxSeats, and the new row is
// inserted. Over-capacity assignments fail with ErrTableFull.
func (s *SeatingService) AssignGuest(ctx context.Context, projectID, guestID, tableID int, seatNumber *int) (*model.SeatingAssignment, error) {
	var assignment model.SeatingAssignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table model.SeatingTable
		if err := tx.Where("project_id = ?", projectID).First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("get table: %w", err)
		}

		if err := tx.Where("project_id = ? AND guest_id = ?", projectID, guestID).
			Delete(&model.SeatingAssignment{}).Error; err != nil {
			return fmt.Errorf("clear prior assignment: %w", err)
		}

		if table.MaxSeats > 0 {
			var occupied int64
			if err := tx.Model(&model.SeatingAssignment{}).
				Where("project_id = ? AND table_id = ?", projectID, tableID).
				Count(&occupied).Error; err != nil {
				return fmt.Errorf("count occupancy: %w", err)
			}
			if occupied >= int64(table.MaxSeats) {
				return ErrTableFull
			}
		}

		assignment = model.SeatingAssignment{
			ProjectID:  projectID,
			TableID:    tableID,
			GuestID:    guestID,
			SeatNumber: seatNumber,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return fmt.Errorf("create assignment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// RemoveGuest unseats a guest. Returns false when the guest had no assignment.
func (s *SeatingService) RemoveGuest(ctx context.Context, projectID, guestID int) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("project_id = ? AND guest_id = ?", projectID, guestID).
		Delete(&model.SeatingAssignment{})
	if res.Error != nil {
		return false, fmt.Errorf("remove assignment: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *SeatingService) ListAssignments(ctx context.Context, projectID int) ([]model.SeatingAssignment, error) {
	var assignments []model.SeatingAssignment
	if err := s.db.WithContext(ctx).Where("project_id = ?", projectID).Order("table_id, id").Find(&assignments).Error; err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

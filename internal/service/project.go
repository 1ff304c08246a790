package service

import (
	"context"
	"errors"
	"fmt"

	"planhaus/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectService struct{ db *gorm.DB }

func NewProjectService(db *gorm.DB) *ProjectService { return &ProjectService{db: db} }

func (s *ProjectService) Create(ctx context.Context, ownerID int, p *model.Project) error {
	p.OwnerID = ownerID
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (s *ProjectService) Get(ctx context.Context, id int) (*model.Project, error) {
	var p model.Project
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

// ListForUser returns projects the user owns plus those shared with them.
func (s *ProjectService) ListForUser(ctx context.Context, userID int) ([]model.Project, error) {
	var projects []model.Project
	err := s.db.WithContext(ctx).
		Where("owner_id = ? OR id IN (?)", userID,
			s.db.Model(&model.Collaborator{}).Select("project_id").Where("user_id = ? AND accepted = ?", userID, true)).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) Update(ctx context.Context, id int, fields map[string]any) (*model.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(p).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("update project: %w", err)
		}
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id int) error {
	res := s.db.WithContext(ctx).Delete(&model.Project{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete project: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CanAccess reports whether the user owns the project or is an accepted
// collaborator on it.
func (s *ProjectService) CanAccess(ctx context.Context, projectID, userID int) (bool, error) {
	var p model.Project
	if err := s.db.WithContext(ctx).Select("id", "owner_id").First(&p, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, fmt.Errorf("get project: %w", err)
	}
	if p.OwnerID == userID {
		return true, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Collaborator{}).
		Where("project_id = ? AND user_id = ? AND accepted = ?", projectID, userID, true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check collaborator: %w", err)
	}
	return count > 0, nil
}

// Invite creates a pending collaborator slot and returns the invite token the
// owner shares out of band.
func (s *ProjectService) Invite(ctx context.Context, projectID, inviteeID int, role string) (string, error) {
	if role == "" {
		role = "editor"
	}
	token := uuid.NewString()
	collab := model.Collaborator{
		ProjectID:   projectID,
		UserID:      inviteeID,
		Role:        role,
		InviteToken: token,
	}
	if err := s.db.WithContext(ctx).Create(&collab).Error; err != nil {
		return "", fmt.Errorf("create invite: %w", err)
	}
	return token, nil
}

// AcceptInvite redeems an invite token for the calling user.
func (s *ProjectService) AcceptInvite(ctx context.Context, userID int, token string) (*model.Collaborator, error) {
	var collab model.Collaborator
	err := s.db.WithContext(ctx).
		Where("invite_token = ? AND user_id = ? AND accepted = ?", token, userID, false).
		First(&collab).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup invite: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&collab).Update("accepted", true).Error; err != nil {
		return nil, fmt.Errorf("accept invite: %w", err)
	}
	collab.Accepted = true
	return &collab, nil
}

package store

import (
	"sitelog-backend/internal/domain/projects"
)

func (s *Store) ProjectByID(id string) (*projects.Project, error) {
	var p projects.Project
	if err := s.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ProjectsForUser lists every project the user belongs to, newest first,
// with the membership role attached.
func (s *Store) ProjectsForUser(userID uint) ([]projects.MemberProject, error) {
	var out []projects.MemberProject
	err := s.db.Model(&projects.Project{}).
		Select("projects.*, project_members.role").
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Order("projects.created_at DESC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) MemberRole(projectID string, userID uint) (string, error) {
	var m projects.ProjectMember
	if err := s.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&m).Error; err != nil {
		return "", err
	}
	return m.Role, nil
}

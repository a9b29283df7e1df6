package repository

import (
	"github.com/umuganda/community-activity-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CountByIDsInTeam counts how many of the given user IDs belong to the team
func (r *GormUserRepository) CountByIDsInTeam(userIDs []uint64, teamID uint64) (int64, error) {
	var count int64

	err := r.db.Model(&models.User{}).
		Joins("JOIN team_members ON users.id = team_members.user_id").
		Where("team_members.team_id = ? AND users.id IN ?", teamID, userIDs).
		Count(&count).Error

	return count, err
}

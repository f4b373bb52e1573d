package services

import (
	"errors"

	"account-panel/internal/models"

	"gorm.io/gorm"
)

type UserService struct {
	db   *gorm.DB
	auth *AuthService
}

func NewUserService(db *gorm.DB, auth *AuthService) *UserService {
	return &UserService{db: db, auth: auth}
}

// GetUsers returns all users with password hashes cleared
func (s *UserService) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}

	for i := range users {
		users[i].Password = ""
	}

	return users, nil
}

// GetUser returns a specific user by ID
func (s *UserService) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Password = ""
	return &user, nil
}

// UpdateUser applies an admin edit of username, email and role
func (s *UserService) UpdateUser(id uint, username, email, role string) error {
	res := s.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]any{
		"username": username,
		"email":    email,
		"role":     role,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteUser hard-deletes a user and returns the deleted row. The row is
// fetched first so the username survives for the audit description. Activity
// rows referencing the user keep their now-dangling nullable references.
func (s *UserService) DeleteUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.db.Delete(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateProfile updates the caller's own username and email, and optionally
// the password. A password change requires the current password to verify
// against the stored hash; on mismatch nothing is written.
func (s *UserService) UpdateProfile(id uint, username, email, currentPassword, newPassword string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if newPassword != "" {
		if !s.auth.VerifyPassword(user.Password, currentPassword) {
			return nil, ErrInvalidCredentials
		}
		hashed, err := s.auth.HashPassword(newPassword)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	user.Username = username
	user.Email = email

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

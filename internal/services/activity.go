package services

import (
	"account-panel/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const feedLimit = 50

type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Record appends an activity row. Best-effort: a failed insert is logged and
// never fails the request that triggered it.
func (s *ActivityService) Record(actorID *uint, actionType, description string, targetID *uint) {
	activity := &models.Activity{
		UserID:       actorID,
		ActionType:   actionType,
		Description:  description,
		TargetUserID: targetID,
	}
	if err := s.db.Create(activity).Error; err != nil {
		logrus.WithError(err).WithField("action", actionType).Warn("failed to record activity")
	}
}

// Feed returns the most recent activities, newest first. Admins see all
// users' activities; everyone else sees only rows where they are the actor
// or the target. Usernames resolve through left joins so entries referring
// to deleted users come back with empty names.
func (s *ActivityService) Feed(callerID uint, isAdmin bool) ([]models.ActivityEntry, error) {
	q := s.db.Table("activities").
		Select("activities.id, activities.action_type, activities.description, activities.created_at, " +
			"COALESCE(actor.username, '') AS actor_username, COALESCE(target.username, '') AS target_username").
		Joins("LEFT JOIN users actor ON actor.id = activities.user_id").
		Joins("LEFT JOIN users target ON target.id = activities.target_user_id").
		Order("activities.created_at DESC, activities.id DESC").
		Limit(feedLimit)

	if !isAdmin {
		q = q.Where("activities.user_id = ? OR activities.target_user_id = ?", callerID, callerID)
	}

	entries := make([]models.ActivityEntry, 0, feedLimit)
	if err := q.Scan(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

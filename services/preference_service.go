package services

import (
	"errors"
	"fmt"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/utils"
	"gorm.io/gorm"
)

// PreferencePatch updates only the fields that are set. The waiter system
// switch is venue-wide; sound notification is per user.
type PreferencePatch struct {
	WaiterSystemEnabled      *bool `json:"waiter_system_enabled"`
	SoundNotificationEnabled *bool `json:"sound_notification_enabled"`
}

// SoundNotifier is told when a user's sound preference changes, so that open
// dashboard connections follow it.
type SoundNotifier interface {
	SetSound(userID uint, enabled bool)
}

type PreferenceService struct {
	db    *gorm.DB
	Sound SoundNotifier
}

func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// Get returns the stored record of userID, or the defaults.
func (s *PreferenceService) Get(userID uint) (models.Preference, error) {
	var pref models.Preference
	err := s.db.Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultPreference(userID), nil
	}
	if err != nil {
		return models.Preference{}, fmt.Errorf("get preferences of user %d: %w", userID, err)
	}
	return pref, nil
}

// Effective combines the venue record with the user's own sound setting.
func (s *PreferenceService) Effective(userID uint) (models.Preference, error) {
	venue, err := s.Get(models.VenueUserID)
	if err != nil {
		return models.Preference{}, err
	}
	if userID == models.VenueUserID {
		return venue, nil
	}

	own, err := s.Get(userID)
	if err != nil {
		return models.Preference{}, err
	}
	own.WaiterSystemEnabled = venue.WaiterSystemEnabled
	return own, nil
}

func (s *PreferenceService) Update(userID uint, patch PreferencePatch) (models.Preference, error) {
	if patch.WaiterSystemEnabled != nil {
		if err := s.save(models.VenueUserID, func(p *models.Preference) {
			p.WaiterSystemEnabled = *patch.WaiterSystemEnabled
		}); err != nil {
			return models.Preference{}, err
		}
		utils.InfoLogger.Printf("Waiter system enabled=%t (by user %d)", *patch.WaiterSystemEnabled, userID)
	}
	if patch.SoundNotificationEnabled != nil {
		if err := s.save(userID, func(p *models.Preference) {
			p.SoundNotificationEnabled = *patch.SoundNotificationEnabled
		}); err != nil {
			return models.Preference{}, err
		}
		if s.Sound != nil {
			s.Sound.SetSound(userID, *patch.SoundNotificationEnabled)
		}
	}
	return s.Effective(userID)
}

func (s *PreferenceService) save(userID uint, apply func(*models.Preference)) error {
	pref, err := s.Get(userID)
	if err != nil {
		return err
	}
	apply(&pref)
	if pref.ID == 0 {
		err = s.db.Create(&pref).Error
	} else {
		err = s.db.Save(&pref).Error
	}
	if err != nil {
		return fmt.Errorf("save preferences of user %d: %w", userID, err)
	}
	return nil
}

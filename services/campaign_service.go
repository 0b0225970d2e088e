package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/utils"
	"gorm.io/gorm"
)

type CampaignInput struct {
	Title         string `json:"title" binding:"required"`
	TitleEn       string `json:"title_en"`
	Description   string `json:"description"`
	DescriptionEn string `json:"description_en"`
	Discount      string `json:"discount"`
	BgGradient    string `json:"bg_gradient"`
	Active        *bool  `json:"active"`
	Duration      *int   `json:"duration"`
	DurationUnit  string `json:"duration_unit"`
}

// CampaignService manages promotional banners, some of which expire.
type CampaignService struct {
	db  *gorm.DB
	Now func() time.Time
}

func NewCampaignService(db *gorm.DB) *CampaignService {
	return &CampaignService{db: db, Now: time.Now}
}

// List returns every campaign, or only the ones customers should see.
func (s *CampaignService) List(visibleOnly bool) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	if err := s.db.Order("created_at desc, id desc").Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	if !visibleOnly {
		return campaigns, nil
	}

	now := s.Now()
	visible := make([]models.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if c.Visible(now) {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

func (s *CampaignService) Create(in CampaignInput) (*models.Campaign, error) {
	c := models.Campaign{Active: true, DurationUnit: models.DurationMinutes}
	if err := applyCampaign(&c, in); err != nil {
		return nil, err
	}
	if err := s.db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	utils.InfoLogger.Printf("New campaign created: %s", c.Title)
	return &c, nil
}

func (s *CampaignService) Update(id uint, in CampaignInput) (*models.Campaign, error) {
	var c models.Campaign
	if err := s.db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("campaign %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get campaign %d: %w", id, err)
	}
	if err := applyCampaign(&c, in); err != nil {
		return nil, err
	}
	if err := s.db.Save(&c).Error; err != nil {
		return nil, fmt.Errorf("update campaign %d: %w", id, err)
	}
	return &c, nil
}

func (s *CampaignService) Delete(id uint) error {
	res := s.db.Delete(&models.Campaign{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete campaign %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("campaign %d: %w", id, ErrNotFound)
	}
	return nil
}

// Expire deactivates active campaigns whose duration has elapsed.
func (s *CampaignService) Expire() (int, error) {
	var campaigns []models.Campaign
	if err := s.db.Where("active = ? AND duration IS NOT NULL", true).Find(&campaigns).Error; err != nil {
		return 0, fmt.Errorf("find expiring campaigns: %w", err)
	}

	now := s.Now()
	expired := 0
	for i := range campaigns {
		if campaigns[i].Visible(now) {
			continue
		}
		if err := s.db.Model(&campaigns[i]).Update("active", false).Error; err != nil {
			return expired, fmt.Errorf("expire campaign %d: %w", campaigns[i].ID, err)
		}
		expired++
	}
	if expired > 0 {
		utils.InfoLogger.Printf("Deactivated %d expired campaigns", expired)
	}
	return expired, nil
}

func applyCampaign(c *models.Campaign, in CampaignInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Duration != nil && *in.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	switch in.DurationUnit {
	case "":
	case models.DurationMinutes, models.DurationHours, models.DurationDays:
		c.DurationUnit = in.DurationUnit
	default:
		return fmt.Errorf("%w: duration unit must be minutes, hours or days", ErrValidation)
	}

	c.Title = strings.TrimSpace(in.Title)
	c.TitleEn = in.TitleEn
	c.Description = in.Description
	c.DescriptionEn = in.DescriptionEn
	c.Discount = in.Discount
	c.BgGradient = in.BgGradient
	c.Duration = in.Duration
	if in.Active != nil {
		c.Active = *in.Active
	}
	return nil
}

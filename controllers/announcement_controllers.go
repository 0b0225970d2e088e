package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/utils"
	"gorm.io/gorm"
)

type AnnouncementController struct {
	DB *gorm.DB
}

func NewAnnouncementController(db *gorm.DB) *AnnouncementController {
	return &AnnouncementController{DB: db}
}

type announcementRequest struct {
	Title         string `json:"title" binding:"required"`
	TitleEn       string `json:"title_en"`
	Description   string `json:"description"`
	DescriptionEn string `json:"description_en"`
	BgGradient    string `json:"bg_gradient"`
	Icon          string `json:"icon"`
	Active        *bool  `json:"active"`
}

func (r announcementRequest) apply(a *models.Announcement) {
	a.Title = r.Title
	a.TitleEn = r.TitleEn
	a.Description = r.Description
	a.DescriptionEn = r.DescriptionEn
	a.BgGradient = r.BgGradient
	a.Icon = r.Icon
	if r.Active != nil {
		a.Active = *r.Active
	}
}

// GetActiveAnnouncements -> public banner list
func (ac *AnnouncementController) GetActiveAnnouncements(c *gin.Context) {
	ac.list(c, true)
}

func (ac *AnnouncementController) GetAllAnnouncements(c *gin.Context) {
	ac.list(c, false)
}

func (ac *AnnouncementController) list(c *gin.Context, activeOnly bool) {
	q := ac.DB.Order("created_at desc, id desc")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var announcements []models.Announcement
	if err := q.Find(&announcements).Error; err != nil {
		respondServiceError(c, "list announcements", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Announcements", announcements)
}

func (ac *AnnouncementController) CreateAnnouncement(c *gin.Context) {
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	a := models.Announcement{Active: true}
	req.apply(&a)
	if err := ac.DB.Create(&a).Error; err != nil {
		respondServiceError(c, "create announcement", err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Announcement created", a)
}

func (ac *AnnouncementController) UpdateAnnouncement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var a models.Announcement
	if err := ac.DB.First(&a, id).Error; err != nil {
		respondServiceError(c, "get announcement", err)
		return
	}
	req.apply(&a)
	if err := ac.DB.Save(&a).Error; err != nil {
		respondServiceError(c, "update announcement", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Announcement updated", a)
}

func (ac *AnnouncementController) DeleteAnnouncement(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res := ac.DB.Delete(&models.Announcement{}, id)
	if res.Error != nil {
		respondServiceError(c, "delete announcement", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("announcement not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Announcement deleted", nil)
}

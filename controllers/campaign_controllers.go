package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

type CampaignController struct {
	Campaigns *services.CampaignService
}

func NewCampaignController(campaigns *services.CampaignService) *CampaignController {
	return &CampaignController{Campaigns: campaigns}
}

// GetActiveCampaigns -> what the customer menu shows
func (cc *CampaignController) GetActiveCampaigns(c *gin.Context) {
	campaigns, err := cc.Campaigns.List(true)
	if err != nil {
		respondServiceError(c, "list campaigns", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active campaigns", campaigns)
}

// GetAllCampaigns -> admin list including inactive and expired
func (cc *CampaignController) GetAllCampaigns(c *gin.Context) {
	campaigns, err := cc.Campaigns.List(false)
	if err != nil {
		respondServiceError(c, "list campaigns", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All campaigns", campaigns)
}

func (cc *CampaignController) CreateCampaign(c *gin.Context) {
	var req services.CampaignInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	campaign, err := cc.Campaigns.Create(req)
	if err != nil {
		respondServiceError(c, "create campaign", err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Campaign created", campaign)
}

func (cc *CampaignController) UpdateCampaign(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.CampaignInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	campaign, err := cc.Campaigns.Update(id, req)
	if err != nil {
		respondServiceError(c, "update campaign", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Campaign updated", campaign)
}

func (cc *CampaignController) DeleteCampaign(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := cc.Campaigns.Delete(id); err != nil {
		respondServiceError(c, "delete campaign", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Campaign deleted", nil)
}

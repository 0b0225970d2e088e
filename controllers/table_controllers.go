package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

type TableController struct {
	Tables *services.TableRegistry
}

func NewTableController(tables *services.TableRegistry) *TableController {
	return &TableController{Tables: tables}
}

// GetAllTables -> every table with its open/closed status
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Tables.List()
	if err != nil {
		respondServiceError(c, "list tables", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// CreateTable -> registers a new open table
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Tables.Create(req.Code)
	if err != nil {
		respondServiceError(c, "create table", err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// UpdateTable -> renames a table or forces its status
func (tc *TableController) UpdateTable(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var patch services.TablePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Tables.Update(id, patch)
	if err != nil {
		respondServiceError(c, "update table", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

func (tc *TableController) DeleteTable(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := tc.Tables.Delete(id); err != nil {
		respondServiceError(c, "delete table", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted", nil)
}

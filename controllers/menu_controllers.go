package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/utils"
	"gorm.io/gorm"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllCategories
func (mc *MenuController) GetAllCategories(c *gin.Context) {
	var categories []models.Category
	if err := mc.DB.Order("id asc").Find(&categories).Error; err != nil {
		respondServiceError(c, "list categories", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All menu categories", categories)
}

// CreateCategory
func (mc *MenuController) CreateCategory(c *gin.Context) {
	var body struct {
		Name  string `json:"name" binding:"required"`
		EName string `json:"ename"`
		Image string `json:"image"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var count int64
	mc.DB.Model(&models.Category{}).Where("name = ?", body.Name).Count(&count)
	if count > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("category already exists"))
		return
	}

	category := models.Category{Name: body.Name, EName: body.EName, Image: body.Image}
	if err := mc.DB.Create(&category).Error; err != nil {
		respondServiceError(c, "create category", err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// DeleteCategory refuses while products still reference the category.
func (mc *MenuController) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var category models.Category
	if err := mc.DB.First(&category, id).Error; err != nil {
		respondServiceError(c, "get category", err)
		return
	}

	var products int64
	mc.DB.Model(&models.Product{}).Where("category_id = ?", id).Count(&products)
	if products > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("category still has products"))
		return
	}

	if err := mc.DB.Delete(&category).Error; err != nil {
		respondServiceError(c, "delete category", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", nil)
}

// GetAllProducts -> optional ?category_id= filter
func (mc *MenuController) GetAllProducts(c *gin.Context) {
	q := mc.DB.Preload("Category").Order("id asc")
	if raw := c.Query("category_id"); raw != "" {
		catID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category_id"))
			return
		}
		q = q.Where("category_id = ?", catID)
	}

	var products []models.Product
	if err := q.Find(&products).Error; err != nil {
		respondServiceError(c, "list products", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All products", products)
}

type productRequest struct {
	CategoryID   uint    `json:"category_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	EName        string  `json:"ename"`
	Price        float64 `json:"price" binding:"gte=0"`
	Description  string  `json:"description"`
	EDescription string  `json:"edescription"`
	Image        string  `json:"image"`
}

func (r productRequest) apply(p *models.Product) {
	p.CategoryID = r.CategoryID
	p.Name = r.Name
	p.EName = r.EName
	if p.EName == "" {
		p.EName = r.Name
	}
	p.Price = utils.Round2(r.Price)
	p.Description = r.Description
	p.EDescription = r.EDescription
	p.Image = r.Image
}

func (mc *MenuController) categoryExists(id uint) bool {
	var count int64
	mc.DB.Model(&models.Category{}).Where("id = ?", id).Count(&count)
	return count > 0
}

func (mc *MenuController) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !mc.categoryExists(req.CategoryID) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("category not found"))
		return
	}

	var product models.Product
	req.apply(&product)
	if err := mc.DB.Create(&product).Error; err != nil {
		respondServiceError(c, "create product", err)
		return
	}
	utils.InfoLogger.Printf("New product created: %s", product.Name)
	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

func (mc *MenuController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var product models.Product
	if err := mc.DB.First(&product, id).Error; err != nil {
		respondServiceError(c, "get product", err)
		return
	}
	if !mc.categoryExists(req.CategoryID) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("category not found"))
		return
	}

	req.apply(&product)
	if err := mc.DB.Save(&product).Error; err != nil {
		respondServiceError(c, "update product", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

func (mc *MenuController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res := mc.DB.Delete(&models.Product{}, id)
	if res.Error != nil {
		respondServiceError(c, "delete product", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", nil)
}

package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/qrmenu-app/controllers"
	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/testutil"
)

func TestMenuCategoriesAndProducts(t *testing.T) {
	db := testutil.NewDB(t)
	mc := controllers.NewMenuController(db)

	r := gin.New()
	r.GET("/categories", mc.GetAllCategories)
	r.POST("/categories", mc.CreateCategory)
	r.DELETE("/categories/:id", mc.DeleteCategory)
	r.GET("/products", mc.GetAllProducts)
	r.POST("/products", mc.CreateProduct)
	r.PUT("/products/:id", mc.UpdateProduct)
	r.DELETE("/products/:id", mc.DeleteProduct)

	w := performRequest(t, r, http.MethodPost, "/categories", gin.H{"name": "Kebaplar", "ename": "Kebabs"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var category models.Category
	decode(t, w, &category)

	w = performRequest(t, r, http.MethodPost, "/categories", gin.H{"name": "Kebaplar"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, r, http.MethodPost, "/products", gin.H{"category_id": 99, "name": "Adana", "price": 50})
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown category")

	w = performRequest(t, r, http.MethodPost, "/products", gin.H{
		"category_id": category.ID, "name": "Adana", "price": 49.999,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product models.Product
	decode(t, w, &product)
	assert.Equal(t, 50.0, product.Price)
	assert.Equal(t, "Adana", product.EName)

	w = performRequest(t, r, http.MethodPut, "/products/1", gin.H{
		"category_id": category.ID, "name": "Adana", "ename": "Adana Kebab", "price": 55,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var products []models.Product
	decode(t, performRequest(t, r, http.MethodGet, "/products?category_id=1", nil), &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Adana Kebab", products[0].EName)
	require.NotNil(t, products[0].Category)
	assert.Equal(t, "Kebaplar", products[0].Category.Name)

	w = performRequest(t, r, http.MethodGet, "/products?category_id=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(t, r, http.MethodDelete, "/categories/1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	assert.Equal(t, http.StatusOK, performRequest(t, r, http.MethodDelete, "/products/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, performRequest(t, r, http.MethodDelete, "/products/1", nil).Code)
	assert.Equal(t, http.StatusOK, performRequest(t, r, http.MethodDelete, "/categories/1", nil).Code)
}

func TestAnnouncementsActiveFilter(t *testing.T) {
	db := testutil.NewDB(t)
	ac := controllers.NewAnnouncementController(db)

	r := gin.New()
	r.GET("/announcements", ac.GetActiveAnnouncements)
	r.GET("/admin/announcements", ac.GetAllAnnouncements)
	r.POST("/announcements", ac.CreateAnnouncement)
	r.PUT("/announcements/:id", ac.UpdateAnnouncement)
	r.DELETE("/announcements/:id", ac.DeleteAnnouncement)

	w := performRequest(t, r, http.MethodPost, "/announcements", gin.H{"title": "Live music tonight"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = performRequest(t, r, http.MethodPost, "/announcements", gin.H{"title": "Closed Monday", "active": false})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = performRequest(t, r, http.MethodPost, "/announcements", gin.H{"icon": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var list []models.Announcement
	decode(t, performRequest(t, r, http.MethodGet, "/announcements", nil), &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Live music tonight", list[0].Title)

	decode(t, performRequest(t, r, http.MethodGet, "/admin/announcements", nil), &list)
	assert.Len(t, list, 2)

	w = performRequest(t, r, http.MethodPut, "/announcements/1", gin.H{"title": "Live music tonight", "active": false})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, performRequest(t, r, http.MethodGet, "/announcements", nil), &list)
	assert.Empty(t, list)

	assert.Equal(t, http.StatusOK, performRequest(t, r, http.MethodDelete, "/announcements/2", nil).Code)
	assert.Equal(t, http.StatusNotFound, performRequest(t, r, http.MethodDelete, "/announcements/2", nil).Code)
}

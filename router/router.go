package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/qrmenu-app/controllers"
	"github.com/yeremiapane/qrmenu-app/middlewares"
	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/notify"
	"github.com/yeremiapane/qrmenu-app/services"
	"gorm.io/gorm"
)

// Dependencies is everything the routes need. Built once in main.
type Dependencies struct {
	DB  *gorm.DB
	Hub *notify.Hub

	Tables       *services.TableRegistry
	Orders       *services.OrderService
	Reservations *services.ReservationService
	Ledger       *services.LedgerService
	Prefs        *services.PreferenceService
	Campaigns    *services.CampaignService

	Location       *time.Location
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func SetupRouter(d Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.CORSOrigins))
	r.Use(middlewares.Preferences(d.Prefs))

	limiter := middlewares.NewRateLimiter(d.RateLimitRPS, d.RateLimitBurst)
	limited := limiter.RateLimit()

	userCtrl := controllers.NewUserController(d.DB)
	tableCtrl := controllers.NewTableController(d.Tables)
	orderCtrl := controllers.NewOrderController(d.Orders)
	reservationCtrl := controllers.NewReservationController(d.Reservations)
	accountingCtrl := controllers.NewAccountingController(d.Ledger)
	waiterCtrl := controllers.NewWaiterCallController(d.DB, d.Hub)
	menuCtrl := controllers.NewMenuController(d.DB)
	campaignCtrl := controllers.NewCampaignController(d.Campaigns)
	announcementCtrl := controllers.NewAnnouncementController(d.DB)
	prefCtrl := controllers.NewPreferenceController(d.Prefs)
	dashboardCtrl := controllers.NewDashboardController(d.DB, d.Location)
	wsCtrl := controllers.NewWSController(d.Hub, d.Prefs)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// customer facing
	r.POST("/login", limited, userCtrl.Login)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/categories", menuCtrl.GetAllCategories)
	r.GET("/products", menuCtrl.GetAllProducts)
	r.GET("/campaigns", campaignCtrl.GetActiveCampaigns)
	r.GET("/announcements", announcementCtrl.GetActiveAnnouncements)
	r.POST("/orders", limited, orderCtrl.CreateOrder)
	r.GET("/orders/:id", orderCtrl.GetOrderByID)
	r.POST("/reservations/check", limited, reservationCtrl.CheckReservation)
	r.POST("/waiter-calls", limited, waiterCtrl.CreateCall)

	r.GET("/ws", middlewares.WebSocketAuthMiddleware(), wsCtrl.Handle)

	staff := r.Group("/")
	staff.Use(middlewares.AuthMiddleware())
	staff.Use(middlewares.RequireRole(models.RoleStaff))
	staff.Use(middlewares.Preferences(d.Prefs))
	{
		staff.GET("/profile", userCtrl.GetProfile)
		staff.GET("/admin/dashboard", dashboardCtrl.GetDashboardStats)

		staff.POST("/tables", tableCtrl.CreateTable)
		staff.PATCH("/tables/:id", tableCtrl.UpdateTable)
		staff.DELETE("/tables/:id", tableCtrl.DeleteTable)

		staff.GET("/orders", orderCtrl.GetAllOrders)
		staff.PATCH("/orders/:id", orderCtrl.UpdateOrder)
		staff.DELETE("/orders/:id", orderCtrl.DeleteOrder)

		staff.GET("/reservations", reservationCtrl.GetAllReservations)
		staff.POST("/reservations", reservationCtrl.CreateReservation)
		staff.DELETE("/reservations/:id", reservationCtrl.DeleteReservation)

		staff.GET("/accounting/daily-sales", accountingCtrl.GetDailySales)
		staff.POST("/accounting/daily-sales", accountingCtrl.RecordSale)
		staff.DELETE("/accounting/daily-sales", accountingCtrl.ClearDailySales)
		staff.GET("/accounting/daily-sales/export", accountingCtrl.ExportDailySales)

		staff.GET("/waiter-calls", waiterCtrl.GetPendingCalls)
		staff.PATCH("/waiter-calls/:id", waiterCtrl.UpdateCall)

		staff.POST("/categories", menuCtrl.CreateCategory)
		staff.DELETE("/categories/:id", menuCtrl.DeleteCategory)
		staff.POST("/products", menuCtrl.CreateProduct)
		staff.PUT("/products/:id", menuCtrl.UpdateProduct)
		staff.DELETE("/products/:id", menuCtrl.DeleteProduct)

		staff.GET("/admin/campaigns", campaignCtrl.GetAllCampaigns)
		staff.POST("/campaigns", campaignCtrl.CreateCampaign)
		staff.PUT("/campaigns/:id", campaignCtrl.UpdateCampaign)
		staff.DELETE("/campaigns/:id", campaignCtrl.DeleteCampaign)

		staff.GET("/admin/announcements", announcementCtrl.GetAllAnnouncements)
		staff.POST("/announcements", announcementCtrl.CreateAnnouncement)
		staff.PUT("/announcements/:id", announcementCtrl.UpdateAnnouncement)
		staff.DELETE("/announcements/:id", announcementCtrl.DeleteAnnouncement)

		staff.GET("/preferences", prefCtrl.GetPreferences)
		staff.PATCH("/preferences", prefCtrl.UpdatePreferences)
	}

	admin := staff.Group("/admin")
	admin.Use(middlewares.RequireRole(models.RoleAdmin))
	{
		admin.POST("/users", userCtrl.Register)
	}

	return r
}

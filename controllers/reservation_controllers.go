package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/qrmenu-app/services"
	"github.com/yeremiapane/qrmenu-app/utils"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) *ReservationController {
	return &ReservationController{Reservations: reservations}
}

func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	list, err := rc.Reservations.List()
	if err != nil {
		respondServiceError(c, "list reservations", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", list)
}

func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req services.ReservationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	r, err := rc.Reservations.Create(req)
	if err != nil {
		respondServiceError(c, "create reservation", err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", r)
}

func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := rc.Reservations.Delete(id); err != nil {
		respondServiceError(c, "delete reservation", err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation deleted", nil)
}

type reservationHold struct {
	CustomerName string `json:"customer_name"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
}

// CheckReservation -> is the table held by a reservation right now?
// Public, so only the reservation window and name are returned.
func (rc *ReservationController) CheckReservation(c *gin.Context) {
	var req struct {
		TableCode string `json:"table_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	r, err := rc.Reservations.CheckNow(req.TableCode)
	if err != nil {
		respondServiceError(c, "check reservation", err)
		return
	}
	if r == nil {
		utils.RespondJSON(c, http.StatusOK, "Table is not reserved", gin.H{"reserved": false})
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table is reserved", gin.H{
		"reserved": true,
		"reservation": reservationHold{
			CustomerName: r.CustomerName,
			Date:         r.Date,
			StartTime:    r.StartTime,
			EndTime:      r.EndTime,
		},
	})
}

package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/utils"
	"gorm.io/gorm"
)

type ReservationInput struct {
	TableCode     string `json:"table_code" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	Date          string `json:"date" binding:"required"`
	StartTime     string `json:"start_time" binding:"required"`
	EndTime       string `json:"end_time" binding:"required"`
	Note          string `json:"note"`
}

// ReservationService stores reservations and answers whether a table is held
// at a given instant. Dates and times are wall clock values in Location.
type ReservationService struct {
	db       *gorm.DB
	Location *time.Location
	Now      func() time.Time
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{db: db, Location: time.Local, Now: time.Now}
}

func (s *ReservationService) List() ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := s.db.Order("date asc, start_time asc, id asc").Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return reservations, nil
}

// Create stores a reservation. Overlapping reservations are not rejected.
func (s *ReservationService) Create(in ReservationInput) (*models.Reservation, error) {
	r := models.Reservation{
		TableCode:     strings.TrimSpace(in.TableCode),
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		Date:          strings.TrimSpace(in.Date),
		StartTime:     strings.TrimSpace(in.StartTime),
		EndTime:       strings.TrimSpace(in.EndTime),
		Note:          strings.TrimSpace(in.Note),
	}
	if r.TableCode == "" || r.CustomerName == "" {
		return nil, fmt.Errorf("%w: table code and customer name are required", ErrValidation)
	}
	start, end, err := s.window(r)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end time %s is before start time %s", ErrValidation, r.EndTime, r.StartTime)
	}

	if err := s.db.Create(&r).Error; err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}
	utils.InfoLogger.Printf("New reservation for table %s on %s %s-%s", r.TableCode, r.Date, r.StartTime, r.EndTime)
	return &r, nil
}

func (s *ReservationService) Delete(id uint) error {
	res := s.db.Delete(&models.Reservation{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete reservation %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	utils.InfoLogger.Printf("Reservation %d deleted", id)
	return nil
}

// Check returns the first reservation of tableCode whose window contains at,
// bounds included, or nil when the table is free.
func (s *ReservationService) Check(tableCode string, at time.Time) (*models.Reservation, error) {
	tableCode = strings.TrimSpace(tableCode)
	if tableCode == "" {
		return nil, fmt.Errorf("%w: table code is required", ErrValidation)
	}
	at = at.In(s.Location)

	var candidates []models.Reservation
	err := s.db.Where("table_code = ? AND date = ?", tableCode, at.Format(models.ReservationDateLayout)).
		Order("id asc").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("check reservations for %s: %w", tableCode, err)
	}

	for i := range candidates {
		start, end, err := s.window(candidates[i])
		if err != nil {
			utils.ErrorLogger.Printf("Skipping reservation %d with bad window: %v", candidates[i].ID, err)
			continue
		}
		if !at.Before(start) && !at.After(end) {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

// CheckNow is Check at the current time.
func (s *ReservationService) CheckNow(tableCode string) (*models.Reservation, error) {
	return s.Check(tableCode, s.Now())
}

func (s *ReservationService) window(r models.Reservation) (time.Time, time.Time, error) {
	layout := models.ReservationDateLayout + " " + models.ReservationTimeLayout
	start, err := time.ParseInLocation(layout, r.Date+" "+r.StartTime, s.Location)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid date or start time (want YYYY-MM-DD and HH:MM)", ErrValidation)
	}
	end, err := time.ParseInLocation(layout, r.Date+" "+r.EndTime, s.Location)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end time (want HH:MM)", ErrValidation)
	}
	return start, end, nil
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/qrmenu-app/models"
	"github.com/yeremiapane/qrmenu-app/notify"
	"github.com/yeremiapane/qrmenu-app/utils"
	"gorm.io/gorm"
)

// TableRegistry owns table records and their open/closed status.
type TableRegistry struct {
	db  *gorm.DB
	pub notify.Publisher
}

func NewTableRegistry(db *gorm.DB, pub notify.Publisher) *TableRegistry {
	if pub == nil {
		pub = notify.Nop{}
	}
	return &TableRegistry{db: db, pub: pub}
}

type TablePatch struct {
	Code   *string `json:"code"`
	Status *string `json:"status"`
}

func (r *TableRegistry) List() ([]models.Table, error) {
	var tables []models.Table
	if err := r.db.Order("code asc").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

func (r *TableRegistry) Get(id uint) (*models.Table, error) {
	var table models.Table
	if err := r.db.First(&table, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("table %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get table %d: %w", id, err)
	}
	return &table, nil
}

func (r *TableRegistry) FindByCode(code string) (*models.Table, error) {
	var table models.Table
	if err := r.db.Where("code = ?", code).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("table %q: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("find table %q: %w", code, err)
	}
	return &table, nil
}

// Create registers a new open table. Codes are unique.
func (r *TableRegistry) Create(code string) (*models.Table, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: table code is required", ErrValidation)
	}
	if err := r.ensureCodeFree(code, 0); err != nil {
		return nil, err
	}

	table := models.Table{Code: code, Status: models.TableStatusOpen}
	if err := r.db.Create(&table).Error; err != nil {
		return nil, fmt.Errorf("create table %q: %w", code, err)
	}

	r.pub.Publish(notify.EventTableCreated, table)
	utils.InfoLogger.Printf("New table created: %s", table.Code)
	return &table, nil
}

// Update renames a table and/or forces its status. A rename moves the
// table's orders to the new code in the same transaction, and the status is
// then resynced from them unless the patch sets one.
func (r *TableRegistry) Update(id uint, patch TablePatch) (*models.Table, error) {
	table, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	oldCode := table.Code
	if patch.Code != nil {
		code := strings.TrimSpace(*patch.Code)
		if code == "" {
			return nil, fmt.Errorf("%w: table code is required", ErrValidation)
		}
		if code != table.Code {
			if err := r.ensureCodeFree(code, table.ID); err != nil {
				return nil, err
			}
			table.Code = code
		}
	}
	if patch.Status != nil {
		if !validTableStatus(*patch.Status) {
			return nil, fmt.Errorf("%w: status must be %q or %q", ErrValidation, models.TableStatusOpen, models.TableStatusClosed)
		}
		table.Status = *patch.Status
	}

	renamed := table.Code != oldCode
	err = r.db.Transaction(func(tx *gorm.DB) error {
		if renamed {
			res := tx.Model(&models.Order{}).Where("table_code = ?", oldCode).Update("table_code", table.Code)
			if res.Error != nil {
				return fmt.Errorf("move orders of %q: %w", oldCode, res.Error)
			}
			if res.RowsAffected > 0 {
				utils.InfoLogger.WithFields(logrus.Fields{
					"from":   oldCode,
					"to":     table.Code,
					"orders": res.RowsAffected,
				}).Info("Orders moved to renamed table")
			}
		}
		return tx.Save(table).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update table %d: %w", id, err)
	}

	if renamed && patch.Status == nil {
		if err := r.Sync(table.Code); err != nil {
			return nil, err
		}
		if table, err = r.Get(id); err != nil {
			return nil, err
		}
	}

	r.pub.Publish(notify.EventTableUpdated, table)
	utils.InfoLogger.Printf("Table %s updated (status=%s)", table.Code, table.Status)
	return table, nil
}

func (r *TableRegistry) Delete(id uint) error {
	table, err := r.Get(id)
	if err != nil {
		return err
	}
	if err := r.db.Delete(table).Error; err != nil {
		return fmt.Errorf("delete table %d: %w", id, err)
	}
	r.pub.Publish(notify.EventTableDeleted, map[string]interface{}{"id": table.ID, "code": table.Code})
	utils.InfoLogger.Printf("Table %s deleted", table.Code)
	return nil
}

// SetStatusByCode changes the status of the table with code. A missing table
// is not an error: orders only reference tables by code.
func (r *TableRegistry) SetStatusByCode(code, status string) error {
	var table models.Table
	err := r.db.Where("code = ?", code).First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.InfoLogger.WithField("table_code", code).Warn("No table registered for code")
		return nil
	}
	if err != nil {
		return fmt.Errorf("find table %q: %w", code, err)
	}
	if table.Status == status {
		return nil
	}

	table.Status = status
	if err := r.db.Save(&table).Error; err != nil {
		return fmt.Errorf("set table %q %s: %w", code, status, err)
	}
	r.pub.Publish(notify.EventTableUpdated, table)
	utils.InfoLogger.WithFields(logrus.Fields{"table_code": code, "status": status}).Info("Table status changed")
	return nil
}

// Sync closes the table while it has active orders and opens it otherwise.
func (r *TableRegistry) Sync(code string) error {
	var active int64
	if err := r.db.Model(&models.Order{}).
		Where("table_code = ? AND status IN ?", code, models.ActiveOrderStatuses).
		Count(&active).Error; err != nil {
		return fmt.Errorf("count active orders for %q: %w", code, err)
	}

	status := models.TableStatusOpen
	if active > 0 {
		status = models.TableStatusClosed
	}
	return r.SetStatusByCode(code, status)
}

func (r *TableRegistry) ensureCodeFree(code string, exceptID uint) error {
	var count int64
	if err := r.db.Model(&models.Table{}).
		Where("code = ? AND id <> ?", code, exceptID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check table code %q: %w", code, err)
	}
	if count > 0 {
		return fmt.Errorf("%w: table with code %q already exists", ErrValidation, code)
	}
	return nil
}

func validTableStatus(s string) bool {
	return s == models.TableStatusOpen || s == models.TableStatusClosed
}

package services

import (
	"time"

	"github.com/yeremiapane/qrmenu-app/utils"
)

// Maintenance runs the periodic housekeeping jobs: ledger retention and
// campaign expiry.
type Maintenance struct {
	Ledger    *LedgerService
	Campaigns *CampaignService
	StopChan  chan struct{}
	Interval  time.Duration
}

func NewMaintenance(ledger *LedgerService, campaigns *CampaignService) *Maintenance {
	return &Maintenance{
		Ledger:    ledger,
		Campaigns: campaigns,
		StopChan:  make(chan struct{}),
		Interval:  time.Hour,
	}
}

func (m *Maintenance) Start() {
	go func() {
		ticker := time.NewTicker(m.Interval)
		defer ticker.Stop()

		m.RunOnce()
		for {
			select {
			case <-ticker.C:
				m.RunOnce()
			case <-m.StopChan:
				return
			}
		}
	}()
}

func (m *Maintenance) Stop() {
	close(m.StopChan)
}

// RunOnce executes every job once. Failures are logged and do not stop the others.
func (m *Maintenance) RunOnce() {
	if m.Ledger != nil {
		if _, err := m.Ledger.PruneOlderThan(m.Ledger.Retention); err != nil {
			utils.ErrorLogger.Printf("Error pruning sales: %v", err)
		}
	}
	if m.Campaigns != nil {
		if _, err := m.Campaigns.Expire(); err != nil {
			utils.ErrorLogger.Printf("Error expiring campaigns: %v", err)
		}
	}
}

package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/lib/pq"
)

const (
	// DefaultPriceTTL seconds a price stays usable
	DefaultPriceTTL int64 = 300
	// DefaultCloseFactor max share of debt repaid by one liquidation, bps
	DefaultCloseFactor int64 = 5000
	// DefaultMaxPriceDelta max relative price change per update, bps
	DefaultMaxPriceDelta int64 = 2000
	// DefaultEmergencyBonus extra liquidation bonus in emergency mode, bps
	DefaultEmergencyBonus int64 = 500
	// DefaultMaxEmergencyBonus cap of the extra bonus, bps
	DefaultMaxEmergencyBonus int64 = 2000

	// GlobalID primary key of the singleton row
	GlobalID int64 = 1
)

// Global market wide parameters, a singleton
type Global struct {
	ID                int64          `sql:"PRIMARY_KEY" json:"id"`
	Admin             string         `sql:"size:64" json:"admin"`
	Paused            bool           `json:"paused"`
	PriceTTL          int64          `json:"price_ttl"`
	CloseFactor       int64          `json:"close_factor"`
	MaxPriceDelta     int64          `json:"max_price_delta"`
	EmergencyMode     bool           `json:"emergency_mode"`
	EmergencyBonus    int64          `json:"emergency_bonus"`
	MaxEmergencyBonus int64          `json:"max_emergency_bonus"`
	Updaters          pq.StringArray `sql:"type:varchar(1024)" json:"updaters"`
	Version           int64          `sql:"default:0" json:"version"`
	CreatedAt         time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// NewGlobal global state with defaults
func NewGlobal(admin string) *Global {
	return &Global{
		ID:                GlobalID,
		Admin:             admin,
		PriceTTL:          DefaultPriceTTL,
		CloseFactor:       DefaultCloseFactor,
		MaxPriceDelta:     DefaultMaxPriceDelta,
		EmergencyBonus:    DefaultEmergencyBonus,
		MaxEmergencyBonus: DefaultMaxEmergencyBonus,
	}
}

// IsAdmin check if the user is admin
func (g *Global) IsAdmin(userID string) bool {
	return userID != "" && g.Admin == userID
}

// IsUpdater check if the user may set prices
func (g *Global) IsUpdater(userID string) bool {
	if g.IsAdmin(userID) {
		return true
	}

	for _, u := range g.Updaters {
		if u == userID {
			return true
		}
	}

	return false
}

// IGlobalStore global store interface
type IGlobalStore interface {
	Save(ctx context.Context, tx *db.DB, global *Global) error
	Find(ctx context.Context, tx *db.DB) (*Global, error)
}

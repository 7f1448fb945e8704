package models

import (
	"time"

	"github.com/bhushanhacker007/solar-burji-app/internal/util"

	"github.com/shopspring/decimal"
)

// SolarDaily is one day of meter readings, keyed by the reading date itself.
type SolarDaily struct {
	ReadingDate   Date            `gorm:"primaryKey;type:date" json:"reading_date"`
	ImportKWh     decimal.Decimal `gorm:"column:import_kwh;type:varchar(40);not null" json:"import_kwh"`
	ExportKWh     decimal.Decimal `gorm:"column:export_kwh;type:varchar(40);not null" json:"export_kwh"`
	GenerationKWh decimal.Decimal `gorm:"column:generation_kwh;type:varchar(40);not null" json:"generation_kwh"`
	Notes         *string         `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `json:"-"`
	UpdatedAt     time.Time       `json:"-"`
}

func (SolarDaily) TableName() string { return "solar_daily" }

// SolarUpsertColumns are overwritten when a reading for the same date already exists.
var SolarUpsertColumns = []string{"import_kwh", "export_kwh", "generation_kwh", "notes", "updated_at"}

func (s *SolarDaily) Validate() error {
	if s.ReadingDate == "" {
		return util.Invalidf("reading_date required (YYYY-MM-DD)")
	}
	for _, f := range []struct {
		name string
		v    decimal.Decimal
	}{
		{"import_kwh", s.ImportKWh},
		{"export_kwh", s.ExportKWh},
		{"generation_kwh", s.GenerationKWh},
	} {
		if err := util.ValidateAmount(f.name, f.v); err != nil {
			return err
		}
	}
	return nil
}

// SolarPatch is a partial update of a SolarDaily row.
// Notes follows the other fields: absent or null leaves the stored value alone,
// so notes can be replaced but never cleared.
type SolarPatch struct {
	ImportKWh     *decimal.Decimal
	ExportKWh     *decimal.Decimal
	GenerationKWh *decimal.Decimal
	Notes         *string
}

func (p SolarPatch) Validate() error {
	for _, f := range []struct {
		name string
		v    *decimal.Decimal
	}{
		{"import_kwh", p.ImportKWh},
		{"export_kwh", p.ExportKWh},
		{"generation_kwh", p.GenerationKWh},
	} {
		if f.v == nil {
			continue
		}
		if err := util.ValidateAmount(f.name, *f.v); err != nil {
			return err
		}
	}
	return nil
}

func (p SolarPatch) Changes() map[string]any {
	ch := map[string]any{}
	if p.ImportKWh != nil {
		ch["import_kwh"] = *p.ImportKWh
	}
	if p.ExportKWh != nil {
		ch["export_kwh"] = *p.ExportKWh
	}
	if p.GenerationKWh != nil {
		ch["generation_kwh"] = *p.GenerationKWh
	}
	if p.Notes != nil {
		ch["notes"] = *p.Notes
	}
	return ch
}

package handler

import (
	"github.com/bhushanhacker007/solar-burji-app/internal/models"
	"github.com/bhushanhacker007/solar-burji-app/internal/report"
	"github.com/bhushanhacker007/solar-burji-app/internal/store"
	"github.com/bhushanhacker007/solar-burji-app/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SolarEntity 光伏每日读数，以 reading_date 为主键；重复提交同一天会整行覆盖
type SolarEntity struct{}

func (SolarEntity) ParseCreate(p payload) (*models.SolarDaily, error) {
	readingDate, err := p.date("reading_date")
	if err != nil {
		return nil, err
	}
	if readingDate == nil {
		return nil, util.Invalidf("reading_date required (YYYY-MM-DD)")
	}

	s := &models.SolarDaily{ReadingDate: *readingDate}
	for _, f := range []struct {
		key string
		dst *decimal.Decimal
	}{
		{"import_kwh", &s.ImportKWh},
		{"export_kwh", &s.ExportKWh},
		{"generation_kwh", &s.GenerationKWh},
	} {
		v, err := p.amount(f.key)
		if err != nil {
			return nil, err
		}
		*f.dst = decimal.Zero
		if v != nil {
			*f.dst = *v
		}
	}
	if s.Notes, err = p.text("notes"); err != nil {
		return nil, err
	}
	return s, nil
}

func (SolarEntity) ParseUpdate(p payload) (any, store.Patch, error) {
	readingDate, err := p.date("reading_date")
	if err != nil {
		return nil, nil, err
	}
	if readingDate == nil {
		return nil, nil, util.Invalidf("reading_date required (YYYY-MM-DD)")
	}
	var patch models.SolarPatch
	if patch.ImportKWh, err = p.amount("import_kwh"); err != nil {
		return nil, nil, err
	}
	if patch.ExportKWh, err = p.amount("export_kwh"); err != nil {
		return nil, nil, err
	}
	if patch.GenerationKWh, err = p.amount("generation_kwh"); err != nil {
		return nil, nil, err
	}
	// null notes is treated as absent: notes can be replaced, not cleared
	if patch.Notes, err = p.text("notes"); err != nil {
		return nil, nil, err
	}
	return *readingDate, patch, nil
}

func (SolarEntity) DeleteKey(c *gin.Context) (any, error) {
	s := c.Query("reading_date")
	if s == "" {
		return nil, util.Invalidf("reading_date required")
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return nil, util.Invalidf("reading_date must be YYYY-MM-DD")
	}
	return d, nil
}

func (SolarEntity) Key(rec *models.SolarDaily) any { return rec.ReadingDate }

func (SolarEntity) Created(rec *models.SolarDaily) util.Response {
	return util.Response{"reading_date": rec.ReadingDate, "day": rec}
}

func (SolarEntity) Table(rows []models.SolarDaily) *report.Table {
	return report.Solar(rows)
}

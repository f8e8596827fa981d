package commands

import (
	"time"

	"innkeeper/internal/domain/pricing"
	"innkeeper/internal/pkg/config"
	"innkeeper/internal/pkg/errs"
)

type EngineSettings struct {
	Location       *time.Location
	HoldTTL        time.Duration
	SweepInterval  time.Duration
	GraceWindow    time.Duration
	TaxRates       []pricing.TaxRate
	DepositPercent int
	IdempotencyTTL time.Duration
}

func NewEngineSettings(cfg config.EngineConfig) (EngineSettings, error) {
	loc, err := cfg.Location()
	if err != nil {
		return EngineSettings{}, err
	}
	rates, err := pricing.ParseTaxRates(cfg.TaxRates)
	if err != nil {
		return EngineSettings{}, errs.Wrap(err, "invalid TAX_RATES")
	}
	return EngineSettings{
		Location:       loc,
		HoldTTL:        cfg.HoldTTL,
		SweepInterval:  cfg.HoldSweepInterval,
		GraceWindow:    cfg.CheckInGraceWindow,
		TaxRates:       rates,
		DepositPercent: cfg.DepositPercent,
		IdempotencyTTL: cfg.IdempotencyTTL,
	}, nil
}

// DepositDue is the share of base that must be paid before Confirm, rounded up.
func (s EngineSettings) DepositDue(base pricing.Money) pricing.Money {
	if s.DepositPercent <= 0 || base <= 0 {
		return 0
	}
	return pricing.Money((base.Minor()*int64(s.DepositPercent) + 99) / 100)
}

package calculator

import (
	"sort"
	"time"

	"github.com/rmx-ops/concrete/models"
)

// PriceFor selects the effective unit price for a trip from the (project,
// mix) price bands. A band qualifies when the dispatch date falls inside
// its effective window and the load inside its volume window, either bound
// being open when unset. Among qualifying bands the one with the highest
// defined LoadMinM3 wins (volume-specific beats catch-all), then the most
// recent defined EffectiveFrom; unset bounds sort last in both keys.
func (c *Calculator) PriceFor(project *models.Project, mix *models.Mix, date time.Time, loadM3 float64) (float64, error) {
	bands, err := c.store.PriceBands(project.ID, mix.ID)
	if err != nil {
		return 0, err
	}

	var qualifying []models.PriceBand
	for _, b := range bands {
		if !bandQualifies(b, date, loadM3) {
			continue
		}
		qualifying = append(qualifying, b)
	}

	if len(qualifying) == 0 {
		return 0, &NoPriceError{ProjectCode: project.Code, MixCode: mix.Code, LoadM3: loadM3}
	}

	sort.SliceStable(qualifying, func(i, j int) bool {
		a, b := qualifying[i], qualifying[j]
		if la, lb := a.LoadMinM3, b.LoadMinM3; la != nil || lb != nil {
			switch {
			case la == nil:
				return false
			case lb == nil:
				return true
			case *la != *lb:
				return *la > *lb
			}
		}
		fa, fb := a.EffectiveFrom, b.EffectiveFrom
		switch {
		case fa == nil:
			return false
		case fb == nil:
			return true
		default:
			return fa.After(*fb)
		}
	})

	return qualifying[0].PricePerM3, nil
}

func bandQualifies(b models.PriceBand, date time.Time, loadM3 float64) bool {
	if b.EffectiveFrom != nil && b.EffectiveFrom.After(date) {
		return false
	}
	if b.EffectiveTo != nil && b.EffectiveTo.Before(date) {
		return false
	}
	if b.LoadMinM3 != nil && *b.LoadMinM3 > loadM3 {
		return false
	}
	if b.LoadMaxM3 != nil && *b.LoadMaxM3 < loadM3 {
		return false
	}
	return true
}

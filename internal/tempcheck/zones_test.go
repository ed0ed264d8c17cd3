package tempcheck

import (
	"testing"

	"kitchenops-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPassIntervalsInclusive(t *testing.T) {
	cases := []struct {
		zone models.ZoneType
		low  float64
		high float64
	}{
		{models.ZoneFridge, 0, 5},
		{models.ZoneFreezer, -50, -18},
		{models.ZoneHotHold, 63, 100},
		{models.ZoneAmbient, 15, 25},
		{models.ZoneDeliveryCold, 0, 5},
		{models.ZoneDeliveryFrozen, -50, -18},
	}

	for _, tc := range cases {
		assert.Equal(t, models.StatusPass, Classify(tc.low, tc.zone), "%s lower bound", tc.zone)
		assert.Equal(t, models.StatusPass, Classify(tc.high, tc.zone), "%s upper bound", tc.zone)
		assert.Equal(t, models.StatusPass, Classify((tc.low+tc.high)/2, tc.zone), "%s midpoint", tc.zone)
	}
}

func TestClassifyWarningAndFail(t *testing.T) {
	cases := []struct {
		zone    models.ZoneType
		value   float64
		want    models.CheckStatus
	}{
		{models.ZoneFridge, 5.1, models.StatusWarning},
		{models.ZoneFridge, 8, models.StatusWarning},
		{models.ZoneFridge, 8.1, models.StatusFail},
		{models.ZoneFridge, -0.1, models.StatusFail},
		{models.ZoneFreezer, -17.9, models.StatusWarning},
		{models.ZoneFreezer, -15, models.StatusWarning},
		{models.ZoneFreezer, -14.9, models.StatusFail},
		{models.ZoneHotHold, 60, models.StatusWarning},
		{models.ZoneHotHold, 62.9, models.StatusWarning},
		{models.ZoneHotHold, 59.9, models.StatusFail},
		{models.ZoneAmbient, 25.1, models.StatusWarning},
		{models.ZoneAmbient, 30, models.StatusWarning},
		{models.ZoneAmbient, 30.5, models.StatusFail},
		{models.ZoneDeliveryCold, 6, models.StatusWarning},
		{models.ZoneDeliveryCold, 9, models.StatusFail},
		{models.ZoneDeliveryFrozen, -12, models.StatusWarning},
		{models.ZoneDeliveryFrozen, -11.9, models.StatusFail},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.value, tc.zone), "%s %.1f", tc.zone, tc.value)
	}
}

func TestClassifyScenarios(t *testing.T) {
	assert.Equal(t, models.StatusPass, Classify(4.5, models.ZoneFridge))
	assert.Equal(t, models.StatusWarning, Classify(6, models.ZoneFridge))
	assert.Equal(t, models.StatusFail, Classify(9, models.ZoneFridge))
	assert.Equal(t, models.StatusPass, Classify(-20, models.ZoneFreezer))
	assert.Equal(t, models.StatusPass, Classify(65, models.ZoneHotHold))
	assert.Equal(t, models.StatusWarning, Classify(61, models.ZoneHotHold))
}

func TestClassifyIsTotalForKnownZones(t *testing.T) {
	// every parsed number gets one of the three compliance statuses
	values := []float64{-273.15, -51, -18.05, -1, 0.05, 4.99, 5.05, 7.77, 12, 62.95, 99.9, 101, 1000}
	for zone := range zoneProfiles {
		for _, v := range values {
			st := Classify(v, zone)
			assert.Contains(t,
				[]models.CheckStatus{models.StatusPass, models.StatusWarning, models.StatusFail},
				st, "%s %.2f", zone, v)
		}
	}
}

func TestClassifyUnknownZone(t *testing.T) {
	// a renamed or misconfigured zone type must never read as compliant
	assert.Equal(t, models.StatusUnknown, Classify(4, models.ZoneType("wine_cellar")))
	assert.False(t, KnownZone(models.ZoneType("wine_cellar")))
	assert.True(t, KnownZone(models.ZoneHotHold))
}

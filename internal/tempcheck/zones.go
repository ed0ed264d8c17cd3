package tempcheck

import "kitchenops-backend/internal/models"

// ZoneProfile: acceptable temperature bands for a location type, in Celsius.
// Fixed constants, never persisted. Pass is checked before warning.
type ZoneProfile struct {
	Label   string
	PassMin float64
	PassMax float64
	WarnMin float64
	WarnMax float64
}

var zoneProfiles = map[models.ZoneType]ZoneProfile{
	models.ZoneFridge: {
		Label:   "Fridge",
		PassMin: 0, PassMax: 5,
		WarnMin: 5.1, WarnMax: 8,
	},
	models.ZoneFreezer: {
		Label:   "Freezer",
		PassMin: -50, PassMax: -18,
		WarnMin: -17.9, WarnMax: -15,
	},
	models.ZoneHotHold: {
		Label:   "Hot hold",
		PassMin: 63, PassMax: 100,
		WarnMin: 60, WarnMax: 62.9,
	},
	models.ZoneAmbient: {
		Label:   "Ambient",
		PassMin: 15, PassMax: 25,
		WarnMin: 25.1, WarnMax: 30,
	},
	models.ZoneDeliveryCold: {
		Label:   "Chilled delivery",
		PassMin: 0, PassMax: 5,
		WarnMin: 5.1, WarnMax: 8,
	},
	models.ZoneDeliveryFrozen: {
		Label:   "Frozen delivery",
		PassMin: -50, PassMax: -18,
		WarnMin: -17.9, WarnMax: -12,
	},
}

// Classify maps a reading to pass/warning/fail for the given zone type.
// Intervals are inclusive on both ends, pass wins over warning. A zone type
// without a profile yields StatusUnknown so a misconfigured location is never
// reported as compliant.
func Classify(value float64, zone models.ZoneType) models.CheckStatus {
	p, ok := zoneProfiles[zone]
	if !ok {
		return models.StatusUnknown
	}
	if value >= p.PassMin && value <= p.PassMax {
		return models.StatusPass
	}
	if value >= p.WarnMin && value <= p.WarnMax {
		return models.StatusWarning
	}
	return models.StatusFail
}

// KnownZone reports whether a profile exists for the zone type.
func KnownZone(zone models.ZoneType) bool {
	_, ok := zoneProfiles[zone]
	return ok
}

// ZoneLabel returns the display label of a zone type, or the raw value when
// no profile exists.
func ZoneLabel(zone models.ZoneType) string {
	if p, ok := zoneProfiles[zone]; ok {
		return p.Label
	}
	return string(zone)
}

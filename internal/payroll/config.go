package payroll

import "time"

const (
	// DefaultOTRate is paid per rounded overtime hour when no rate is configured.
	DefaultOTRate = 50.0
	// DefaultShiftWage is the last fallback for a day's wage.
	DefaultShiftWage = 500.0
	// ExtraShiftMinutes is the nominal length of unscheduled work, measured
	// from check-in.
	ExtraShiftMinutes = 540
	// OTThresholdMinutes is the smallest overtime that counts. Shorter
	// overtime is ignored entirely.
	OTThresholdMinutes = 29

	DefaultTimezone = "Asia/Bangkok"
)

// Config holds the company's payroll rates and the zone used to cut
// attendance into calendar days.
type Config struct {
	OTRate          float64
	DoubleShiftRate float64
	Location        *time.Location
}

// withDefaults fills unset fields. It is applied once per calculation.
func (c Config) withDefaults() Config {
	if c.OTRate <= 0 {
		c.OTRate = DefaultOTRate
	}
	if c.DoubleShiftRate < 0 {
		c.DoubleShiftRate = 0
	}
	if c.Location == nil {
		c.Location = DefaultLocation()
	}
	return c
}

// DefaultLocation is Asia/Bangkok, or a fixed UTC+7 zone when tzdata is not
// installed.
func DefaultLocation() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.FixedZone("ICT", 7*60*60)
	}
	return loc
}

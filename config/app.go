package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Timezone returns the salon's display timezone from SALON_TIMEZONE. All
// appointment times are stored in UTC; this zone is only used for slot
// computation and display.
func Timezone() *time.Location {
	name := os.Getenv("SALON_TIMEZONE")
	if name == "" {
		name = "Asia/Kolkata"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Invalid SALON_TIMEZONE %q, falling back to UTC: %v", name, err)
		return time.UTC
	}
	return loc
}

// SlotStepMinutes returns the booking slot granularity from
// SLOT_STEP_MINUTES (default 30).
func SlotStepMinutes() int {
	if env := os.Getenv("SLOT_STEP_MINUTES"); env != "" {
		if m, err := strconv.Atoi(env); err == nil && m > 0 {
			return m
		}
		log.Printf("Invalid SLOT_STEP_MINUTES %q, using default", env)
	}
	return 30
}

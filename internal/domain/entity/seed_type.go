package entity

import "time"

// SeedType tipo de semilla; MaxStorageDays define el vencimiento por defecto.
type SeedType struct {
	ID             string
	Name           string
	MaxStorageDays int
	CreatedAt      time.Time
}

// ExpirationFrom fecha de vencimiento derivada; false si el tipo no define duración.
func (s *SeedType) ExpirationFrom(entry time.Time) (time.Time, bool) {
	if s == nil || s.MaxStorageDays <= 0 {
		return time.Time{}, false
	}
	return entry.AddDate(0, 0, s.MaxStorageDays), true
}

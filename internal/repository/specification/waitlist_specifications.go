package specification

import "gorm.io/gorm"

type ByIPAddress struct {
	IPAddress string
}

func (s ByIPAddress) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("ip_address = ?", s.IPAddress)
}

// HasAPIKey keeps only entries where the visitor left an API key.
type HasAPIKey struct{}

func (s HasAPIKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("apikey = ? AND api_key IS NOT NULL", true)
}

type IsPaid struct{}

func (s IsPaid) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("paid = ?", true)
}

package specification

import "gorm.io/gorm"

type ByThreadID struct {
	ThreadID string
}

func (s ByThreadID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("thread_id = ?", s.ThreadID)
}

package models

import (
	"time"
)

// Subscriber is one opted-in phone number. The canonical E.164 phone is the
// primary key: re-subscribing the same number updates the row in place.
//
// Preference columns are nullable so rows created before a column existed
// keep reading as "daily digest on" (NULL coalesces to true on the read
// path, never rewritten in place).
type Subscriber struct {
	Phone        string `gorm:"primaryKey"`
	DailyDigest  *bool  `gorm:"column:daily_digest"`
	SurplusDrops *bool  `gorm:"column:surplus_drops"`
	SurplusPosts *bool  `gorm:"column:surplus_posts"`
	CreatedAt    time.Time
}

// SubscriberPrefs carries the preference fields of a subscribe request.
// A nil field means "not supplied": on first insert it takes the documented
// default, on update it leaves the stored value untouched.
type SubscriberPrefs struct {
	DailyDigest  *bool
	SurplusDrops *bool
	SurplusPosts *bool
}

// Documented defaults, applied only when a field is absent on first insert.
const (
	DefaultDailyDigest  = true
	DefaultSurplusDrops = false
	DefaultSurplusPosts = false
)

package services

import (
	"errors"

	"gorm.io/gorm"

	"commontable-alerts/models"
)

// SubscriberRegistry is the durable set of opted-in phone numbers. Phones
// are expected to be canonical E.164; normalization happens at the boundary.
type SubscriberRegistry interface {
	Upsert(phone string, prefs models.SubscriberPrefs) error
	Remove(phone string) error
	ListActiveForDailyDigest() ([]string, error)
	Count() (int64, error)
}

// GormRegistry implements SubscriberRegistry over a gorm connection.
type GormRegistry struct {
	db *gorm.DB
}

func NewGormRegistry(db *gorm.DB) *GormRegistry {
	return &GormRegistry{db: db}
}

// Upsert inserts or updates the row for phone. Preference fields left nil in
// prefs take their defaults on first insert and are preserved untouched on
// update, so repeated bare subscribes never reset stored preferences.
func (r *GormRegistry) Upsert(phone string, prefs models.SubscriberPrefs) error {
	var existing models.Subscriber
	err := r.db.First(&existing, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		dailyDigest := models.DefaultDailyDigest
		surplusDrops := models.DefaultSurplusDrops
		surplusPosts := models.DefaultSurplusPosts
		sub := models.Subscriber{
			Phone:        phone,
			DailyDigest:  &dailyDigest,
			SurplusDrops: &surplusDrops,
			SurplusPosts: &surplusPosts,
		}
		if prefs.DailyDigest != nil {
			sub.DailyDigest = prefs.DailyDigest
		}
		if prefs.SurplusDrops != nil {
			sub.SurplusDrops = prefs.SurplusDrops
		}
		if prefs.SurplusPosts != nil {
			sub.SurplusPosts = prefs.SurplusPosts
		}
		return r.db.Create(&sub).Error
	}
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if prefs.DailyDigest != nil {
		updates["daily_digest"] = *prefs.DailyDigest
	}
	if prefs.SurplusDrops != nil {
		updates["surplus_drops"] = *prefs.SurplusDrops
	}
	if prefs.SurplusPosts != nil {
		updates["surplus_posts"] = *prefs.SurplusPosts
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Subscriber{}).Where("phone = ?", phone).Updates(updates).Error
}

// Remove deletes the row for phone. Removing an unknown phone is a no-op
// success.
func (r *GormRegistry) Remove(phone string) error {
	return r.db.Where("phone = ?", phone).Delete(&models.Subscriber{}).Error
}

// ListActiveForDailyDigest returns the phones opted into the daily digest.
// Rows predating the preference column (NULL) count as opted in. Ordering
// is unspecified.
func (r *GormRegistry) ListActiveForDailyDigest() ([]string, error) {
	var phones []string
	err := r.db.Model(&models.Subscriber{}).
		Where("daily_digest IS NULL OR daily_digest = ?", true).
		Pluck("phone", &phones).Error
	if err != nil {
		return nil, err
	}
	return phones, nil
}

// Count returns the total subscriber count. Observability only: nothing
// gates business logic on it.
func (r *GormRegistry) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Subscriber{}).Count(&n).Error
	return n, err
}

package models

import (
	"time"

	"github.com/lib/pq"
)

// BrandVoice is the per-user brand identity used to shape generated
// replies. Created with defaults at signup, read once per pipeline run.
type BrandVoice struct {
	ID                uint           `gorm:"primaryKey;column:id" json:"id"`
	UserID            string         `gorm:"column:user_id;not null;uniqueIndex:idx_brand_voices_user_id" json:"user_id"`
	BrandName         string         `gorm:"column:brand_name;not null" json:"brand_name"`
	BrandValues       pq.StringArray `gorm:"column:brand_values;type:text[]" json:"brand_values"`
	PersonalityTraits pq.StringArray `gorm:"column:personality_traits;type:text[]" json:"personality_traits"`
	CreatedAt         time.Time      `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for the BrandVoice model
func (BrandVoice) TableName() string {
	return "brand_voices"
}

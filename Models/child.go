package Models

import (
	"time"

	"gorm.io/gorm"
)

// Age group buckets, ordered by developmental stage. A child's bucket decides
// which catalog tasks are eligible for daily assignment.
const (
	AgeGroupInfant    = "infant"    // 0-1
	AgeGroupToddler   = "toddler"   // 1-3
	AgeGroupPreschool = "preschool" // 3-6
	AgeGroupSchoolAge = "schoolage" // 6-10
)

var AgeGroups = []string{AgeGroupInfant, AgeGroupToddler, AgeGroupPreschool, AgeGroupSchoolAge}

func IsValidAgeGroup(ageGroup string) bool {
	for _, g := range AgeGroups {
		if g == ageGroup {
			return true
		}
	}
	return false
}

type Child struct {
	gorm.Model
	UserID       uint               `json:"user_id" gorm:"not null;index"`
	Name         string             `json:"name" gorm:"not null"`
	BirthDate    *DateOnly          `json:"birth_date" gorm:"type:date"`
	AgeGroup     string             `json:"age_group" gorm:"not null;index"`
	AvatarColor  string             `json:"avatar_color" gorm:"default:#FFB347"`
	PhotoPath    string             `json:"photo_path"`
	Measurements []ChildMeasurement `json:"measurements,omitempty" gorm:"foreignKey:ChildID;constraint:OnDelete:CASCADE"`
	Assignments  []DailyAssignment  `json:"-" gorm:"foreignKey:ChildID;constraint:OnDelete:CASCADE"`
}

// ChildMeasurement is an append-only height/weight snapshot. History is never
// edited, only extended.
type ChildMeasurement struct {
	gorm.Model
	ChildID    uint     `json:"child_id" gorm:"not null;index"`
	HeightCm   *float64 `json:"height_cm"`
	WeightKg   *float64 `json:"weight_kg"`
	Note       string   `json:"note"`
	MeasuredAt time.Time `json:"measured_at" gorm:"autoCreateTime"`
}

type ChildRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	AgeGroup    string   `json:"age_group" validate:"required,oneof=infant toddler preschool schoolage"`
	BirthDate   string   `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	AvatarColor string   `json:"avatar_color" validate:"omitempty,max=20"`
	HeightCm    *float64 `json:"height_cm" validate:"omitempty,gte=30,lte=250"`
	WeightKg    *float64 `json:"weight_kg" validate:"omitempty,gte=1,lte=200"`
}

type MeasurementRequest struct {
	HeightCm *float64 `json:"height_cm" validate:"omitempty,gte=30,lte=250"`
	WeightKg *float64 `json:"weight_kg" validate:"omitempty,gte=1,lte=200"`
	Note     string   `json:"note"`
}

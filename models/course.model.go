package models

import "gorm.io/gorm"

type Course struct {
	gorm.Model
	Title       string   `json:"title" gorm:"size:200;not null"`
	Description string   `json:"description"`
	Preview     string   `json:"preview" gorm:"default:''"`
	OwnerID     *uint    `json:"owner_id" gorm:"index"`
	Owner       *User    `json:"-" gorm:"foreignKey:OwnerID"`
	Lessons     []Lesson `json:"lessons,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

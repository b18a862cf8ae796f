package models

import "gorm.io/gorm"

type Lesson struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"size:200;not null"`
	Description string `json:"description"`
	Preview     string `json:"preview" gorm:"default:''"`
	VideoLink   string `json:"video_link" gorm:"default:''"`
	OwnerID     *uint  `json:"owner_id" gorm:"index"`
	Owner       *User  `json:"-" gorm:"foreignKey:OwnerID"`
	Course      Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

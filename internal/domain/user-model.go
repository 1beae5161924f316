package domain

import "gorm.io/gorm"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Role         string `gorm:"type:varchar(20);not null;default:student" json:"role"`
	StudentID    string `gorm:"uniqueIndex;not null" json:"student_id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	Program      string `json:"program"`
	YearLevel    int    `json:"year_level"`
	gorm.Model
}

package models

import "time"

type User struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"unique;not null" json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Cart      Cart   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	CreatedAt time.Time
}

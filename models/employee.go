package models

import "time"

// EmployeeRole defines allowed staff roles in the system
type EmployeeRole string

const (
	RoleAdmin   EmployeeRole = "admin"
	RoleBarista EmployeeRole = "barista"
	RoleDriver  EmployeeRole = "driver"
)

type Employee struct {
	ID        string       `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"not null"`
	Role      EmployeeRole `json:"role" gorm:"not null;default:'barista'"`
	PINHash   string       `json:"-" gorm:"not null"`
	Active    bool         `json:"active" gorm:"default:true"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

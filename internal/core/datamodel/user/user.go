package user

import "time"

// User is the persistence shape of a directory member. Rows are append-only:
// the directory grows monotonically and ids are never reused.
type User struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	Role      string    `gorm:"not null;index"`
	ManagerID *int64    `gorm:"column:manager_id"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (User) TableName() string {
	return "users"
}

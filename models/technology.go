// models/technology.go
package models

type Technology struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:100;not null"`
}

func (Technology) TableName() string {
	return "technologies"
}

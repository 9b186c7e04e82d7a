package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RoleFarmer   = "farmer"
	RoleConsumer = "consumer"
)

// User carries identity only. Role-specific attributes live in the matching
// profile row, so a farmer record can never carry consumer fields.
type User struct {
	gorm.Model
	Username          string `json:"username" gorm:"uniqueIndex;size:150"`
	Email             string `json:"email" gorm:"uniqueIndex;size:254"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Phone             string `json:"phone"`
	Password          string `json:"-"`
	Role              string `json:"role" gorm:"size:10"`
	ProfilePictureURL string `json:"profilePictureUrl"`

	FarmerProfile   *FarmerProfile   `json:"farmerProfile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ConsumerProfile *ConsumerProfile `json:"consumerProfile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type FarmerProfile struct {
	gorm.Model
	UserID       uint    `json:"userId" gorm:"uniqueIndex"`
	FarmLocation string  `json:"farmLocation"`
	FarmSize     float64 `json:"farmSize"`
}

type ConsumerProfile struct {
	gorm.Model
	UserID            uint           `json:"userId" gorm:"uniqueIndex"`
	Age               int            `json:"age"`
	HealthPreferences datatypes.JSON `json:"healthPreferences"`
}

type LoginData struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

package models

import "gorm.io/gorm"

const (
	MilletPearl    = "pearl"
	MilletFinger   = "finger"
	MilletFoxtail  = "foxtail"
	MilletProso    = "proso"
	MilletKodo     = "kodo"
	MilletBarnyard = "barnyard"
	MilletLittle   = "little"
	MilletSorghum  = "sorghum"
	MilletOtherVar = "other"
)

type CropAdvisory struct {
	gorm.Model
	FarmerID     uint   `json:"farmerId" gorm:"index"`
	MilletType   string `json:"milletType" gorm:"size:20"`
	Region       string `json:"region"`
	SoilType     string `json:"soilType"`
	Season       string `json:"season"`
	AdvisoryText string `json:"advisoryText"`
}

type WeatherAlert struct {
	gorm.Model
	Region      string `json:"region" gorm:"index"`
	AlertType   string `json:"alertType" gorm:"size:50"`
	Description string `json:"description"`
}

type GovernmentScheme struct {
	gorm.Model
	Title          string `json:"title"`
	Description    string `json:"description"`
	Eligibility    string `json:"eligibility"`
	ApplicationURL string `json:"applicationUrl"`
}

type ChatMessage struct {
	gorm.Model
	UserID        uint   `json:"userId" gorm:"index"`
	Message       string `json:"message"`
	IsUserMessage bool   `json:"isUserMessage"`
}

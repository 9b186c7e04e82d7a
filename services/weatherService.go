package services

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/milletmart/milletmart-api/models"
	"gorm.io/gorm"
)

const (
	geocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	forecastURL  = "https://api.open-meteo.com/v1/forecast"

	heavyRainThresholdMM = 20.0
	heatwaveThresholdC   = 40.0

	// Identical alerts inside this window collapse into one row, so repeated
	// dashboard views do not pile up duplicates.
	alertDedupWindow = 24 * time.Hour
)

type geocodingResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	Daily struct {
		PrecipitationSum []float64 `json:"precipitation_sum"`
		TemperatureMax   []float64 `json:"temperature_2m_max"`
	} `json:"daily"`
}

// RefreshWeatherAlerts geocodes the farm region, pulls tomorrow's forecast
// and records an alert row for each threshold crossed, then returns the most
// recent alerts for the region.
func RefreshWeatherAlerts(db *gorm.DB, region string) ([]models.WeatherAlert, error) {
	client := resty.New()

	var geo geocodingResponse
	resp, err := client.R().
		SetQueryParams(map[string]string{"name": region, "count": "1"}).
		SetResult(&geo).
		Get(geocodingURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 || len(geo.Results) == 0 {
		return nil, fmt.Errorf("could not geocode region %q", region)
	}

	var forecast forecastResponse
	resp, err = client.R().
		SetQueryParams(map[string]string{
			"latitude":      fmt.Sprintf("%f", geo.Results[0].Latitude),
			"longitude":     fmt.Sprintf("%f", geo.Results[0].Longitude),
			"daily":         "precipitation_sum,temperature_2m_max",
			"forecast_days": "1",
		}).
		SetResult(&forecast).
		Get(forecastURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("forecast request failed with status %d", resp.StatusCode())
	}

	for _, mm := range forecast.Daily.PrecipitationSum {
		if mm >= heavyRainThresholdMM {
			alert := models.WeatherAlert{
				Region:      region,
				AlertType:   "heavy_rain",
				Description: fmt.Sprintf("Heavy rainfall of %.1fmm expected in %s.", mm, region),
			}
			if err := recordAlertOnce(db, alert); err != nil {
				return nil, err
			}
		}
	}
	for _, temp := range forecast.Daily.TemperatureMax {
		if temp >= heatwaveThresholdC {
			alert := models.WeatherAlert{
				Region:      region,
				AlertType:   "heatwave",
				Description: fmt.Sprintf("Temperatures up to %.1f°C expected in %s.", temp, region),
			}
			if err := recordAlertOnce(db, alert); err != nil {
				return nil, err
			}
		}
	}

	var alerts []models.WeatherAlert
	err = db.Where("region = ?", region).Order("created_at desc").Limit(5).Find(&alerts).Error
	return alerts, err
}

// recordAlertOnce inserts the alert unless an identical one was recorded
// inside the dedup window.
func recordAlertOnce(db *gorm.DB, alert models.WeatherAlert) error {
	var existing int64
	err := db.Model(&models.WeatherAlert{}).
		Where("region = ? AND alert_type = ? AND description = ?",
			alert.Region, alert.AlertType, alert.Description).
		Where("created_at > ?", time.Now().Add(-alertDedupWindow)).
		Count(&existing).Error
	if err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}
	return db.Create(&alert).Error
}

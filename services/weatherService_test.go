package services

import (
	"testing"

	"github.com/milletmart/milletmart-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAlertOnceDedupesRepeats(t *testing.T) {
	db := newTestDB(t)
	alert := models.WeatherAlert{
		Region:      "Pune",
		AlertType:   "heavy_rain",
		Description: "Heavy rainfall of 32.5mm expected in Pune.",
	}

	// Repeated refreshes within the window must not pile up rows.
	require.NoError(t, recordAlertOnce(db, alert))
	require.NoError(t, recordAlertOnce(db, alert))
	require.NoError(t, recordAlertOnce(db, alert))

	var count int64
	require.NoError(t, db.Model(&models.WeatherAlert{}).
		Where("region = ?", "Pune").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecordAlertOnceKeepsDistinctAlerts(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, recordAlertOnce(db, models.WeatherAlert{
		Region:      "Pune",
		AlertType:   "heavy_rain",
		Description: "Heavy rainfall of 32.5mm expected in Pune.",
	}))
	require.NoError(t, recordAlertOnce(db, models.WeatherAlert{
		Region:      "Pune",
		AlertType:   "heatwave",
		Description: "Temperatures up to 42.0°C expected in Pune.",
	}))
	require.NoError(t, recordAlertOnce(db, models.WeatherAlert{
		Region:      "Nashik",
		AlertType:   "heavy_rain",
		Description: "Heavy rainfall of 25.0mm expected in Nashik.",
	}))

	var count int64
	require.NoError(t, db.Model(&models.WeatherAlert{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

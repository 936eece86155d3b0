package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "accuweather.app/errors"
)

const locationJSON = `{
	"Key": "328328",
	"Type": "City",
	"Rank": 10,
	"LocalizedName": "London",
	"EnglishName": "London",
	"Region": {"ID": "EUR", "LocalizedName": "Europe", "EnglishName": "Europe"},
	"Country": {"ID": "GB", "LocalizedName": "United Kingdom", "EnglishName": "United Kingdom"},
	"AdministrativeArea": {"ID": "LND", "LocalizedName": "London", "EnglishName": "London"},
	"TimeZone": {"Code": "GMT", "Name": "Europe/London", "GmtOffset": 0, "IsDaylightSaving": false},
	"GeoPosition": {"Latitude": 51.5073, "Longitude": -0.1277}
}`

func TestLocationResult_UnmarshalJSON(t *testing.T) {
	t.Run("BareObjectAndArrayDecodeIdentically", func(t *testing.T) {
		var fromObject LocationResult
		require.NoError(t, json.Unmarshal([]byte(locationJSON), &fromObject))

		var fromArray LocationResult
		require.NoError(t, json.Unmarshal([]byte("["+locationJSON+"]"), &fromArray))

		require.Len(t, fromObject.Locations, 1)
		require.Len(t, fromArray.Locations, 1)
		assert.Equal(t, fromObject.Locations[0], fromArray.Locations[0])
	})

	t.Run("DecodedFields", func(t *testing.T) {
		var result LocationResult
		require.NoError(t, json.Unmarshal([]byte(locationJSON), &result))

		loc, err := result.First()
		require.NoError(t, err)
		assert.Equal(t, "328328", loc.Key)
		assert.Equal(t, "London", loc.EnglishName)
		assert.Equal(t, "GB", loc.Country.ID)
		assert.Equal(t, "Europe/London", loc.TimeZone.Name)
		assert.InDelta(t, 51.5073, loc.GeoPosition.Latitude, 0.0001)
		assert.InDelta(t, -0.1277, loc.GeoPosition.Longitude, 0.0001)
	})

	t.Run("LeadingWhitespaceBeforeArray", func(t *testing.T) {
		var result LocationResult
		require.NoError(t, json.Unmarshal([]byte("\n\t ["+locationJSON+"]"), &result))
		assert.Len(t, result.Locations, 1)
	})

	t.Run("EmptyArray", func(t *testing.T) {
		var result LocationResult
		require.NoError(t, json.Unmarshal([]byte(`[]`), &result))

		loc, err := result.First()
		assert.Nil(t, loc)
		assert.True(t, apperrors.IsType(err, apperrors.NoResultsError))
	})
}

func TestCurrentObs_UnmarshalJSON(t *testing.T) {
	const observationJSON = `{
		"LocalObservationDateTime": "2024-06-01T12:00:00+01:00",
		"EpochTime": 1717239600,
		"WeatherText": "Partly cloudy",
		"WeatherIcon": 3,
		"HasPrecipitation": false,
		"IsDayTime": true,
		"Temperature": {
			"Metric": {"Value": 22.5, "Unit": "C", "UnitType": 17},
			"Imperial": {"Value": 72.0, "Unit": "F", "UnitType": 18}
		},
		"RelativeHumidity": 65
	}`

	t.Run("ArrayResponse", func(t *testing.T) {
		var obs CurrentObs
		require.NoError(t, json.Unmarshal([]byte("["+observationJSON+"]"), &obs))

		latest, err := obs.Latest()
		require.NoError(t, err)
		assert.Equal(t, "Partly cloudy", latest.WeatherText)
		assert.Equal(t, 22.5, latest.Temperature.Metric.Value)
		assert.Equal(t, "C", latest.Temperature.Metric.Unit)
		assert.Equal(t, 65.0, latest.RelativeHumidity)
	})

	t.Run("BareObjectResponse", func(t *testing.T) {
		var obs CurrentObs
		require.NoError(t, json.Unmarshal([]byte(observationJSON), &obs))

		latest, err := obs.Latest()
		require.NoError(t, err)
		assert.Equal(t, "Partly cloudy", latest.WeatherText)
	})

	t.Run("EmptyResponse", func(t *testing.T) {
		var obs CurrentObs
		require.NoError(t, json.Unmarshal([]byte(`[]`), &obs))

		latest, err := obs.Latest()
		assert.Nil(t, latest)
		assert.True(t, apperrors.IsType(err, apperrors.NoResultsError))
	})
}

func TestHourlyForecasts_UnmarshalJSON(t *testing.T) {
	payload := `[
		{"DateTime": "2024-06-01T13:00:00+01:00", "EpochDateTime": 1717243200,
		 "IconPhrase": "Sunny", "IsDaylight": true,
		 "Temperature": {"Value": 23.0, "Unit": "C", "UnitType": 17},
		 "PrecipitationProbability": 10},
		{"DateTime": "2024-06-01T14:00:00+01:00", "EpochDateTime": 1717246800,
		 "IconPhrase": "Mostly sunny", "IsDaylight": true,
		 "Temperature": {"Value": 23.5, "Unit": "C", "UnitType": 17},
		 "PrecipitationProbability": 15}
	]`

	var forecasts HourlyForecasts
	require.NoError(t, json.Unmarshal([]byte(payload), &forecasts))

	require.Len(t, forecasts.Hours, 2)
	assert.Equal(t, "Sunny", forecasts.Hours[0].IconPhrase)
	assert.Equal(t, 23.5, forecasts.Hours[1].Temperature.Value)
	assert.Equal(t, 15.0, forecasts.Hours[1].PrecipitationProbability)
}

func TestDailyForecasts_UnmarshalJSON(t *testing.T) {
	payload := `{
		"Headline": {"EffectiveDate": "2024-06-01T08:00:00+01:00", "Severity": 4,
		             "Text": "Pleasant this weekend", "Category": "mild"},
		"DailyForecasts": [
			{"Date": "2024-06-01T07:00:00+01:00", "EpochDate": 1717221600,
			 "Temperature": {
				"Minimum": {"Value": 12.0, "Unit": "C", "UnitType": 17},
				"Maximum": {"Value": 24.0, "Unit": "C", "UnitType": 17}
			 },
			 "Day": {"Icon": 2, "IconPhrase": "Mostly sunny", "HasPrecipitation": false, "PrecipitationProbability": 5},
			 "Night": {"Icon": 34, "IconPhrase": "Mostly clear", "HasPrecipitation": false, "PrecipitationProbability": 3}}
		]
	}`

	var forecasts DailyForecasts
	require.NoError(t, json.Unmarshal([]byte(payload), &forecasts))

	assert.Equal(t, "Pleasant this weekend", forecasts.Headline.Text)
	require.Len(t, forecasts.Days, 1)
	assert.Equal(t, 12.0, forecasts.Days[0].Temperature.Minimum.Value)
	assert.Equal(t, 24.0, forecasts.Days[0].Temperature.Maximum.Value)
	assert.Equal(t, "Mostly sunny", forecasts.Days[0].Day.IconPhrase)
}

func TestForecast_Union(t *testing.T) {
	hourly := &Forecast{Hourly: &HourlyForecasts{}}
	assert.True(t, hourly.IsHourly())
	assert.False(t, hourly.IsDaily())

	daily := &Forecast{Daily: &DailyForecasts{}}
	assert.True(t, daily.IsDaily())
	assert.False(t, daily.IsHourly())
}

func TestLocationSet_Len(t *testing.T) {
	set := &LocationSet{
		Locations:        []Location{{Key: "1"}, {Key: "2"}},
		SearchExpression: "springfield",
		CountryCode:      "US",
	}
	assert.Equal(t, 2, set.Len())
}

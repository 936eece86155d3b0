// Package models defines the value objects decoded from AccuWeather responses.
package models

import (
	"bytes"
	"encoding/json"

	"accuweather.app/errors"
)

// GeoPosition holds the coordinates of a resolved location.
type GeoPosition struct {
	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`
}

// Area is the common shape AccuWeather uses for regions, countries and
// administrative areas.
type Area struct {
	ID            string `json:"ID"`
	LocalizedName string `json:"LocalizedName"`
	EnglishName   string `json:"EnglishName"`
}

// TimeZone describes the timezone of a resolved location.
type TimeZone struct {
	Code             string  `json:"Code"`
	Name             string  `json:"Name"`
	GmtOffset        float64 `json:"GmtOffset"`
	IsDaylightSaving bool    `json:"IsDaylightSaving"`
}

// Location identifies a place resolved by any of the location operations.
// The Key is AccuWeather's opaque identifier, used in place of coordinates
// for subsequent queries. Immutable after decoding.
type Location struct {
	Key                string      `json:"Key"`
	Type               string      `json:"Type"`
	Rank               int         `json:"Rank"`
	LocalizedName      string      `json:"LocalizedName"`
	EnglishName        string      `json:"EnglishName"`
	PrimaryPostalCode  string      `json:"PrimaryPostalCode"`
	Region             Area        `json:"Region"`
	Country            Area        `json:"Country"`
	AdministrativeArea Area        `json:"AdministrativeArea"`
	TimeZone           TimeZone    `json:"TimeZone"`
	GeoPosition        GeoPosition `json:"GeoPosition"`
}

// LocationResult is the decoding boundary for location responses, which the
// API returns either as a single object or as an array of objects. Both
// shapes decode into the same ordered list.
type LocationResult struct {
	Locations []Location
}

func (r *LocationResult) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(data, &r.Locations)
	}

	var single Location
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	r.Locations = []Location{single}
	return nil
}

// First returns the first resolved location, or NoResultsError when the
// response was empty.
func (r *LocationResult) First() (*Location, error) {
	if len(r.Locations) == 0 {
		return nil, errors.NewNoResultsError("location query")
	}
	return &r.Locations[0], nil
}

// LocationSet is an ordered batch of search results together with the search
// expression and optional country filter that produced them.
type LocationSet struct {
	Locations        []Location
	SearchExpression string
	CountryCode      string
}

// Len returns the number of locations in the set.
func (s *LocationSet) Len() int {
	return len(s.Locations)
}

// UnitValue is a measurement with its unit, as AccuWeather reports values.
type UnitValue struct {
	Value    float64 `json:"Value"`
	Unit     string  `json:"Unit"`
	UnitType int     `json:"UnitType"`
}

// DualUnitValue carries a measurement in both metric and imperial units.
type DualUnitValue struct {
	Metric   UnitValue `json:"Metric"`
	Imperial UnitValue `json:"Imperial"`
}

// Observation is one current-conditions record. Detail fields beyond the
// core set are only populated when the request asked for details.
type Observation struct {
	LocalObservationDateTime string        `json:"LocalObservationDateTime"`
	EpochTime                int64         `json:"EpochTime"`
	WeatherText              string        `json:"WeatherText"`
	WeatherIcon              int           `json:"WeatherIcon"`
	HasPrecipitation         bool          `json:"HasPrecipitation"`
	PrecipitationType        string        `json:"PrecipitationType"`
	IsDayTime                bool          `json:"IsDayTime"`
	Temperature              DualUnitValue `json:"Temperature"`
	RealFeelTemperature      DualUnitValue `json:"RealFeelTemperature"`
	RelativeHumidity         float64       `json:"RelativeHumidity"`
	UVIndex                  int           `json:"UVIndex"`
	UVIndexText              string        `json:"UVIndexText"`
	CloudCover               float64       `json:"CloudCover"`
}

// CurrentObs is a snapshot of current conditions for one location. The
// historical horizons return several observations, newest first.
type CurrentObs struct {
	Observations []Observation
}

func (o *CurrentObs) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(data, &o.Observations)
	}

	var single Observation
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	o.Observations = []Observation{single}
	return nil
}

// Latest returns the most recent observation.
func (o *CurrentObs) Latest() (*Observation, error) {
	if len(o.Observations) == 0 {
		return nil, errors.NewNoResultsError("current conditions")
	}
	return &o.Observations[0], nil
}

// HourlyForecast is a single forecast hour.
type HourlyForecast struct {
	DateTime                 string    `json:"DateTime"`
	EpochDateTime            int64     `json:"EpochDateTime"`
	WeatherIcon              int       `json:"WeatherIcon"`
	IconPhrase               string    `json:"IconPhrase"`
	HasPrecipitation         bool      `json:"HasPrecipitation"`
	IsDaylight               bool      `json:"IsDaylight"`
	Temperature              UnitValue `json:"Temperature"`
	PrecipitationProbability float64   `json:"PrecipitationProbability"`
}

// HourlyForecasts is the ordered result of an hourly forecast operation,
// one entry per hour.
type HourlyForecasts struct {
	Hours []HourlyForecast
}

func (f *HourlyForecasts) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &f.Hours)
}

// Headline is the summary AccuWeather attaches to daily forecast responses.
type Headline struct {
	EffectiveDate      string `json:"EffectiveDate"`
	EffectiveEpochDate int64  `json:"EffectiveEpochDate"`
	Severity           int    `json:"Severity"`
	Text               string `json:"Text"`
	Category           string `json:"Category"`
	EndDate            string `json:"EndDate"`
}

// DayPart holds the day or night half of a daily forecast entry.
type DayPart struct {
	Icon                     int     `json:"Icon"`
	IconPhrase               string  `json:"IconPhrase"`
	HasPrecipitation         bool    `json:"HasPrecipitation"`
	PrecipitationType        string  `json:"PrecipitationType"`
	PrecipitationIntensity   string  `json:"PrecipitationIntensity"`
	PrecipitationProbability float64 `json:"PrecipitationProbability"`
}

// TemperatureRange is the min/max span of a forecast day.
type TemperatureRange struct {
	Minimum UnitValue `json:"Minimum"`
	Maximum UnitValue `json:"Maximum"`
}

// DailyForecast is a single forecast day.
type DailyForecast struct {
	Date        string           `json:"Date"`
	EpochDate   int64            `json:"EpochDate"`
	Temperature TemperatureRange `json:"Temperature"`
	Day         DayPart          `json:"Day"`
	Night       DayPart          `json:"Night"`
}

// DailyForecasts is the ordered result of a daily forecast operation.
type DailyForecasts struct {
	Headline Headline        `json:"Headline"`
	Days     []DailyForecast `json:"DailyForecasts"`
}

// Forecast is the result of a forecast request: exactly one of Hourly or
// Daily is set, depending on the requested horizon's unit.
type Forecast struct {
	Hourly *HourlyForecasts
	Daily  *DailyForecasts
}

// IsHourly reports whether the forecast holds hourly entries.
func (f *Forecast) IsHourly() bool {
	return f.Hourly != nil
}

// IsDaily reports whether the forecast holds daily entries.
func (f *Forecast) IsDaily() bool {
	return f.Daily != nil
}

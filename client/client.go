// Package client implements the Connection façade over the AccuWeather API.
package client

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"accuweather.app/config"
	"accuweather.app/endpoints"
	apperrors "accuweather.app/errors"
	"accuweather.app/metrics"
	"accuweather.app/models"
)

var validate = validator.New()

// Connection represents a connection to the AccuWeather API. It holds the
// credential and variant configuration and exposes one method per logical
// API operation. Each method validates its inputs before any network call.
//
// A Connection is safe for concurrent requests, but WipeAPIKey mutates the
// stored credential without locking: do not call it concurrently with
// in-flight requests.
type Connection struct {
	apiKey  string
	variant endpoints.Variant
	router  *endpoints.Router
	client  *resty.Client
	metrics *metrics.RequestMetrics
}

// New creates a Connection from the given configuration.
//
// The ACCUWEATHER_APIKEY environment variable, when set, always takes
// precedence over cfg.APIKey and is accepted without validation. An explicit
// key must be exactly 32 characters; anything else fails with
// MalformattedAPIKeyError. An unrecognized variant silently resolves to the
// developer default rather than failing.
func New(cfg *config.Config) (*Connection, error) {
	if cfg == nil {
		return nil, apperrors.NewConfigurationError("config must not be nil", nil)
	}

	apiKey := cfg.APIKey
	if envKey := os.Getenv(config.APIKeyEnvVar); envKey != "" {
		apiKey = envKey
	} else if err := validate.Var(apiKey, "len=32"); err != nil {
		return nil, apperrors.NewMalformattedAPIKeyError()
	}

	variant := endpoints.ResolveVariant(cfg.Variant)
	router := endpoints.NewRouter(variant)
	if cfg.BaseURL != "" {
		router = endpoints.NewRouterWithRoot(cfg.BaseURL)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}

	httpClient := resty.New().
		SetTimeout(time.Duration(timeout) * time.Second).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(shouldRetry)

	return &Connection{
		apiKey:  apiKey,
		variant: variant,
		router:  router,
		client:  httpClient,
		metrics: metrics.NewRequestMetrics(),
	}, nil
}

// shouldRetry allows retries for transport failures and 5xx responses only.
// 4xx responses, including 403, are never retried.
func shouldRetry(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	return r.StatusCode() >= http.StatusInternalServerError
}

func (c *Connection) String() string {
	return fmt.Sprintf("AccuWeather connection to %s", c.router.Root())
}

// Variant returns the resolved API variant this Connection targets.
func (c *Connection) Variant() endpoints.Variant {
	return c.variant
}

// Stats returns a snapshot of request counters for this Connection.
func (c *Connection) Stats() map[string]interface{} {
	return c.metrics.GetStats()
}

// WipeAPIKey clears the stored API key in place. Requests made afterwards
// carry an empty apikey parameter and will be rejected upstream; the key is
// not re-validated and the Connection cannot be re-armed.
func (c *Connection) WipeAPIKey() {
	c.apiKey = ""
}

// LocationByGeoposition resolves a location from coordinates. Latitude must
// be within [-90, 90] and longitude within [-180, 180]; out-of-bounds values
// fail with RangeError before any network call.
func (c *Connection) LocationByGeoposition(lat, lon float64) (*models.Location, error) {
	if err := validate.Var(lat, "gte=-90,lte=90"); err != nil {
		return nil, apperrors.NewRangeError(lat, lon)
	}
	if err := validate.Var(lon, "gte=-180,lte=180"); err != nil {
		return nil, apperrors.NewRangeError(lat, lon)
	}

	position := fmt.Sprintf("%.4f,%.4f", lat, lon)
	raw, err := c.handleRequest(endpoints.OpLocGeoposition, nil, map[string]string{"q": position})
	if err != nil {
		return nil, err
	}

	return decodeSingleLocation(raw, position)
}

// SearchLocations resolves a free-text search expression to a LocationSet.
// A non-empty countryCode limits the search to that country and must be
// exactly 2 characters. Zero matches fail with NoResultsError.
func (c *Connection) SearchLocations(searchString, countryCode string) (*models.LocationSet, error) {
	op := endpoints.OpLocSearch
	args := endpoints.Args{}

	if countryCode != "" {
		if err := validate.Var(countryCode, "len=2"); err != nil {
			return nil, apperrors.NewInvalidCountryCodeError(countryCode)
		}
		op = endpoints.OpLocSearchCountry
		args["country_code"] = countryCode
	}

	raw, err := c.handleRequest(op, args, map[string]string{"q": searchString})
	if err != nil {
		return nil, err
	}

	var result models.LocationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, apperrors.NewTransportError("failed to decode search response", err)
	}
	if len(result.Locations) == 0 {
		return nil, apperrors.NewNoResultsError(searchString)
	}

	return &models.LocationSet{
		Locations:        result.Locations,
		SearchExpression: searchString,
		CountryCode:      countryCode,
	}, nil
}

// LocationByPostcode resolves a location from a postcode. Only supported by
// the API in selected countries (US, Canada).
func (c *Connection) LocationByPostcode(countryCode, postcode string) (*models.Location, error) {
	if err := validate.Var(countryCode, "len=2"); err != nil {
		return nil, apperrors.NewInvalidCountryCodeError(countryCode)
	}

	raw, err := c.handleRequest(endpoints.OpLocPostcode,
		endpoints.Args{"country_code": countryCode},
		map[string]string{"q": postcode})
	if err != nil {
		return nil, err
	}

	return decodeSingleLocation(raw, postcode)
}

// LocationByIP resolves a location from an IP address.
func (c *Connection) LocationByIP(ipAddress string) (*models.Location, error) {
	if ipAddress == "" {
		return nil, apperrors.NewValidationError("ip address cannot be empty")
	}

	raw, err := c.handleRequest(endpoints.OpLocIPAddress, nil, map[string]string{"q": ipAddress})
	if err != nil {
		return nil, err
	}

	return decodeSingleLocation(raw, ipAddress)
}

// LocationByKey resolves a location from an AccuWeather location key.
func (c *Connection) LocationByKey(locationKey string) (*models.Location, error) {
	if locationKey == "" {
		return nil, apperrors.NewValidationError("location key cannot be empty")
	}

	raw, err := c.handleRequest(endpoints.OpLocKey, endpoints.Args{"location_key": locationKey}, nil)
	if err != nil {
		return nil, err
	}

	return decodeSingleLocation(raw, locationKey)
}

// CurrentConditions fetches current weather conditions for a location key.
// The horizon selects the observation window: 0 for the latest observation,
// 6 or 24 for the historical windows. Any other horizon fails validation
// before any network call.
func (c *Connection) CurrentConditions(locationKey string, horizon int, details bool) (*models.CurrentObs, error) {
	if locationKey == "" {
		return nil, apperrors.NewValidationError("location key cannot be empty")
	}

	var op endpoints.Operation
	switch horizon {
	case 0:
		op = endpoints.OpCurrentConditions
	case 6:
		op = endpoints.OpCurrentConditions6
	case 24:
		op = endpoints.OpCurrentConditions24
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("current conditions horizon must be 0, 6 or 24, got %d", horizon))
	}

	raw, err := c.handleRequest(op,
		endpoints.Args{"location_key": locationKey},
		map[string]string{"details": strconv.FormatBool(details)})
	if err != nil {
		return nil, err
	}

	var obs models.CurrentObs
	if err := json.Unmarshal(raw, &obs); err != nil {
		return nil, apperrors.NewTransportError("failed to decode current conditions response", err)
	}

	return &obs, nil
}

// CurrentConditionsAt is CurrentConditions for a resolved Location.
func (c *Connection) CurrentConditionsAt(location *models.Location, horizon int, details bool) (*models.CurrentObs, error) {
	if location == nil {
		return nil, apperrors.NewValidationError("location cannot be nil")
	}
	return c.CurrentConditions(location.Key, horizon, details)
}

// GetForecast fetches a forecast for a location key. The forecastType token
// names the horizon: "1h" through "240h" yield an hourly forecast, "1d"
// through "45d" a daily one; the Forecast result has exactly one side set.
func (c *Connection) GetForecast(forecastType, locationKey string, details, metric bool) (*models.Forecast, error) {
	op, ok := endpoints.ForecastOperation(forecastType)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unsupported forecast type %q", forecastType))
	}
	if locationKey == "" {
		return nil, apperrors.NewValidationError("location key cannot be empty")
	}

	raw, err := c.handleRequest(op,
		endpoints.Args{"location_key": locationKey},
		map[string]string{
			"details": strconv.FormatBool(details),
			"metric":  strconv.FormatBool(metric),
		})
	if err != nil {
		return nil, err
	}

	if forecastType[len(forecastType)-1] == 'h' {
		var hourly models.HourlyForecasts
		if err := json.Unmarshal(raw, &hourly); err != nil {
			return nil, apperrors.NewTransportError("failed to decode hourly forecast response", err)
		}
		return &models.Forecast{Hourly: &hourly}, nil
	}

	var daily models.DailyForecasts
	if err := json.Unmarshal(raw, &daily); err != nil {
		return nil, apperrors.NewTransportError("failed to decode daily forecast response", err)
	}
	return &models.Forecast{Daily: &daily}, nil
}

// AirQuality fetches air quality observations for a location key: current
// ones when current is true, yesterday's otherwise. Returns the raw decoded
// JSON; the air quality endpoints are not object-modeled.
func (c *Connection) AirQuality(locationKey string, current bool) (json.RawMessage, error) {
	if locationKey == "" {
		return nil, apperrors.NewValidationError("location key cannot be empty")
	}

	op := endpoints.OpAirQualityYesterday
	if current {
		op = endpoints.OpAirQualityCurrent
	}

	return c.handleRequest(op, endpoints.Args{"location_key": locationKey}, nil)
}

// Actuals fetches observed climatology values. An empty endDate requests a
// single day; otherwise the start/end range. Dates are YYYY-MM-DD strings.
// Returns raw decoded JSON.
func (c *Connection) Actuals(locationKey, startDate, endDate string) (json.RawMessage, error) {
	return c.climo(endpoints.OpClimoActualsDate, endpoints.OpClimoActualsRange, locationKey, startDate, endDate)
}

// Records fetches record climatology values; same date semantics as Actuals.
func (c *Connection) Records(locationKey, startDate, endDate string) (json.RawMessage, error) {
	return c.climo(endpoints.OpClimoRecordsDate, endpoints.OpClimoRecordsRange, locationKey, startDate, endDate)
}

// Normals fetches normal climatology values; same date semantics as Actuals.
func (c *Connection) Normals(locationKey, startDate, endDate string) (json.RawMessage, error) {
	return c.climo(endpoints.OpClimoNormalsDate, endpoints.OpClimoNormalsRange, locationKey, startDate, endDate)
}

func (c *Connection) climo(dateOp, rangeOp endpoints.Operation, locationKey, startDate, endDate string) (json.RawMessage, error) {
	if locationKey == "" {
		return nil, apperrors.NewValidationError("location key cannot be empty")
	}
	if startDate == "" {
		return nil, apperrors.NewValidationError("start date cannot be empty")
	}

	if endDate == "" {
		return c.handleRequest(dateOp, endpoints.Args{
			"location_key": locationKey,
			"date":         startDate,
		}, nil)
	}

	return c.handleRequest(rangeOp,
		endpoints.Args{"location_key": locationKey},
		map[string]string{"start": startDate, "end": endDate})
}

// MonthSummary fetches the climatology summary for one calendar month.
// Returns raw decoded JSON.
func (c *Connection) MonthSummary(locationKey string, year, month int) (json.RawMessage, error) {
	if locationKey == "" {
		return nil, apperrors.NewValidationError("location key cannot be empty")
	}
	if year < 1 {
		return nil, apperrors.NewValidationError("year must be positive")
	}
	if err := validate.Var(month, "gte=1,lte=12"); err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("month must be between 1 and 12, got %d", month))
	}

	return c.handleRequest(endpoints.OpClimoMonthSummary, endpoints.Args{
		"location_key": locationKey,
		"year":         strconv.Itoa(year),
		"month":        strconv.Itoa(month),
	}, nil)
}

// Alerts fetches weather alerts over a forecast range, which must be one of
// 1, 5, 10, 15 or 25 days. Returns raw decoded JSON.
func (c *Connection) Alerts(locationKey string, forecastRange int) (json.RawMessage, error) {
	if locationKey == "" {
		return nil, apperrors.NewValidationError("location key cannot be empty")
	}

	op, ok := endpoints.AlarmOperation(forecastRange)
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("alert forecast range must be one of 1, 5, 10, 15 or 25 days, got %d", forecastRange))
	}

	return c.handleRequest(op, endpoints.Args{"location_key": locationKey}, nil)
}

// MinuteCast fetches minute-by-minute precipitation forecasts for a
// coordinate pair. Returns raw decoded JSON.
func (c *Connection) MinuteCast(lat, lon float64) (json.RawMessage, error) {
	if err := validate.Var(lat, "gte=-90,lte=90"); err != nil {
		return nil, apperrors.NewRangeError(lat, lon)
	}
	if err := validate.Var(lon, "gte=-180,lte=180"); err != nil {
		return nil, apperrors.NewRangeError(lat, lon)
	}

	position := fmt.Sprintf("%.4f,%.4f", lat, lon)
	return c.handleRequest(endpoints.OpMinuteCast, nil, map[string]string{"q": position})
}

// handleRequest resolves the URL for op, merges the API key into the query
// parameters, issues one GET and decodes the body as JSON. HTTP 403 maps to
// UnauthorisedError, other non-2xx statuses to APIError, transport and
// decode failures to TransportError.
func (c *Connection) handleRequest(op endpoints.Operation, args endpoints.Args, query map[string]string) (json.RawMessage, error) {
	url, err := c.router.Resolve(op, args)
	if err != nil {
		return nil, err
	}

	if query == nil {
		query = map[string]string{}
	}
	query["apikey"] = c.apiKey

	requestID := uuid.NewString()
	slog.Debug("accuweather request",
		"request_id", requestID,
		"operation", string(op),
		"url", url)

	start := time.Now()
	resp, err := c.client.R().
		SetHeader("X-Request-ID", requestID).
		SetQueryParams(query).
		Get(url)
	elapsed := time.Since(start)

	if err != nil {
		c.metrics.RecordFailure(string(op), string(apperrors.TransportError), elapsed.Seconds())
		return nil, apperrors.NewTransportError("request failed", err)
	}

	if resp.StatusCode() == http.StatusForbidden {
		c.metrics.RecordFailure(string(op), string(apperrors.UnauthorisedError), elapsed.Seconds())
		return nil, apperrors.NewUnauthorisedError()
	}

	if !resp.IsSuccess() {
		c.metrics.RecordFailure(string(op), string(apperrors.APIError), elapsed.Seconds())
		return nil, apperrors.NewAPIError(fmt.Sprintf("API returned status %d: %s", resp.StatusCode(), resp.Body()))
	}

	var raw json.RawMessage
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		c.metrics.RecordFailure(string(op), string(apperrors.TransportError), elapsed.Seconds())
		return nil, apperrors.NewTransportError("failed to decode response body", err)
	}

	c.metrics.RecordSuccess(string(op), elapsed.Seconds())
	slog.Debug("accuweather response",
		"request_id", requestID,
		"operation", string(op),
		"status", resp.StatusCode(),
		"duration_ms", elapsed.Milliseconds())

	return raw, nil
}

func decodeSingleLocation(raw json.RawMessage, searchExpression string) (*models.Location, error) {
	var result models.LocationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, apperrors.NewTransportError("failed to decode location response", err)
	}
	if len(result.Locations) == 0 {
		return nil, apperrors.NewNoResultsError(searchExpression)
	}
	return &result.Locations[0], nil
}

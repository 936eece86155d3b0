// Package endpoints maps logical AccuWeather operations to request URLs.
package endpoints

import (
	"fmt"
	"strings"

	"accuweather.app/errors"
)

// Operation identifies one logical API operation, distinct from the HTTP
// path it resolves to.
type Operation string

// Location resolution
const (
	OpLocGeoposition   Operation = "loc_geoposition"
	OpLocIPAddress     Operation = "loc_ip_address"
	OpLocSearch        Operation = "loc_search"
	OpLocSearchCountry Operation = "loc_search_country"
	OpLocPostcode      Operation = "loc_postcode"
	OpLocKey           Operation = "loc_lkey"
)

// Current conditions and forecasts
const (
	OpCurrentConditions   Operation = "currentconditions"
	OpCurrentConditions6  Operation = "currentconditions_6"
	OpCurrentConditions24 Operation = "currentconditions_24"
	OpMinuteCast          Operation = "minutecast_latlon"
	OpForecast1H          Operation = "forecast_1h"
	OpForecast12H         Operation = "forecast_12h"
	OpForecast24H         Operation = "forecast_24h"
	OpForecast72H         Operation = "forecast_72h"
	OpForecast120H        Operation = "forecast_120h"
	OpForecast240H        Operation = "forecast_240h"
	OpForecast1D          Operation = "forecast_1d"
	OpForecast5D          Operation = "forecast_5d"
	OpForecast10D         Operation = "forecast_10d"
	OpForecast15D         Operation = "forecast_15d"
	OpForecast25D         Operation = "forecast_25d"
	OpForecast45D         Operation = "forecast_45d"
)

// Air quality, climatology and alerts
const (
	OpAirQualityCurrent   Operation = "airquality_current"
	OpAirQualityYesterday Operation = "airquality_yesterday"
	OpClimoActualsDate    Operation = "climo_actuals_date"
	OpClimoActualsRange   Operation = "climo_actuals_range"
	OpClimoRecordsDate    Operation = "climo_records_date"
	OpClimoRecordsRange   Operation = "climo_records_range"
	OpClimoNormalsDate    Operation = "climo_normals_date"
	OpClimoNormalsRange   Operation = "climo_normals_range"
	OpClimoMonthSummary   Operation = "climo_month_summary"
	OpAlarms1D            Operation = "alarms_1d"
	OpAlarms5D            Operation = "alarms_5d"
	OpAlarms10D           Operation = "alarms_10d"
	OpAlarms15D           Operation = "alarms_15d"
	OpAlarms25D           Operation = "alarms_25d"
)

// Variant selects which AccuWeather deployment a Connection targets.
type Variant string

const (
	// VariantEnterprise is the enterprise production host (api.accuweather.com).
	VariantEnterprise Variant = "api"
	// VariantEnterpriseDev is the enterprise development host (apidev.accuweather.com).
	VariantEnterpriseDev Variant = "apidev"
	// VariantDeveloperPortal is the developer portal host (dataservice.accuweather.com).
	VariantDeveloperPortal Variant = "dataservice"
)

// DefaultVariant is used whenever a variant string is not recognized.
const DefaultVariant = VariantEnterpriseDev

// ResolveVariant maps a variant string to a known Variant. Unrecognized
// input resolves to DefaultVariant rather than failing; callers that need
// strictness must check the input themselves.
func ResolveVariant(s string) Variant {
	switch Variant(s) {
	case VariantEnterprise, VariantEnterpriseDev, VariantDeveloperPortal:
		return Variant(s)
	default:
		return DefaultVariant
	}
}

// Args holds the named values substituted into a path template.
type Args map[string]string

// All paths are pinned to API version v1; AccuWeather has never shipped
// another version of these endpoints.
var templates = map[Operation]string{
	OpLocGeoposition:   "locations/v1/cities/geoposition/search.json",
	OpLocIPAddress:     "locations/v1/cities/ipaddress.json",
	OpLocSearch:        "locations/v1/search.json",
	OpLocSearchCountry: "locations/v1/{country_code}/search.json",
	OpLocPostcode:      "locations/v1/postalcodes/{country_code}/search.json",
	OpLocKey:           "locations/v1/{location_key}.json",

	OpCurrentConditions:   "currentconditions/v1/{location_key}.json",
	OpCurrentConditions6:  "currentconditions/v1/{location_key}/historical.json",
	OpCurrentConditions24: "currentconditions/v1/{location_key}/historical/24.json",

	OpMinuteCast:   "forecasts/v1/minute.json",
	OpForecast1H:   "forecasts/v1/hourly/1hour/{location_key}.json",
	OpForecast12H:  "forecasts/v1/hourly/12hour/{location_key}.json",
	OpForecast24H:  "forecasts/v1/hourly/24hour/{location_key}.json",
	OpForecast72H:  "forecasts/v1/hourly/72hour/{location_key}.json",
	OpForecast120H: "forecasts/v1/hourly/120hour/{location_key}.json",
	OpForecast240H: "forecasts/v1/hourly/240hour/{location_key}.json",
	OpForecast1D:   "forecasts/v1/daily/1day/{location_key}.json",
	OpForecast5D:   "forecasts/v1/daily/5day/{location_key}.json",
	OpForecast10D:  "forecasts/v1/daily/10day/{location_key}.json",
	OpForecast15D:  "forecasts/v1/daily/15day/{location_key}.json",
	OpForecast25D:  "forecasts/v1/daily/25day/{location_key}.json",
	OpForecast45D:  "forecasts/v1/daily/45day/{location_key}.json",

	OpAirQualityCurrent:   "airquality/v1/observations/{location_key}.json",
	OpAirQualityYesterday: "airquality/v1/observations/1day/{location_key}.json",

	OpClimoActualsDate:  "climo/v1/actuals/{date}/{location_key}.json",
	OpClimoActualsRange: "climo/v1/actuals/{location_key}.json",
	OpClimoRecordsDate:  "climo/v1/records/{date}/{location_key}.json",
	OpClimoRecordsRange: "climo/v1/records/{location_key}.json",
	OpClimoNormalsDate:  "climo/v1/normals/{date}/{location_key}.json",
	OpClimoNormalsRange: "climo/v1/normals/{location_key}.json",
	OpClimoMonthSummary: "climo/v1/summary/{year}/{month}/{location_key}.json",

	OpAlarms1D:  "alarms/v1/1day/{location_key}",
	OpAlarms5D:  "alarms/v1/5day/{location_key}",
	OpAlarms10D: "alarms/v1/10day/{location_key}",
	OpAlarms15D: "alarms/v1/15day/{location_key}",
	OpAlarms25D: "alarms/v1/25day/{location_key}",
}

var forecastOps = map[string]Operation{
	"1h":   OpForecast1H,
	"12h":  OpForecast12H,
	"24h":  OpForecast24H,
	"72h":  OpForecast72H,
	"120h": OpForecast120H,
	"240h": OpForecast240H,
	"1d":   OpForecast1D,
	"5d":   OpForecast5D,
	"10d":  OpForecast10D,
	"15d":  OpForecast15D,
	"25d":  OpForecast25D,
	"45d":  OpForecast45D,
}

var alarmOps = map[int]Operation{
	1:  OpAlarms1D,
	5:  OpAlarms5D,
	10: OpAlarms10D,
	15: OpAlarms15D,
	25: OpAlarms25D,
}

// ForecastOperation maps a horizon token such as "24h" or "10d" to its
// operation. The second return value is false for unknown tokens.
func ForecastOperation(forecastType string) (Operation, bool) {
	op, ok := forecastOps[forecastType]
	return op, ok
}

// AlarmOperation maps an alert forecast range in days to its operation.
func AlarmOperation(forecastRange int) (Operation, bool) {
	op, ok := alarmOps[forecastRange]
	return op, ok
}

// Router builds request URLs against one API root.
type Router struct {
	root string
}

// NewRouter creates a Router for the given API variant.
func NewRouter(variant Variant) *Router {
	return &Router{root: fmt.Sprintf("http://%s.accuweather.com", variant)}
}

// NewRouterWithRoot creates a Router against an explicit root URL. Used for
// test servers and proxied deployments.
func NewRouterWithRoot(root string) *Router {
	return &Router{root: strings.TrimSuffix(root, "/")}
}

// Root returns the API root URL this Router targets.
func (r *Router) Root() string {
	return r.root
}

// Resolve looks up the path template for op and substitutes the named args.
// No network access; pure string construction.
func (r *Router) Resolve(op Operation, args Args) (string, error) {
	template, ok := templates[op]
	if !ok {
		return "", errors.NewTemplateNotFoundError(string(op))
	}

	path := template
	for name, value := range args {
		path = strings.ReplaceAll(path, "{"+name+"}", value)
	}

	if open := strings.IndexByte(path, '{'); open >= 0 {
		end := strings.IndexByte(path[open:], '}')
		placeholder := path[open:]
		if end >= 0 {
			placeholder = path[open : open+end+1]
		}
		return "", errors.NewValidationError(fmt.Sprintf("missing template argument %s for operation %s", placeholder, op))
	}

	return r.root + "/" + path, nil
}

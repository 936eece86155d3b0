package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"accuweather.app/client"
	"accuweather.app/config"
)

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it")
	}

	search := flag.String("q", "", "location search expression")
	country := flag.String("country", "", "optional 2-letter country code filter")
	horizon := flag.Int("horizon", 0, "current conditions horizon: 0, 6 or 24")
	flag.Parse()

	if *search == "" {
		fmt.Fprintln(os.Stderr, "usage: wxcli -q <search expression> [-country CC] [-horizon 0|6|24]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	conn, err := client.New(cfg)
	if err != nil {
		slog.Error("Failed to create connection", "error", err)
		os.Exit(1)
	}

	set, err := conn.SearchLocations(*search, *country)
	if err != nil {
		slog.Error("Location search failed", "error", err)
		os.Exit(1)
	}

	location := &set.Locations[0]
	fmt.Printf("%s, %s, %s (key %s)\n",
		location.EnglishName,
		location.AdministrativeArea.EnglishName,
		location.Country.EnglishName,
		location.Key)

	obs, err := conn.CurrentConditionsAt(location, *horizon, true)
	if err != nil {
		slog.Error("Current conditions lookup failed", "error", err)
		os.Exit(1)
	}

	latest, err := obs.Latest()
	if err != nil {
		slog.Error("No observations returned", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s, %.1f°%s, humidity %.0f%%\n",
		latest.WeatherText,
		latest.Temperature.Metric.Value,
		latest.Temperature.Metric.Unit,
		latest.RelativeHumidity)
}

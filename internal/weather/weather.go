// Package weather provides a simulated weather data source.
//
// There is no upstream provider; readings are generated pseudo-randomly
// from a seed built out of the city name and the date, so repeated
// requests for the same city and day always agree while different cities
// and days differ.
package weather

import (
	"math/rand"
	"strings"
	"time"
)

// Cities supported by the simulated provider.
var Cities = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia",
	"San Antonio", "San Diego", "Dallas", "San Jose", "Austin", "Jacksonville",
	"San Francisco", "Columbus", "Indianapolis", "Seattle", "Denver", "Boston",
}

// Conditions the simulation can report.
var Conditions = []string{
	"Clear", "Partly Cloudy", "Cloudy", "Overcast",
	"Light Rain", "Rain", "Heavy Rain", "Thunderstorm",
	"Light Snow", "Snow", "Heavy Snow", "Fog", "Mist",
}

// Report is one simulated weather reading.
type Report struct {
	City          string  `json:"city"`
	Date          string  `json:"date"`
	Temperature   float64 `json:"temperature"`
	Condition     string  `json:"condition"`
	Humidity      int     `json:"humidity"`
	WindSpeed     float64 `json:"wind_speed"`
	Precipitation int     `json:"precipitation"`
}

// MatchCity resolves user input to a supported city by case-insensitive
// substring match. Returns the canonical city name and whether it matched.
func MatchCity(input string) (string, bool) {
	needle := strings.ToLower(input)
	for _, city := range Cities {
		if strings.Contains(strings.ToLower(city), needle) {
			return city, true
		}
	}
	return "", false
}

// Current returns the simulated weather for a city right now.
func Current(city string, now time.Time) Report {
	return simulate(city, now, false)
}

// Forecast returns one simulated reading per day starting at now.
func Forecast(city string, now time.Time, days int) []Report {
	reports := make([]Report, 0, days)
	for i := 0; i < days; i++ {
		date := now.AddDate(0, 0, i)
		reports = append(reports, simulate(city, date, true))
	}
	return reports
}

// simulate generates a reading for the city on the given date. A current
// reading (seasonal=false) seeds off the city alone so it is stable within
// a day; forecasts fold the date into the seed and use seasonal baselines.
func simulate(city string, date time.Time, seasonal bool) Report {
	seed := int64(0)
	for _, r := range city {
		seed += int64(r)
	}
	if seasonal {
		seed += int64(date.Day()) + int64(date.Month())*100 + int64(date.Year())*10000
	}

	rng := rand.New(rand.NewSource(seed))

	tempBase, tempRange := 20.0, 15.0
	if seasonal {
		switch month := date.Month(); {
		case month >= time.June && month <= time.August:
			tempBase, tempRange = 25, 10
		case month == time.December || month <= time.February:
			tempBase, tempRange = 5, 10
		default:
			tempBase, tempRange = 15, 15
		}
	}

	// Rough climate adjustment per city.
	switch city {
	case "Los Angeles", "San Diego", "Phoenix":
		tempBase += 5
	case "Chicago", "Boston", "Denver":
		tempBase -= 5
	}

	temp := round1(tempBase + (rng.Float64()*2-1)*tempRange)
	condition := Conditions[rng.Intn(len(Conditions))]

	var humidity int
	switch {
	case strings.Contains(condition, "Rain") || strings.Contains(condition, "Snow"):
		humidity = intBetween(rng, 70, 95)
	case strings.Contains(condition, "Clear"):
		humidity = intBetween(rng, 30, 60)
	default:
		humidity = intBetween(rng, 40, 80)
	}

	windSpeed := round1(rng.Float64() * 30)

	wet := strings.Contains(condition, "Rain") || strings.Contains(condition, "Snow")
	var precipitation int
	switch {
	case wet && strings.Contains(condition, "Heavy"):
		precipitation = intBetween(rng, 70, 100)
	case wet:
		precipitation = intBetween(rng, 40, 80)
	case strings.Contains(condition, "Cloudy") || strings.Contains(condition, "Overcast"):
		precipitation = intBetween(rng, 20, 50)
	default:
		precipitation = intBetween(rng, 0, 20)
	}

	return Report{
		City:          city,
		Date:          date.Format("2006-01-02"),
		Temperature:   temp,
		Condition:     condition,
		Humidity:      humidity,
		WindSpeed:     windSpeed,
		Precipitation: precipitation,
	}
}

// intBetween returns a pseudo-random int in [low, high].
func intBetween(rng *rand.Rand, low, high int) int {
	return low + rng.Intn(high-low+1)
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return float64(int(v*10+0.5*sign(v))) / 10
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

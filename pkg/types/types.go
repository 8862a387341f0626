// Package types holds the shared data types of the flight probe: the
// extracted flight record, the fixed route description, the trip date and
// the wait policies that pace browser interactions.
package types

import (
	"fmt"
	"time"
)

// FlightRecord is one flight as scraped from the results page. Every field
// is optional and independently absent; extraction fills whatever it can
// read and leaves the rest empty.
type FlightRecord struct {
	Airline       string `json:"airline,omitempty"`
	FlightNo      string `json:"flight_no,omitempty"`
	Aircraft      string `json:"aircraft,omitempty"`
	DepartTime    string `json:"depart_time,omitempty"`
	ArriveTime    string `json:"arrive_time,omitempty"`
	DepartAirport string `json:"depart_airport,omitempty"`
	ArriveAirport string `json:"arrive_airport,omitempty"`
	Price         string `json:"price,omitempty"`
	OnTimeRate    string `json:"on_time_rate,omitempty"`
}

// HasIdentity reports whether the record carries enough substance to keep:
// a flight number or a price. Structured extraction drops records that
// have neither.
func (r FlightRecord) HasIdentity() bool {
	return r.FlightNo != "" || r.Price != ""
}

// Route describes the fixed one-way city pair being queried.
type Route struct {
	OriginCity      string // display name typed into the departure field
	OriginCode      string // IATA-style city code used in URLs and the report
	DestinationCity string
	DestinationCode string
	Cabin           string // fare-class query flag, e.g. "y_s"
}

// TripDate is the departure date of the query, always computed as the day
// after the current wall-clock date.
type TripDate struct {
	t time.Time
}

// Tomorrow returns the TripDate for the day following now.
func Tomorrow(now time.Time) TripDate {
	return TripDate{t: now.AddDate(0, 0, 1)}
}

// Display returns the date as YYYY-MM-DD for human-readable output.
func (d TripDate) Display() string {
	return d.t.Format("2006-01-02")
}

// Compact returns the date as YYYYMMDD for URL query parameters.
func (d TripDate) Compact() string {
	return d.t.Format("20060102")
}

// WaitPolicy names one readiness wait: optionally wait for a selector to
// appear (up to Timeout), then apply a fixed settle delay. Either half may
// be zero. Policies replace bare sleeps at call sites so pacing can be
// tuned without touching pipeline code.
type WaitPolicy struct {
	Selector    string   `yaml:"selector,omitempty"`
	Timeout     Duration `yaml:"timeout,omitempty"`
	SettleDelay Duration `yaml:"settle_delay,omitempty"`
}

// Duration wraps time.Duration with YAML string parsing ("3s", "500ms").
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

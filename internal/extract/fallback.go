package extract

import (
	"regexp"

	"go.uber.org/zap"

	"github.com/flightscan/flightscan/pkg/types"
)

// maxFallbackRecords caps the synthesized records of the text scan.
const maxFallbackRecords = 10

// Text-scan patterns for the fallback path.
var (
	flightNoPattern = regexp.MustCompile(`\b([A-Z]{2}\d{3,4})\b`)
	timePattern     = regexp.MustCompile(`\b(\d{2}:\d{2})\b`)
	pricePattern    = regexp.MustCompile(`[¥￥]?\s*(\d{3,5})\s*(?:元|起)?`)
)

// FromText scans the visible body text and synthesizes records from
// flight-number, time, and price matches. Flight numbers are de-duplicated
// keeping first-seen order; the i-th unique number is paired with times
// 2i/2i+1 and price i, with short match lists leaving fields empty. The
// pairing is positional and approximate, which is acceptable for a
// last-resort path.
func FromText(text string, logger *zap.Logger) []types.FlightRecord {
	flightNos := uniqueFirstSeen(captures(flightNoPattern, text))
	times := captures(timePattern, text)
	prices := captures(pricePattern, text)

	logger.Info("Text-scan matches",
		zap.Int("flight_numbers", len(flightNos)),
		zap.Int("times", len(times)),
		zap.Int("prices", len(prices)))

	if len(flightNos) > maxFallbackRecords {
		flightNos = flightNos[:maxFallbackRecords]
	}

	records := make([]types.FlightRecord, 0, len(flightNos))
	for i, flightNo := range flightNos {
		rec := types.FlightRecord{FlightNo: flightNo}
		if 2*i < len(times) {
			rec.DepartTime = times[2*i]
		}
		if 2*i+1 < len(times) {
			rec.ArriveTime = times[2*i+1]
		}
		if i < len(prices) {
			rec.Price = prices[i]
		}
		records = append(records, rec)
	}
	return records
}

// captures returns the first capture group of every match in order.
func captures(re *regexp.Regexp, text string) []string {
	matches := re.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// uniqueFirstSeen drops duplicates while preserving first-seen order.
func uniqueFirstSeen(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

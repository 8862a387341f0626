// Package extract turns a rendered results page into FlightRecords. The
// structured path parses flight cards out of an HTML snapshot; when the
// page yields no cards at all, a regex scan over the visible body text
// recovers whatever flight-shaped fragments it can.
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/flightscan/flightscan/pkg/cascade"
	"github.com/flightscan/flightscan/pkg/types"
)

// maxStructuredRecords caps how many cards are read from one page.
const maxStructuredRecords = 20

// CardCascade lists the card-container candidates from most specific to
// most generic. The first selector that matches at least one element wins.
var CardCascade = cascade.FromSelectors(
	`[class*="flight-item"]`,
	`[class*="FlightItem"]`,
	`[class*="list-item"]`,
	`[class*="flight-card"]`,
	`[data-flight]`,
	`.flight-box`,
)

// Per-field selectors inside a card. Class fragments only; the site
// renames classes often but keeps these stems.
const (
	airlineSelector  = `[class*="airline"], [class*="flight-no"], [class*="Airline"]`
	timeSelector     = `[class*="time"], [class*="Time"]`
	airportSelector  = `[class*="airport"], [class*="Airport"]`
	priceSelector    = `[class*="price"], [class*="Price"]`
	aircraftSelector = `[class*="craft"], [class*="plane"], [class*="机型"]`
	rateSelector     = `[class*="rate"], [class*="准点"]`
)

var digitRunPattern = regexp.MustCompile(`\d+`)

// FromHTML parses flight cards out of a rendered HTML snapshot. Records
// missing both flight number and price are dropped; an empty result slice
// means the caller should fall back to the text scan.
func FromHTML(html string, logger *zap.Logger) ([]types.FlightRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var cards *goquery.Selection
	strategy, ok := CardCascade.Resolve(func(s cascade.Strategy) (bool, error) {
		sel := doc.Find(s.Selector)
		if sel.Length() == 0 {
			return false, nil
		}
		cards = sel
		return true, nil
	})
	if !ok {
		logger.Info("No flight card selector matched")
		return nil, nil
	}
	logger.Info("Matched flight cards",
		zap.String("selector", strategy.Selector),
		zap.Int("count", cards.Length()))

	records := make([]types.FlightRecord, 0, maxStructuredRecords)
	cards.EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= maxStructuredRecords {
			return false
		}
		rec := recordFromCard(card)
		if rec.HasIdentity() {
			records = append(records, rec)
		}
		return true
	})
	return records, nil
}

// recordFromCard reads one card. Each field is attempted independently; a
// miss leaves the field empty rather than dropping the record.
func recordFromCard(card *goquery.Selection) types.FlightRecord {
	var rec types.FlightRecord

	if text := firstText(card, airlineSelector); text != "" {
		parts := strings.Fields(text)
		if len(parts) > 0 {
			rec.Airline = parts[0]
		}
		if len(parts) > 1 {
			rec.FlightNo = parts[1]
		}
	}

	if times := allTexts(card, timeSelector); len(times) >= 2 {
		rec.DepartTime = times[0]
		rec.ArriveTime = times[1]
	}

	if airports := allTexts(card, airportSelector); len(airports) >= 2 {
		rec.DepartAirport = airports[0]
		rec.ArriveAirport = airports[1]
	}

	if text := firstText(card, priceSelector); text != "" {
		rec.Price = parsePrice(text)
	}

	rec.Aircraft = firstText(card, aircraftSelector)
	rec.OnTimeRate = firstText(card, rateSelector)
	return rec
}

// parsePrice strips thousands separators and returns the first digit run,
// so "¥1,230 起" becomes "1230".
func parsePrice(text string) string {
	return digitRunPattern.FindString(strings.ReplaceAll(text, ",", ""))
}

// firstText returns the trimmed text of the first element matching
// selector inside card, or "".
func firstText(card *goquery.Selection, selector string) string {
	return strings.TrimSpace(card.Find(selector).First().Text())
}

// allTexts returns the trimmed texts of every element matching selector
// inside card, in document order.
func allTexts(card *goquery.Selection, selector string) []string {
	var texts []string
	card.Find(selector).Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(s.Text()))
	})
	return texts
}

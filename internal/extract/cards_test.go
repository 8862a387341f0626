package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/flightscan/flightscan/pkg/types"
)

func cardHTML(airline, flightNo, dep, arr, depAirport, arrAirport, price string) string {
	return fmt.Sprintf(`<div class="flight-item">
		<span class="airline-name">%s %s</span>
		<span class="depart-time">%s</span>
		<span class="arrive-time">%s</span>
		<span class="depart-airport">%s</span>
		<span class="arrive-airport">%s</span>
		<span class="price">%s</span>
		<span class="craft-type">波音737</span>
		<span class="rate">准点率92%%</span>
	</div>`, airline, flightNo, dep, arr, depAirport, arrAirport, price)
}

func TestFromHTMLThreeCompleteCards(t *testing.T) {
	html := "<html><body>" +
		cardHTML("海南航空", "HU7181", "08:30", "11:45", "美兰T2", "首都T1", "¥1230") +
		cardHTML("中国国航", "CA1352", "09:10", "12:30", "美兰T2", "首都T3", "¥1480起") +
		cardHTML("南方航空", "CZ6754", "13:05", "16:20", "美兰T1", "大兴", "¥980") +
		"</body></html>"

	records, err := FromHTML(html, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, types.FlightRecord{
		Airline:       "海南航空",
		FlightNo:      "HU7181",
		Aircraft:      "波音737",
		DepartTime:    "08:30",
		ArriveTime:    "11:45",
		DepartAirport: "美兰T2",
		ArriveAirport: "首都T1",
		Price:         "1230",
		OnTimeRate:    "准点率92%",
	}, records[0])

	// Source order is preserved.
	assert.Equal(t, "CA1352", records[1].FlightNo)
	assert.Equal(t, "CZ6754", records[2].FlightNo)
}

func TestFromHTMLDropsRecordsWithoutIdentity(t *testing.T) {
	html := `<html><body>
		<div class="flight-item"><span class="depart-time">08:30</span></div>
		<div class="flight-item"><span class="price">¥720</span></div>
	</body></html>`

	records, err := FromHTML(html, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "720", records[0].Price)
}

func TestFromHTMLPartialFieldsKept(t *testing.T) {
	// Only the airline block exists: the record survives on flight number
	// alone with every other field empty.
	html := `<html><body>
		<div class="flight-item"><span class="airline">吉祥航空 HO1252</span></div>
	</body></html>`

	records, err := FromHTML(html, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "吉祥航空", records[0].Airline)
	assert.Equal(t, "HO1252", records[0].FlightNo)
	assert.Empty(t, records[0].DepartTime)
	assert.Empty(t, records[0].Price)
}

func TestFromHTMLCascadeOrder(t *testing.T) {
	// Both a specific and a generic container exist; the specific selector
	// wins and the generic one is never consulted.
	html := `<html><body>
		<div class="flight-item"><span class="airline">HU HU7181</span></div>
		<div class="list-item"><span class="airline">CA CA1352</span></div>
	</body></html>`

	records, err := FromHTML(html, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "HU7181", records[0].FlightNo)
}

func TestFromHTMLCapsAtTwenty(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, `<div class="flight-item"><span class="airline">HU HU%04d</span></div>`, 7000+i)
	}
	b.WriteString("</body></html>")

	records, err := FromHTML(b.String(), zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, records, 20)
	assert.Equal(t, "HU7000", records[0].FlightNo)
	assert.Equal(t, "HU7019", records[19].FlightNo)
}

func TestFromHTMLNoCards(t *testing.T) {
	records, err := FromHTML("<html><body><p>验证中</p></body></html>", zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"¥1,230 起", "1230"},
		{"￥980", "980"},
		{"1480元", "1480"},
		{"12,345起", "12345"},
		{"价格待定", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parsePrice(tt.in), "input %q", tt.in)
	}
}

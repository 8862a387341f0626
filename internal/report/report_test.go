package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/flightscan/flightscan/pkg/types"
)

func testRoute() types.Route {
	return types.Route{
		OriginCity:      "海口",
		OriginCode:      "HAK",
		DestinationCity: "北京",
		DestinationCode: "BJS",
		Cabin:           "y_s",
	}
}

func testDate() types.TripDate {
	return types.Tomorrow(time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
}

func TestSummaryWithFlights(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	r.Summary(testRoute(), testDate(), []types.FlightRecord{
		{
			Airline:       "海南航空",
			FlightNo:      "HU7181",
			Aircraft:      "波音737",
			DepartTime:    "08:30",
			ArriveTime:    "11:45",
			DepartAirport: "美兰T2",
			ArriveAirport: "首都T1",
			Price:         "1230",
			OnTimeRate:    "92%",
		},
		{FlightNo: "CA1352"},
	})

	out := buf.String()
	assert.Contains(t, out, "海口(HAK) → 北京(BJS)  |  2026-08-29  |  共找到 2 个航班")
	assert.Contains(t, out, "【航班 1】")
	assert.Contains(t, out, "航空公司: 海南航空")
	assert.Contains(t, out, "航班号:   HU7181")
	assert.Contains(t, out, "出发:     08:30  美兰T2")
	assert.Contains(t, out, "价格:     ¥1230")
	assert.Contains(t, out, "准点率:   92%")

	// Absent fields fall back to N/A; airports collapse to nothing.
	assert.Contains(t, out, "【航班 2】")
	assert.Contains(t, out, "航空公司: N/A")
	assert.Contains(t, out, "价格:     ¥N/A")
	assert.Contains(t, out, "出发:     N/A  \n")
	assert.NotContains(t, out, "未能提取到航班信息")
}

func TestSummaryNoFlights(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	r.Summary(testRoute(), testDate(), nil)

	out := buf.String()
	assert.Contains(t, out, "共找到 0 个航班")
	assert.Contains(t, out, "未能提取到航班信息，可能原因:")
	assert.Contains(t, out, "1. 页面结构已变化")
	assert.Contains(t, out, "2. 需要人工验证/登录")
	assert.Contains(t, out, "3. 网络问题")
	assert.Contains(t, out, "💡 建议: 保持浏览器窗口打开")
	assert.NotContains(t, out, "【航班")
}

func TestHoldsAndFailure(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	r.ObserveHold(30 * time.Second)
	r.ErrorHold(60 * time.Second)
	r.ScreenshotSaved("error_screenshot.png")
	r.Done()

	out := buf.String()
	assert.Contains(t, out, "浏览器将在 30 秒后关闭")
	assert.Contains(t, out, "浏览器将保持打开 60 秒供调试")
	assert.Contains(t, out, "已保存错误截图: error_screenshot.png")
	assert.Contains(t, out, "✅ 完成!")
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Banner(testRoute())

	out := buf.String()
	assert.Contains(t, out, "携程网机票查询工具")
	assert.Contains(t, out, "查询明天 海口→北京 的机票")
	assert.Contains(t, out, "注意事项")
}

func TestQueryDate(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).QueryDate(testDate())
	assert.Equal(t, "📅 查询日期: 2026-08-29\n", buf.String())
}

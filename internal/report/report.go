// Package report renders the human-facing console output: progress lines,
// the flight summary, and the failure diagnostics. Output goes to one
// writer, normally stdout, and is kept separate from structured logging.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/flightscan/flightscan/pkg/types"
)

const rule = "================================================================================"

// Reporter writes the progress and result report.
type Reporter struct {
	w io.Writer
}

// New creates a Reporter writing to w.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Banner prints the startup header: tool name, what the run will do for
// the given route, and the usual caveats.
func (r *Reporter) Banner(route types.Route) {
	fmt.Fprintln(r.w, rule)
	fmt.Fprintln(r.w, "🐦 携程网机票查询工具 - 浏览器自动化")
	fmt.Fprintln(r.w, rule)
	fmt.Fprintln(r.w, "\n📋 功能说明:")
	fmt.Fprintln(r.w, "  • 自动打开携程网")
	fmt.Fprintf(r.w, "  • 查询明天 %s→%s 的机票\n", route.OriginCity, route.DestinationCity)
	fmt.Fprintln(r.w, "  • 提取并显示航班信息")
	fmt.Fprintln(r.w, "  • 自动处理弹窗")
	fmt.Fprintln(r.w, "\n⚠️  注意事项:")
	fmt.Fprintln(r.w, "  • 运行需要本机已安装 Chrome/Chromium")
	fmt.Fprintln(r.w, "  • 建议使用 headed 模式观察运行过程")
	fmt.Fprintln(r.w, "  • 携程可能会更新页面结构，需要适时调整选择器")
	fmt.Fprintln(r.w)
}

// QueryDate announces the date being queried.
func (r *Reporter) QueryDate(date types.TripDate) {
	fmt.Fprintf(r.w, "📅 查询日期: %s\n", date.Display())
}

// Step prints one progress line.
func (r *Reporter) Step(line string) {
	fmt.Fprintln(r.w, line)
}

// Summary prints the result block: a numbered flight list, or the
// diagnosis message when nothing was extracted.
func (r *Reporter) Summary(route types.Route, date types.TripDate, records []types.FlightRecord) {
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, rule)
	fmt.Fprintf(r.w, "✈️  %s(%s) → %s(%s)  |  %s  |  共找到 %d 个航班\n",
		route.OriginCity, route.OriginCode,
		route.DestinationCity, route.DestinationCode,
		date.Display(), len(records))
	fmt.Fprintln(r.w, rule)

	if len(records) == 0 {
		r.noFlights()
		return
	}
	for i, rec := range records {
		r.flight(i+1, rec)
	}
}

// flight prints one numbered flight block. Absent fields show as N/A,
// matching the airports exception: those collapse to nothing so the time
// line stays readable.
func (r *Reporter) flight(n int, rec types.FlightRecord) {
	fmt.Fprintf(r.w, "\n【航班 %d】\n", n)
	fmt.Fprintf(r.w, "  航空公司: %s\n", orNA(rec.Airline))
	fmt.Fprintf(r.w, "  航班号:   %s\n", orNA(rec.FlightNo))
	fmt.Fprintf(r.w, "  机型:     %s\n", orNA(rec.Aircraft))
	fmt.Fprintf(r.w, "  出发:     %s  %s\n", orNA(rec.DepartTime), rec.DepartAirport)
	fmt.Fprintf(r.w, "  到达:     %s  %s\n", orNA(rec.ArriveTime), rec.ArriveAirport)
	fmt.Fprintf(r.w, "  价格:     ¥%s\n", orNA(rec.Price))
	fmt.Fprintf(r.w, "  准点率:   %s\n", orNA(rec.OnTimeRate))
}

func (r *Reporter) noFlights() {
	fmt.Fprintln(r.w, "\n⚠️  未能提取到航班信息，可能原因:")
	fmt.Fprintln(r.w, "  1. 页面结构已变化")
	fmt.Fprintln(r.w, "  2. 需要人工验证/登录")
	fmt.Fprintln(r.w, "  3. 网络问题")
	fmt.Fprintln(r.w, "\n💡 建议: 保持浏览器窗口打开，手动观察页面状态")
}

// ObserveHold announces the post-run inspection window.
func (r *Reporter) ObserveHold(d time.Duration) {
	fmt.Fprintf(r.w, "\n⏸️  浏览器将在 %d 秒后关闭，可手动查看...\n", int(d.Seconds()))
}

// Failure prints the top-level error.
func (r *Reporter) Failure(err error) {
	fmt.Fprintf(r.w, "\n❌ 发生错误: %v\n", err)
}

// ScreenshotSaved announces the postmortem screenshot.
func (r *Reporter) ScreenshotSaved(path string) {
	fmt.Fprintf(r.w, "📸 已保存错误截图: %s\n", path)
}

// ErrorHold announces the debugging window after a failure.
func (r *Reporter) ErrorHold(d time.Duration) {
	fmt.Fprintf(r.w, "⏸️  浏览器将保持打开 %d 秒供调试...\n", int(d.Seconds()))
}

// Done prints the closing line after teardown.
func (r *Reporter) Done() {
	fmt.Fprintln(r.w, "\n✅ 完成!")
}

// orNA substitutes N/A for an absent field.
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

package popup

// Pattern describes one known interstitial: elements matched either by a
// CSS selector or by button text containment. Labels are the human names
// used in logs and metrics.
type Pattern struct {
	// Selector matches candidate elements. When Texts is set, candidates
	// are further filtered by text containment.
	Selector string
	// Texts, when non-empty, keeps only candidates whose trimmed text
	// contains at least one entry. Used for buttons that carry no stable
	// class, only a caption.
	Texts []string
	// Label is the human-readable pattern name.
	Label string
}

// DefaultPatterns returns the known interstitials of the target site, in
// dismissal order. Ordering matters only in that earlier patterns are
// attempted first; every pattern always runs.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{
			Selector: `button[class*="close"], [class*="close-btn"], .close, [aria-label="关闭"]`,
			Label:    "关闭按钮",
		},
		{
			Selector: `[class*="modal"] button[class*="close"], [class*="dialog"] [class*="close"]`,
			Label:    "弹窗关闭",
		},
		{
			Selector: `[class*="app-download"] .close, [class*="download"] .close`,
			Label:    "APP下载提示",
		},
		{
			Selector: "button",
			Texts:    []string{"稍后再说", "暂不", "取消"},
			Label:    "稍后提示",
		},
		{
			Selector: "button",
			Texts:    []string{"接受", "同意", "我知道了"},
			Label:    "Cookie提示",
		},
	}
}

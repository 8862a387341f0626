package popup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPatternsOrder(t *testing.T) {
	patterns := DefaultPatterns()
	require.Len(t, patterns, 5)

	labels := make([]string, 0, len(patterns))
	for _, p := range patterns {
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{"关闭按钮", "弹窗关闭", "APP下载提示", "稍后提示", "Cookie提示"}, labels)
}

func TestDefaultPatternsWellFormed(t *testing.T) {
	for _, p := range DefaultPatterns() {
		assert.NotEmpty(t, p.Selector, "pattern %q has empty selector", p.Label)
		assert.NotEmpty(t, p.Label)
		for _, text := range p.Texts {
			assert.NotEmpty(t, text, "pattern %q has empty text filter", p.Label)
		}
	}
}

func TestClickOneExprEmbedsSelector(t *testing.T) {
	expr, err := clickOneExpr(Pattern{
		Selector: `button[class*="close"]`,
		Label:    "close",
	})
	require.NoError(t, err)

	assert.Contains(t, expr, `"button[class*=\"close\"]"`)
	assert.Contains(t, expr, "fsDismissed")
	assert.Contains(t, expr, "getBoundingClientRect")
	// No text filter: the texts array must be empty, not missing.
	assert.Contains(t, expr, "var texts = null;")
}

func TestClickOneExprEmbedsTextFilters(t *testing.T) {
	expr, err := clickOneExpr(Pattern{
		Selector: "button",
		Texts:    []string{"稍后再说", "暂不"},
		Label:    "later",
	})
	require.NoError(t, err)

	assert.Contains(t, expr, `["稍后再说","暂不"]`)
	assert.Contains(t, expr, "indexOf")
}

func TestClickOneExprEscapesQuotes(t *testing.T) {
	expr, err := clickOneExpr(Pattern{
		Selector: `[aria-label="关闭"]`,
		Texts:    []string{`say "no"`},
		Label:    "quoted",
	})
	require.NoError(t, err)

	assert.Contains(t, expr, `"[aria-label=\"关闭\"]"`)
	assert.Contains(t, expr, `say \"no\"`)
	// The raw unescaped selector must not appear outside the quoted form.
	assert.False(t, strings.Contains(expr, "querySelectorAll([aria-label"))
}

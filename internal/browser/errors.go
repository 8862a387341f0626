package browser

import "errors"

// Session errors - returned while driving the page
var (
	ErrWaitTimeout     = errors.New("wait timeout exceeded")
	ErrNavigateFailed  = errors.New("navigation failed")
	ErrNavigateTimeout = errors.New("navigation timed out")
	ErrExtractHTML     = errors.New("HTML extraction failed")
	ErrScreenshot      = errors.New("screenshot capture failed")
)

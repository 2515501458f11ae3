package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"ttlfinger/internal/core/model"
)

var (
	responseOpen  = strings.Repeat("-", 40)
	responseClose = strings.Repeat("-", 55)
)

// TextReporter 逐行输出人类可读的识别结果
//
//	The operating system at 10.0.0.5 is Windows.
//
// verbose 模式附带 TTL 和原始 ping 输出:
//
//	=>The operating system at 10.0.0.8 is Linux. TTL = 64
//	Ping response: ----------------------------------------
//	PING 10.0.0.8 ...
//	-------------------------------------------------------
type TextReporter struct {
	mu      sync.Mutex
	w       io.Writer
	verbose bool
}

func NewTextReporter(w io.Writer, verbose bool) *TextReporter {
	return &TextReporter{w: w, verbose: verbose}
}

func (r *TextReporter) Report(_ context.Context, result *model.OsTTLResult) error {
	if result == nil || result.OS.Suppressed() {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := io.WriteString(r.w, FormatLine(result, r.verbose)+"\n"); err != nil {
		return fmt.Errorf("write result for %s: %w", result.Host, err)
	}
	return nil
}

// FormatLine 格式化单条结果 (不含结尾换行)
func FormatLine(result *model.OsTTLResult, verbose bool) string {
	var b strings.Builder
	if verbose {
		b.WriteString("=>")
	}
	fmt.Fprintf(&b, "The operating system at %s is %s.", result.Host, result.OS)
	if verbose {
		fmt.Fprintf(&b, " TTL = %s\nPing response: %s", result.TTL, responseOpen)
		// Windows ping 输出自带前导 CRLF
		if result.Platform != "windows" {
			b.WriteString("\n")
		}
		b.WriteString(result.Raw)
		b.WriteString(responseClose)
		b.WriteString("\n")
	}
	return b.String()
}

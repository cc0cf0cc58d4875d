package tui

import (
	"fmt"
	"strings"

	"github.com/os2iot/iotconsole/internal/gateway"
)

const barRune = "█"

// RenderBarChart draws one horizontal bar per label, scaled to width cells.
func RenderBarChart(title string, labels []string, s gateway.Series, width int) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(title))
	b.WriteString("\n")

	peak := s.Max()
	for i, label := range labels {
		if i >= len(s.Values) {
			break
		}
		v := s.Values[i]
		n := 0
		if peak > 0 && width > 0 {
			n = v * width / peak
		}
		if v > 0 && n == 0 {
			n = 1
		}
		fmt.Fprintf(&b, "%s %s %d\n", LabelStyle.Render(label), BarStyle.Render(strings.Repeat(barRune, n)), v)
	}
	return strings.TrimRight(b.String(), "\n")
}

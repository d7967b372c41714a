package display

import (
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
)

const bannerRaw = `
  ___  ___  _   _ ___    ___ _  _ ___ ___
 / __|/ _ \| | | / __|  / __| || | __| __|
 \__ \ (_) | |_| \__ \ | (__| __ | _|| _|
 |___/\___/ \___/|___/  \___|_||_|___|_|
`

// RenderBanner returns the banner art horizontally centred for the
// current terminal width.
func RenderBanner() string {
	return renderBanner(termWidth())
}

func renderBanner(width int) string {
	lines := strings.Split(strings.Trim(bannerRaw, "\n"), "\n")

	maxW := 0
	for _, l := range lines {
		if len(l) > maxW {
			maxW = len(l)
		}
	}

	pad := ""
	if width > maxW {
		pad = strings.Repeat(" ", (width-maxW)/2)
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(pad)
		b.WriteString(BannerStyle.Render(l))
		b.WriteByte('\n')
	}
	return b.String()
}

// termWidth returns the current terminal column count, or 80 as fallback.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}

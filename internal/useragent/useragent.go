package useragent

import (
	"errors"
	"strings"

	ua "github.com/mileusna/useragent"
)

var ErrEmptyUserAgent = errors.New("user agent is required")

// Info — что пишем в login_logs: "Chrome 120.0", "Windows 10", "desktop".
type Info struct {
	Browser string
	OS      string
	Device  string
}

// Parse — чистая функция, без user-agent лог входа создать нельзя.
func Parse(raw string) (*Info, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyUserAgent
	}

	parsed := ua.Parse(raw)

	device := "unknown"
	switch {
	case parsed.Bot:
		device = "bot"
	case parsed.Mobile:
		device = "mobile"
	case parsed.Tablet:
		device = "tablet"
	case parsed.Desktop:
		device = "desktop"
	}

	return &Info{
		Browser: joinNameVersion(parsed.Name, parsed.Version),
		OS:      joinNameVersion(parsed.OS, parsed.OSVersion),
		Device:  device,
	}, nil
}

func joinNameVersion(name, version string) string {
	s := strings.TrimSpace(name + " " + version)
	if s == "" {
		return "unknown"
	}
	return s
}

package activity

import (
	"encoding/json"
	"strings"

	"github.com/mssola/useragent"
	"gorm.io/datatypes"
)

// DeviceInfo is the parsed client description stored on transaction rows.
type DeviceInfo struct {
	Browser        string `json:"browser"`
	BrowserVersion string `json:"browserVersion,omitempty"`
	OS             string `json:"os"`
	Platform       string `json:"platform,omitempty"`
	Mobile         bool   `json:"mobile"`
	Bot            bool   `json:"bot"`
	Display        string `json:"display"`
	UserAgent      string `json:"userAgent"`
}

// ParseDevice turns a User-Agent header into DeviceInfo.
func ParseDevice(raw string) DeviceInfo {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DeviceInfo{Browser: "Unknown", OS: "Unknown", Display: "Unknown Device"}
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	info := DeviceInfo{
		Browser:        orUnknown(name),
		BrowserVersion: version,
		OS:             orUnknown(ua.OS()),
		Platform:       ua.Platform(),
		Mobile:         ua.Mobile(),
		Bot:            ua.Bot(),
		UserAgent:      raw,
	}
	info.Display = strings.TrimSpace(info.Browser + " on " + info.OS)
	return info
}

// JSON encodes the device for a datatypes.JSON column.
func (d DeviceInfo) JSON() datatypes.JSON {
	b, err := json.Marshal(d)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

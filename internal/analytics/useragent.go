package analytics

import (
	"regexp"
	"strings"
)

// DeviceClass is the three-way device bucket derived from a user agent.
type DeviceClass string

const (
	DeviceDesktop DeviceClass = "Desktop"
	DeviceTablet  DeviceClass = "Tablet"
	DeviceMobile  DeviceClass = "Mobile"
)

// OSUnknown is stored when no OS rule matches.
const OSUnknown = "Unknown"

var (
	tabletPattern = regexp.MustCompile(`(?i)tablet|ipad|playbook|silk`)
	mobilePattern = regexp.MustCompile(`(?i)mobi|ipod|iphone|kindle|opera mini|blackberry|palm|windows ce|netfront|fennec|hiptop|phone|samsung|htc|lg|motorola|nokia`)
)

// ClassifyDevice buckets a raw user-agent string. Tablet rules run first so
// Android tablets (an "android" token with no later "mobile" token) are not
// misclassified as Mobile; first matching rule wins.
func ClassifyDevice(userAgent string) DeviceClass {
	if tabletPattern.MatchString(userAgent) || androidWithoutMobile(userAgent) {
		return DeviceTablet
	}
	if mobilePattern.MatchString(userAgent) {
		return DeviceMobile
	}
	return DeviceDesktop
}

// androidWithoutMobile reports an "android" token that is not followed
// anywhere later in the string by "mobile".
func androidWithoutMobile(userAgent string) bool {
	ua := strings.ToLower(userAgent)
	i := strings.Index(ua, "android")
	if i < 0 {
		return false
	}
	return !strings.Contains(ua[i:], "mobile")
}

type osRule struct {
	pattern *regexp.Regexp
	label   string
}

// osRules is evaluated in full, in order, and the LAST matching entry wins.
// Later entries are the more specific overrides; do not reorder or
// short-circuit this table.
var osRules = []osRule{
	{regexp.MustCompile(`(?i)windows nt 10`), "Windows 10"},
	{regexp.MustCompile(`(?i)windows nt 6\.3`), "Windows 8.1"},
	{regexp.MustCompile(`(?i)windows nt 6\.2`), "Windows 8"},
	{regexp.MustCompile(`(?i)windows nt 6\.1`), "Windows 7"},
	{regexp.MustCompile(`(?i)windows nt 6\.0`), "Windows Vista"},
	{regexp.MustCompile(`(?i)windows nt 5\.2`), "Windows Server 2003/XP"},
	{regexp.MustCompile(`(?i)windows nt 5\.1`), "Windows XP"},
	{regexp.MustCompile(`(?i)windows xp`), "Windows XP"},
	{regexp.MustCompile(`(?i)windows nt 5\.0`), "Windows 2000"},
	{regexp.MustCompile(`(?i)windows me`), "Windows ME"},
	{regexp.MustCompile(`(?i)win98`), "Windows 98"},
	{regexp.MustCompile(`(?i)win95`), "Windows 95"},
	{regexp.MustCompile(`(?i)win16`), "Windows 3.11"},
	{regexp.MustCompile(`(?i)macintosh|mac os x`), "macOS"},
	{regexp.MustCompile(`(?i)mac_powerpc`), "Mac OS 9"},
	{regexp.MustCompile(`(?i)linux`), "Linux"},
	{regexp.MustCompile(`(?i)ubuntu`), "Ubuntu"},
	{regexp.MustCompile(`(?i)iphone`), "iOS"},
	{regexp.MustCompile(`(?i)ipod`), "iOS"},
	{regexp.MustCompile(`(?i)ipad`), "iOS"},
	{regexp.MustCompile(`(?i)android`), "Android"},
	{regexp.MustCompile(`(?i)blackberry`), "BlackBerry"},
	{regexp.MustCompile(`(?i)webos`), "Mobile"},
}

// ClassifyOS resolves the operating-system label for a raw user agent,
// defaulting to OSUnknown when nothing matches.
func ClassifyOS(userAgent string) string {
	label := OSUnknown
	for _, rule := range osRules {
		if rule.pattern.MatchString(userAgent) {
			label = rule.label
		}
	}
	return label
}

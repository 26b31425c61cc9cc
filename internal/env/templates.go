package env

import (
	"time"

	"github.com/google/uuid"

	"triad/internal/domain"
)

func millis(t time.Time) int64 { return t.UnixMilli() }

// MobileIOS is the template mobile-app environment. It carries no device id;
// the mobile resolver assigns one.
func MobileIOS(now time.Time) domain.Environment {
	return domain.Environment{
		Kind:      domain.KindMobile,
		Platform:  "ios",
		UserAgent: "Mozilla/5.0 (iPhone; CPU iPhone OS 18_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148",
		Language:  "en",
		Headers: map[string]string{
			"X-Requested-With": "com.valvesoftware.steam",
			"Accept-Language":  "en-US,en;q=0.9",
		},
		Meta: domain.EnvMeta{Updated: millis(now)},
	}
}

// WebBrowser is the template desktop-browser environment for userAgent.
func WebBrowser(userAgent string, now time.Time) domain.Environment {
	return domain.Environment{
		Kind:      domain.KindWeb,
		Platform:  "web",
		UserAgent: userAgent,
		Language:  "en",
		Headers: map[string]string{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		},
		Meta: domain.EnvMeta{Updated: millis(now)},
	}
}

// ClientDesktop is the template desktop-client environment. It has no
// per-instance fingerprint.
func ClientDesktop(now time.Time) domain.Environment {
	return domain.Environment{
		Kind:      domain.KindClient,
		Platform:  "macos",
		UserAgent: "Valve/Steam HTTP Client 1.0",
		Language:  "english",
		Meta:      domain.EnvMeta{Updated: millis(now)},
	}
}

// RandomDeviceID returns a new random mobile device identifier.
func RandomDeviceID() string {
	return "ios:" + uuid.NewString()
}

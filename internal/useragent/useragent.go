// Package useragent generates realistic desktop browser identities: a
// user-agent string plus the screen and viewport it would report.
package useragent

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Agent is one generated desktop browser identity.
type Agent struct {
	UserAgent      string
	Platform       string
	ScreenWidth    int
	ScreenHeight   int
	ViewportWidth  int
	ViewportHeight int
}

// String returns the user-agent header value.
func (a Agent) String() string { return a.UserAgent }

// Source produces desktop agents.
type Source interface {
	Desktop() Agent
}

type template struct {
	ua       string
	platform string
	weight   int
}

// Browser versions observed on desktop traffic; weights are relative shares.
var templates = []template{
	{ua: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36", platform: "Win32", weight: 34},
	{ua: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/139.0.0.0 Safari/537.36", platform: "Win32", weight: 14},
	{ua: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36 Edg/140.0.0.0", platform: "Win32", weight: 10},
	{ua: "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:143.0) Gecko/20100101 Firefox/143.0", platform: "Win32", weight: 7},
	{ua: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36", platform: "MacIntel", weight: 12},
	{ua: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.6 Safari/605.1.15", platform: "MacIntel", weight: 8},
	{ua: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:143.0) Gecko/20100101 Firefox/143.0", platform: "MacIntel", weight: 3},
	{ua: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36", platform: "Linux x86_64", weight: 8},
	{ua: "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:143.0) Gecko/20100101 Firefox/143.0", platform: "Linux x86_64", weight: 4},
}

type screen struct {
	w, h   int
	weight int
}

var screens = []screen{
	{w: 1920, h: 1080, weight: 40},
	{w: 2560, h: 1440, weight: 14},
	{w: 1536, h: 864, weight: 12},
	{w: 1366, h: 768, weight: 10},
	{w: 1440, h: 900, weight: 8},
	{w: 1680, h: 1050, weight: 6},
	{w: 1280, h: 720, weight: 5},
	{w: 3840, h: 2160, weight: 5},
}

// Random picks weighted templates and screens and derives a plausible
// viewport by subtracting browser chrome.
type Random struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRandom returns a Random seeded with seed; a zero seed uses the clock.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Desktop returns a new desktop agent.
func (r *Random) Desktop() Agent {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := pick(r.rnd, templates, func(t template) int { return t.weight })
	s := pick(r.rnd, screens, func(s screen) int { return s.weight })

	// Scrollbar/borders on width; tabs, toolbar and taskbar on height.
	vw := s.w - r.rnd.IntN(18)
	vh := s.h - 110 - r.rnd.IntN(60)

	return Agent{
		UserAgent:      t.ua,
		Platform:       t.platform,
		ScreenWidth:    s.w,
		ScreenHeight:   s.h,
		ViewportWidth:  vw,
		ViewportHeight: vh,
	}
}

func pick[T any](rnd *rand.Rand, items []T, weight func(T) int) T {
	total := 0
	for _, it := range items {
		total += weight(it)
	}
	n := rnd.IntN(total)
	for _, it := range items {
		n -= weight(it)
		if n < 0 {
			return it
		}
	}
	return items[len(items)-1]
}

// Fixed always returns the same agent. Useful for tests.
type Fixed Agent

// Desktop returns the fixed agent.
func (f Fixed) Desktop() Agent { return Agent(f) }

var (
	_ Source = (*Random)(nil)
	_ Source = Fixed{}
)

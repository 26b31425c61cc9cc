package env

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"triad/internal/domain"
	"triad/internal/useragent"
)

func testGenerator(now time.Time) *Generator {
	n := 0
	return &Generator{
		Now: func() time.Time { return now },
		NewDeviceID: func() string {
			n++
			return "device-" + string(rune('0'+n))
		},
		Agents: useragent.Fixed{UserAgent: "Mozilla/5.0 test", ViewportWidth: 1903, ViewportHeight: 969},
	}
}

func TestMobile_RegeneratesStale(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_000)
	g := testGenerator(now)

	for _, old := range []domain.Environment{
		{},
		{Platform: "android", Meta: domain.EnvMeta{DeviceID: "kept?"}},
	} {
		got := g.Mobile()(old)
		if !Fresh(domain.KindMobile, got) {
			t.Fatalf("not fresh: %+v", got)
		}
		if got.Meta.Updated < now.UnixMilli() {
			t.Fatalf("updated=%d before now", got.Meta.Updated)
		}
		if got.Platform != "ios" {
			t.Fatalf("expected ios template, got %q", got.Platform)
		}
		if got.Meta.DeviceID == "" || got.Meta.DeviceID == "kept?" {
			t.Fatalf("deviceid=%q", got.Meta.DeviceID)
		}
	}
}

func TestMobile_FreshRecordUnchanged(t *testing.T) {
	g := testGenerator(time.Now())
	old := domain.Environment{
		Platform:  "android",
		UserAgent: "custom",
		Headers:   map[string]string{"X": "1"},
		Meta:      domain.EnvMeta{Updated: 123, DeviceID: "android:abc"},
	}
	got := g.Mobile()(old)
	if !reflect.DeepEqual(got, old) {
		t.Fatalf("got=%+v want=%+v", got, old)
	}
}

func TestMobile_DeviceIDBackfillPreservesFields(t *testing.T) {
	now := time.UnixMilli(1_800_000_000_000)
	g := testGenerator(now)
	old := domain.Environment{
		Platform:  "android",
		UserAgent: "custom",
		Headers:   map[string]string{"X": "1"},
		Meta:      domain.EnvMeta{Updated: 5},
	}

	got := g.Mobile()(old)
	if got.Meta.DeviceID != "device-1" {
		t.Fatalf("deviceid=%q", got.Meta.DeviceID)
	}
	if got.Meta.Updated != now.UnixMilli() {
		t.Fatalf("updated=%d want=%d", got.Meta.Updated, now.UnixMilli())
	}
	if got.Platform != "android" || got.UserAgent != "custom" || got.Headers["X"] != "1" {
		t.Fatalf("fields not preserved: %+v", got)
	}
	if old.Meta.DeviceID != "" {
		t.Fatalf("input record mutated")
	}
}

func TestWeb_FreshRecordUnchanged(t *testing.T) {
	g := testGenerator(time.Now())
	old := domain.Environment{
		UserAgent: "kept",
		Meta:      domain.EnvMeta{Updated: 1, Viewport: &domain.Viewport{Width: 10, Height: 20}},
	}
	got := g.Web()(old)
	if !reflect.DeepEqual(got, old) {
		t.Fatalf("got=%+v want=%+v", got, old)
	}
}

func TestWeb_RegeneratesWithoutUpdatedOrViewport(t *testing.T) {
	now := time.UnixMilli(1_750_000_000_000)
	g := testGenerator(now)

	cases := map[string]domain.Environment{
		"absent":          {},
		"no viewport":     {UserAgent: "old", Meta: domain.EnvMeta{Updated: 1}},
		"no updated":      {UserAgent: "old", Meta: domain.EnvMeta{Viewport: &domain.Viewport{Width: 1, Height: 1}}},
		"device id stays": {UserAgent: "old", Meta: domain.EnvMeta{DeviceID: "x"}},
	}
	for name, old := range cases {
		t.Run(name, func(t *testing.T) {
			got := g.Web()(old)
			if !Fresh(domain.KindWeb, got) {
				t.Fatalf("not fresh: %+v", got)
			}
			if got.UserAgent != "Mozilla/5.0 test" {
				t.Fatalf("ua=%q", got.UserAgent)
			}
			if got.Meta.Viewport.Width != 1903 || got.Meta.Viewport.Height != 969 {
				t.Fatalf("viewport=%+v", got.Meta.Viewport)
			}
			if got.Meta.Updated != now.UnixMilli() {
				t.Fatalf("updated=%d", got.Meta.Updated)
			}
			if got.Meta.DeviceID != "" {
				t.Fatalf("old record leaked into new one")
			}
		})
	}
}

func TestClient(t *testing.T) {
	now := time.UnixMilli(1_760_000_000_000)
	g := testGenerator(now)

	fresh := domain.Environment{UserAgent: "kept", Meta: domain.EnvMeta{Updated: 9}}
	if got := g.Client()(fresh); !reflect.DeepEqual(got, fresh) {
		t.Fatalf("fresh record replaced: %+v", got)
	}

	got := g.Client()(domain.Environment{UserAgent: "stale"})
	if got.Kind != domain.KindClient || got.Meta.Updated != now.UnixMilli() {
		t.Fatalf("got=%+v", got)
	}
}

func TestFor(t *testing.T) {
	g := testGenerator(time.Now())
	for _, kind := range domain.Kinds() {
		if got := g.For(kind)(domain.Environment{}); !Fresh(kind, got) {
			t.Fatalf("%s: regenerated record not fresh", kind)
		}
	}
}

func TestRandomDeviceID(t *testing.T) {
	a, b := RandomDeviceID(), RandomDeviceID()
	if a == b || !strings.HasPrefix(a, "ios:") || len(a) != len("ios:")+36 {
		t.Fatalf("a=%q b=%q", a, b)
	}
}

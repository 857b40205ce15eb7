// internal/requestinfo/requestinfo.go
//
// Per-request metadata: user-agent fingerprint, client IP, and
// best-effort geolocation.  The structs are inert—no handles, no large
// buffers—so they are safe to log or JSON-encode.
package requestinfo

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/avct/uasurfer"
	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"
)

// UA holds the parsed user-agent properties the access log records.
type UA struct {
	Browser string // "Chrome", "Firefox", "Safari", …
	Version string // "124.0.6367"
	OS      string // "macOS", "Windows", "Android", …
	Device  string // "Desktop", "Phone", "Tablet", …
	IsBot   bool
}

// Geo holds IP-based geolocation hints.  Best-effort; fields may be
// empty when the database has no match or is not configured.
type Geo struct {
	IP         net.IP
	CountryISO string // "US", "CA", "FR", …
	City       string
}

// Info is attached to the request context by Enrich.
type Info struct {
	UA        UA
	Geo       Geo
	Timestamp time.Time
}

// geoReader is a process-wide MaxMind handle.  Safe for concurrent
// reads, which is all we ever perform.  Nil when geo is not configured.
var geoReader *geoip2.Reader

// InitGeo opens the GeoLite2-City database.  Call once from main when
// geo.db_path is configured; lookups degrade gracefully without it.
func InitGeo(dbPath string) error {
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoReader = r
	zap.S().Infow("geo database online", "path", dbPath)
	return nil
}

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the *Info stored by Enrich, or nil if the
// middleware has not run.
func FromContext(ctx context.Context) *Info {
	v, _ := ctx.Value(ctxKey{}).(*Info)
	return v
}

/*──────────────────────────── parsers ─────────────────────────────────────*/

func parseUA(raw string) UA {
	u := uasurfer.Parse(raw)

	out := UA{
		Browser: strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		Version: trimVersion(u.Browser.Version),
		OS:      strings.TrimPrefix(u.OS.Name.String(), "OS"),
		IsBot:   u.IsBot(),
	}
	if out.OS == "MacOSX" {
		out.OS = "macOS"
	}

	switch u.DeviceType {
	case uasurfer.DeviceComputer:
		out.Device = "Desktop"
	case uasurfer.DevicePhone:
		out.Device = "Phone"
	case uasurfer.DeviceTablet:
		out.Device = "Tablet"
	case uasurfer.DeviceTV:
		out.Device = "TV"
	default:
		out.Device = "Other"
	}
	return out
}

// trimVersion renders "major.minor.patch" without trailing zero parts,
// e.g. 17.0.0 → "17", 17.3.0 → "17.3", 17.3.1 → "17.3.1".
func trimVersion(v uasurfer.Version) string {
	if v.Major == 0 && v.Minor == 0 && v.Patch == 0 {
		return ""
	}
	if v.Patch != 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	if v.Minor != 0 {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return strconv.Itoa(int(v.Major))
}

// lookupGeo returns best-effort Geo data using the package reader.
func lookupGeo(ip net.IP) Geo {
	if geoReader == nil || ip == nil {
		return Geo{IP: ip}
	}
	rec, err := geoReader.City(ip)
	if err != nil {
		return Geo{IP: ip}
	}
	return Geo{
		IP:         ip,
		CountryISO: rec.Country.IsoCode,
		City:       rec.City.Names["en"],
	}
}

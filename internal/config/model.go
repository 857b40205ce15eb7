// internal/config/model.go
//
// Typed configuration model for the storefront API.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                         – dotenv values,
//   • `conf/global.yaml`                           – primary static file,
//   • `STOREFRONT_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *after* unmarshalling, so the rest of the app
// never sees Vault URIs—only plain strings.
//
// Validation happens immediately after unmarshal; the process fails fast
// if required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml`
//     tags unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
package config

import (
	"fmt"
	"time"
)

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
}

//
// CORS section
//

// CORS lists the origins and headers the browser may use cross-site.
// The middleware echoes the matching origin back, never "*", so the
// allow-list stays meaningful with credentials.
type CORS struct {
	AllowedOrigins []string `koanf:"allowed_origins" validate:"required,min=1,dive,url"`
	AllowedHeaders []string `koanf:"allowed_headers"`
}

//
// Session section
//

// Session configures the server-side session store and its cookie.
type Session struct {
	CookieName string        `koanf:"cookie_name" validate:"required"`
	CookiePath string        `koanf:"cookie_path" validate:"required,startswith=/"`
	IdleTTL    time.Duration `koanf:"idle_ttl"    validate:"required"`
}

//
// Database section
//

// Database holds the DSN template and its secret.
//
// The *template* (`DSN`) is kept in YAML so operators can tweak host,
// port, or flags without touching Vault.  It must contain exactly one
// `%s` verb where the password goes.  The *secret* (`Password`) may be a
// literal or a `vault:` reference resolved at load time, keeping
// credentials out of flat files and git history.
type Database struct {
	DSN      string `koanf:"dsn"      validate:"required,contains=%s"`
	Password string `koanf:"password" validate:"required"`
}

// ResolvedDSN splices the password into the DSN template.
func (d Database) ResolvedDSN() string {
	return fmt.Sprintf(d.DSN, d.Password)
}

//
// Geo section
//

// Geo points at an optional GeoLite2-City database used by the
// request-info middleware.  Empty path disables geo lookups.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or STOREFRONT_ROOT override) so later code
// can build absolute file paths.
type Paths struct {
	Root string
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	CORS     CORS     `koanf:"cors"`
	Session  Session  `koanf:"session"`
	Database Database `koanf:"database"`
	Geo      Geo      `koanf:"geo"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}

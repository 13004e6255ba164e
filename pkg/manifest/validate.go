package manifest

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultStrategy     = "accessor"
	DefaultCodec        = "json-strict"
	DefaultListen       = ":8080"
	DefaultSecretEnv    = "INVOKE_JWT_SECRET"
	DefaultMaxBodyBytes = 6 << 20
)

// normalize trims and lower-cases enumerations and fills defaults.
func (c *Config) normalize() {
	f := &c.Function
	f.EntryPoint = strings.TrimSpace(f.EntryPoint)
	f.Strategy = strings.ToLower(strings.TrimSpace(f.Strategy))
	if f.Strategy == "" {
		f.Strategy = DefaultStrategy
	}
	f.Codec = strings.ToLower(strings.TrimSpace(f.Codec))
	if f.Codec == "" {
		f.Codec = DefaultCodec
	}

	s := &c.Server
	s.Listen = strings.TrimSpace(s.Listen)
	if s.Listen == "" {
		s.Listen = DefaultListen
	}
	if s.MaxBodyBytes == 0 {
		s.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if s.ShutdownWaitMS == 0 {
		s.ShutdownWaitMS = 5000
	}

	a := &c.Auth
	a.Mode = strings.ToLower(strings.TrimSpace(a.Mode))
	if a.Mode == "" {
		a.Mode = AuthNone
	}
	a.SecretEnv = strings.TrimSpace(a.SecretEnv)
	if a.SecretEnv == "" {
		a.SecretEnv = DefaultSecretEnv
	}

	if strings.TrimSpace(c.Log.Dir) == "" {
		c.Log.Dir = "log"
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate normalizes c in place and checks it.
func (c *Config) Validate() error {
	c.normalize()

	if c.Function.EntryPoint == "" {
		return errors.New("function.entry_point is required")
	}
	switch c.Function.Strategy {
	case "direct", "accessor", "closure":
	default:
		return fmt.Errorf("function.strategy %q invalid", c.Function.Strategy)
	}
	switch c.Function.Codec {
	case "json", "json-strict":
	default:
		return fmt.Errorf("function.codec %q invalid", c.Function.Codec)
	}

	if c.Server.TimeoutMS < 0 {
		return errors.New("server.timeout_ms must be >= 0")
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New("server.max_body_bytes must be >= 0")
	}
	if c.Server.ShutdownWaitMS < 0 {
		return errors.New("server.shutdown_wait_ms must be >= 0")
	}

	switch c.Auth.Mode {
	case AuthNone, AuthHS256:
	case AuthRS256:
		if strings.TrimSpace(c.Auth.PublicKeyFile) == "" {
			return errors.New("auth.public_key_file required for mode=rs256")
		}
	default:
		return fmt.Errorf("auth.mode %q invalid", c.Auth.Mode)
	}
	if c.Auth.LeewaySeconds < 0 {
		return errors.New("auth.leeway_seconds must be >= 0")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q invalid", c.Log.Level)
	}
	return nil
}

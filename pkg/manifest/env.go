package manifest

import (
	"strconv"
	"strings"
)

// ApplyEnv overlays deployment-time overrides onto c. getenv is usually
// os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv("STEEZE_ENTRY_POINT")); v != "" {
		c.Function.EntryPoint = v
	}
	if v := strings.TrimSpace(getenv("STEEZE_STRATEGY")); v != "" {
		c.Function.Strategy = v
	}
	if v := strings.TrimSpace(getenv("STEEZE_CODEC")); v != "" {
		c.Function.Codec = v
	}
	if v := strings.TrimSpace(getenv("LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(getenv("SERVER_LISTEN_ADDRESS")); v != "" {
		c.Server.Listen = v
	}
	if v := strings.TrimSpace(getenv("STEEZE_ENV_SERVLET")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Environment.Servlet = b
		}
	}
	if v := strings.TrimSpace(getenv("STEEZE_ENV_WEB")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Environment.Web = b
		}
	}
	// A secret present in the environment with no mode configured turns on HS256.
	if strings.TrimSpace(c.Auth.Mode) == "" || c.Auth.Mode == AuthNone {
		env := c.Auth.SecretEnv
		if env == "" {
			env = DefaultSecretEnv
		}
		if strings.TrimSpace(getenv(env)) != "" {
			c.Auth.Mode = AuthHS256
		}
	}
}

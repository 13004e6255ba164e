package manifest

// Config is the top-level runtime manifest. It is read once per execution
// environment, before the cold start.
type Config struct {
	Function    Function    `toml:"function" yaml:"function"`
	Environment Environment `toml:"environment" yaml:"environment"`
	Server      Server      `toml:"server" yaml:"server"`
	Auth        Auth        `toml:"auth" yaml:"auth"`
	Log         Log         `toml:"log" yaml:"log"`
}

// Function names the user's entry point and how it is instantiated.
type Function struct {
	EntryPoint string `toml:"entry_point" yaml:"entry_point"`
	Strategy   string `toml:"strategy" yaml:"strategy"` // "direct" | "accessor" (def) | "closure"
	Codec      string `toml:"codec" yaml:"codec"`       // "json-strict" (def) | "json"
}

// Environment toggles the optional capabilities the runtime advertises.
type Environment struct {
	Servlet bool `toml:"servlet" yaml:"servlet"`
	Web     bool `toml:"web" yaml:"web"`
}

type Server struct {
	Listen         string `toml:"listen" yaml:"listen"`                     // default ":8080"
	TimeoutMS      int    `toml:"timeout_ms" yaml:"timeout_ms"`             // per invocation; 0 = none
	MaxBodyBytes   int64  `toml:"max_body_bytes" yaml:"max_body_bytes"`     // default 6 MiB
	ShutdownWaitMS int    `toml:"shutdown_wait_ms" yaml:"shutdown_wait_ms"` // default 5000
}

const (
	AuthNone  = "none"
	AuthHS256 = "hs256"
	AuthRS256 = "rs256"
)

// Auth configures the bearer guard on /invoke. Secrets never live in the
// manifest: HS256 reads SecretEnv, RS256 reads a PEM public key file.
type Auth struct {
	Mode          string `toml:"mode" yaml:"mode"`             // "none" (def) | "hs256" | "rs256"
	SecretEnv     string `toml:"secret_env" yaml:"secret_env"` // default INVOKE_JWT_SECRET
	PublicKeyFile string `toml:"public_key_file" yaml:"public_key_file"`
	Issuer        string `toml:"issuer" yaml:"issuer"`
	Audience      string `toml:"audience" yaml:"audience"`
	LeewaySeconds int    `toml:"leeway_seconds" yaml:"leeway_seconds"`
}

type Log struct {
	Dir       string `toml:"dir" yaml:"dir"`               // default "log"
	Level     string `toml:"level" yaml:"level"`           // system log level, default "info"
	AccessLog bool   `toml:"access_log" yaml:"access_log"` // per-request access log
}

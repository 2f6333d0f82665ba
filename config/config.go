// Package config holds the runtime settings shared by the terminal and
// websocket hosts, bound to flags and DRAGMATCH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lixenwraith/drag-match/audio"
	"github.com/lixenwraith/drag-match/parameter"
)

// EnvPrefix namespaces environment overrides
const EnvPrefix = "DRAGMATCH"

var (
	ErrPort   = errors.New("invalid port")
	ErrVolume = errors.New("invalid volume")
	ErrFPS    = errors.New("invalid fps")
	ErrLevel  = errors.New("invalid start level")
	ErrTLS    = errors.New("both --tls-cert and --tls-key must be provided together")
)

// Config is the flattened host configuration
type Config struct {
	Debug   bool // Write logs/dragmatch.log
	Verbose bool // Request logging for the server

	Audio  bool
	Volume float64

	PackDir string // Directory of *.toml level packs, empty = embedded pack
	Level   int    // Zero-based start level
	Seed    uint64 // 0 = time seeded
	FPS     int

	Bind    string
	Port    int
	Prefix  string
	TLSCert string
	TLSKey  string
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Audio:  true,
		Volume: 1.0,
		FPS:    int(time.Second / parameter.FrameUpdateInterval),
		Bind:   "0.0.0.0",
		Port:   8080,
	}
}

// Validate rejects values no host can run with
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w (must be between 1-65535 inclusive): %d", ErrPort, c.Port)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("%w (must be between 0 and 1): %g", ErrVolume, c.Volume)
	}
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("%w (must be between 1-240): %d", ErrFPS, c.FPS)
	}
	if c.Level < 0 || c.Level > parameter.MaxStartLevel {
		return fmt.Errorf("%w (must be between 0-%d): %d", ErrLevel, parameter.MaxStartLevel, c.Level)
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return ErrTLS
	}
	return nil
}

// FrameInterval is the tick period for the configured frame rate
func (c *Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return parameter.FrameUpdateInterval
	}
	return time.Second / time.Duration(c.FPS)
}

// Addr is the listen address
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Bind, strconv.Itoa(c.Port))
}

// Scheme reports http or https depending on TLS settings
func (c *Config) Scheme() string {
	if c.TLSCert != "" && c.TLSKey != "" {
		return "https"
	}
	return "http"
}

// AudioConfig maps the audio settings onto the synth configuration
func (c *Config) AudioConfig() audio.Config {
	ac := audio.DefaultConfig()
	ac.Enabled = c.Audio
	ac.Volume = c.Volume
	return ac
}

// GameFlags registers settings used by every host
func GameFlags(fs *pflag.FlagSet, c *Config) {
	fs.BoolVarP(&c.Debug, "debug", "d", c.Debug, "write debug log to logs/dragmatch.log (env: DRAGMATCH_DEBUG)")
	fs.BoolVar(&c.Audio, "audio", c.Audio, "enable sound (env: DRAGMATCH_AUDIO)")
	fs.Float64Var(&c.Volume, "volume", c.Volume, "master volume, 0 to 1 (env: DRAGMATCH_VOLUME)")
	fs.StringVar(&c.PackDir, "packs", c.PackDir, "directory of level packs, empty for the built-in pack (env: DRAGMATCH_PACKS)")
	fs.IntVarP(&c.Level, "level", "l", c.Level, "zero-based level to start at (env: DRAGMATCH_LEVEL)")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "shuffle seed, 0 for random (env: DRAGMATCH_SEED)")
	fs.IntVar(&c.FPS, "fps", c.FPS, "frames per second (env: DRAGMATCH_FPS)")
}

// ServerFlags registers websocket host settings
func ServerFlags(fs *pflag.FlagSet, c *Config) {
	fs.StringVarP(&c.Bind, "bind", "b", c.Bind, "address to bind to (env: DRAGMATCH_BIND)")
	fs.IntVarP(&c.Port, "port", "p", c.Port, "port to listen on (env: DRAGMATCH_PORT)")
	fs.StringVar(&c.Prefix, "prefix", c.Prefix, "path to prepend to all URLs, for use behind reverse proxy (env: DRAGMATCH_PREFIX)")
	fs.StringVar(&c.TLSCert, "tls-cert", c.TLSCert, "path to tls certificate (env: DRAGMATCH_TLS_CERT)")
	fs.StringVar(&c.TLSKey, "tls-key", c.TLSKey, "path to tls keyfile (env: DRAGMATCH_TLS_KEY)")
	fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "log requests (env: DRAGMATCH_VERBOSE)")
}

// BindEnv copies DRAGMATCH_* environment values into flags not set on the command line
// Call after flags are registered; explicit flags parsed later still win
func BindEnv(fs *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
	return v
}

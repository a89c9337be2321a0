package logging

import (
	"fmt"
	"os"

	"github.com/rs/xid"
	"gopkg.in/yaml.v3"
)

// File formats accepted by Config.FileFormat.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultQueueSize bounds the logging queue when Config.QueueSize is unset.
const DefaultQueueSize = 65536

// Config carries the immutable configuration of a Logger instance.
type Config struct {
	// TraderID identifies the trading node the logger belongs to.
	TraderID string `yaml:"trader_id"`

	// MachineID identifies the host machine. Defaults to the hostname.
	MachineID string `yaml:"machine_id"`

	// InstanceID identifies this process instance. Defaults to a generated
	// ID.
	InstanceID string `yaml:"instance_id"`

	// StdoutLevel is the minimum level written to the console sink.
	StdoutLevel LogLevel `yaml:"stdout_level"`

	// FileLevel is the minimum level written to the file sink.
	FileLevel LogLevel `yaml:"file_level"`

	// FileLogging enables the file sink.
	FileLogging bool `yaml:"file_logging"`

	// Directory is the output directory for the log file. Defaults to the
	// working directory.
	Directory string `yaml:"directory"`

	// FileName is the log file name. When empty, a name is derived from the
	// trader and instance identifiers.
	FileName string `yaml:"file_name"`

	// FileFormat selects the file sink encoding, FormatText or FormatJSON.
	FileFormat string `yaml:"file_format"`

	// ComponentLevels overrides the minimum level per component name. An
	// override applies to both sinks for that component.
	ComponentLevels map[string]LogLevel `yaml:"component_levels"`

	// Bypassed suppresses all output without disabling call sites. Used for
	// silent test runs.
	Bypassed bool `yaml:"bypassed"`

	// QueueSize bounds the record queue. Defaults to DefaultQueueSize.
	QueueSize int `yaml:"queue_size"`
}

// LoadConfig reads a Config from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading logging config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing logging config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.MachineID == "" {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		c.MachineID = hostname
	}

	if c.InstanceID == "" {
		c.InstanceID = xid.New().String()
	}

	if c.FileFormat == "" {
		c.FileFormat = FormatText
	}
	if c.FileFormat != FormatText && c.FileFormat != FormatJSON {
		return fmt.Errorf("unknown file format %q", c.FileFormat)
	}

	if c.QueueSize <= 0 {
		c.QueueSize = DefaultQueueSize
	}

	if c.FileName == "" {
		ext := "log"
		if c.FileFormat == FormatJSON {
			ext = "json"
		}
		c.FileName = fmt.Sprintf("%s_%s.%s", c.TraderID, c.InstanceID, ext)
	}

	return nil
}

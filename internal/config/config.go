package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Language         string            `mapstructure:"language" validate:"required"`
	LocalizationFile string            `mapstructure:"localization_file" validate:"omitempty,file"`
	Directories      DirectoriesConfig `mapstructure:"directories"`
	Export           ExportConfig      `mapstructure:"export"`
	Debug            bool              `mapstructure:"debug"`
}

type DirectoriesConfig struct {
	Input  string `mapstructure:"input" validate:"required,dir"`
	Output string `mapstructure:"output" validate:"required"`
	// Temp defaults to "<output>/tmp".
	Temp string `mapstructure:"temp"`
}

type ExportConfig struct {
	ArchiveName       string `mapstructure:"archive_name" validate:"required"`
	DocumentExtension string `mapstructure:"document_extension" validate:"required,startswith=."`
	DateLayout        string `mapstructure:"date_layout" validate:"required"`
	Workers           int    `mapstructure:"workers" validate:"min=1"`
	CopyAttempts      uint   `mapstructure:"copy_attempts" validate:"min=1"`
	CleanTemp         bool   `mapstructure:"clean_temp"`
}

// ArchivePath returns where the archive is written.
func (cfg *Config) ArchivePath() string {
	return filepath.Join(cfg.Directories.Output, cfg.Export.ArchiveName)
}

// parameterKeys maps the legacy key=value parameter names of the command
// line to configuration keys.
var parameterKeys = map[string]string{
	"language":        "language",
	"lang":            "language",
	"lng":             "language",
	"outDir":          "directories.output",
	"out":             "directories.output",
	"tempDir":         "directories.temp",
	"tmpDir":          "directories.temp",
	"temp":            "directories.temp",
	"tmp":             "directories.temp",
	"inDir":           "directories.input",
	"in":              "directories.input",
	"enableDebugging": "debug",
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"lang":    "language",
	"in":      "directories.input",
	"out":     "directories.output",
	"tmp":     "directories.temp",
	"workers": "export.workers",
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/diarium2journey")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

// BindFlags makes the known flags of flags override the configuration file.
// Flags that are not defined in flags are ignored.
func (loader *ConfigLoader) BindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := loader.viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind --%s flag: %w", name, err)
		}
	}
	return nil
}

// ApplyParameters applies key=value parameters, which take precedence over
// every other source. Arguments without "=" are ignored; keys that are not
// known are returned.
func (loader *ConfigLoader) ApplyParameters(params []string) []string {
	var unsupported []string
	for _, param := range params {
		name, value, ok := strings.Cut(param, "=")
		if !ok {
			continue
		}
		key, ok := parameterKeys[name]
		if !ok {
			unsupported = append(unsupported, name)
			continue
		}
		if key == "debug" {
			loader.viper.Set(key, strings.ToLower(value) != "false" && value != "0")
			continue
		}
		loader.viper.Set(key, value)
	}
	return unsupported
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("language", "eng")
	v.SetDefault("localization_file", "")
	v.SetDefault("directories.input", ".")
	v.SetDefault("directories.output", "out")
	v.SetDefault("directories.temp", "")
	v.SetDefault("export.archive_name", "journey.zip")
	v.SetDefault("export.document_extension", ".html")
	v.SetDefault("export.date_layout", "2006-01-02")
	v.SetDefault("export.workers", 4)
	v.SetDefault("export.copy_attempts", 3)
	v.SetDefault("export.clean_temp", false)
	v.SetDefault("debug", false)

	if err := v.BindEnv("language", "DIARIUM_LANGUAGE"); err != nil {
		return nil, fmt.Errorf("failed to bind DIARIUM_LANGUAGE environment variable: %w", err)
	}
	if err := v.BindEnv("directories.input", "DIARIUM_INPUT_DIRECTORY"); err != nil {
		return nil, fmt.Errorf("failed to bind DIARIUM_INPUT_DIRECTORY environment variable: %w", err)
	}
	if err := v.BindEnv("directories.output", "DIARIUM_OUTPUT_DIRECTORY"); err != nil {
		return nil, fmt.Errorf("failed to bind DIARIUM_OUTPUT_DIRECTORY environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	if cfg.Directories.Temp == "" {
		cfg.Directories.Temp = filepath.Join(cfg.Directories.Output, "tmp")
	}

	if cfg.Export.CleanTemp {
		for _, path := range []string{cfg.ArchivePath(), cfg.Directories.Input} {
			if isWithin(cfg.Directories.Temp, path) {
				return nil, fmt.Errorf("invalid configuration: export.clean_temp would remove %s because it is inside directories.temp %s", path, cfg.Directories.Temp)
			}
		}
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}

// isWithin reports whether path is dir or lies below it.
func isWithin(dir, path string) bool {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

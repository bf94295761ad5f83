package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	return &Config{
		Language: "eng",
		Directories: DirectoriesConfig{
			Input:  ".",
			Output: "out",
			Temp:   filepath.Join("out", "tmp"),
		},
		Export: ExportConfig{
			ArchiveName:       "journey.zip",
			DocumentExtension: ".html",
			DateLayout:        "2006-01-02",
			Workers:           4,
			CopyAttempts:      3,
		},
	}
}

// chdir moves into dir for the rest of the test so the config search path
// and relative defaults resolve inside it.
func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
}

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		useExplicitPath   bool
		wantErr           bool
		want              func(tempDir string) *Config
		wantErrorContains []string
	}{
		{
			name: "no config file uses defaults",
			want: func(string) *Config {
				return defaultConfig()
			},
		},
		{
			name: "valid config file with custom values",
			configContent: `language: ger
directories:
  input: export
  output: result
  temp: work
export:
  archive_name: diary.zip
  document_extension: .htm
  date_layout: "02.01.2006"
  workers: 8
  copy_attempts: 5
  clean_temp: true
debug: true
`,
			want: func(string) *Config {
				return &Config{
					Language: "ger",
					Directories: DirectoriesConfig{
						Input:  "export",
						Output: "result",
						Temp:   "work",
					},
					Export: ExportConfig{
						ArchiveName:       "diary.zip",
						DocumentExtension: ".htm",
						DateLayout:        "02.01.2006",
						Workers:           8,
						CopyAttempts:      5,
						CleanTemp:         true,
					},
					Debug: true,
				}
			},
		},
		{
			name: "explicit path",
			configContent: `language: ger
`,
			useExplicitPath: true,
			want: func(string) *Config {
				cfg := defaultConfig()
				cfg.Language = "ger"
				return cfg
			},
		},
		{
			name: "temp defaults to a directory below output",
			configContent: `directories:
  output: result
`,
			want: func(string) *Config {
				cfg := defaultConfig()
				cfg.Directories.Output = "result"
				cfg.Directories.Temp = filepath.Join("result", "tmp")
				return cfg
			},
		},
		{
			name: "invalid YAML format",
			configContent: `directories:
  input: export
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "input directory does not exist",
			configContent: `directories:
  input: missing
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"directories.input must be an existing directory",
			},
		},
		{
			name: "localization file does not exist",
			configContent: `localization_file: languages.yml
`,
			wantErr: true,
			wantErrorContains: []string{
				"localization_file must be an existing and readable file",
			},
		},
		{
			name: "clean temp would remove the archive",
			configContent: `directories:
  output: result
  temp: result
export:
  clean_temp: true
`,
			wantErr: true,
			wantErrorContains: []string{
				"export.clean_temp would remove",
				"journey.zip",
			},
		},
		{
			name: "clean temp would remove the input",
			configContent: `directories:
  input: export
  temp: export
export:
  clean_temp: true
`,
			wantErr: true,
			wantErrorContains: []string{
				"export.clean_temp would remove export",
			},
		},
		{
			name: "clean temp below output",
			configContent: `directories:
  input: export
export:
  clean_temp: true
`,
			want: func(string) *Config {
				cfg := defaultConfig()
				cfg.Directories.Input = "export"
				cfg.Export.CleanTemp = true
				return cfg
			},
		},
		{
			name: "invalid export settings",
			configContent: `export:
  document_extension: html
  workers: 0
`,
			wantErr: true,
			wantErrorContains: []string{
				"export.document_extension must start with text '.'",
				"workers must be 1 or greater",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("HOME", tempDir)
			require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "export"), 0755))

			var configPath string
			if tt.configContent != "" {
				name := "config.yaml"
				if tt.useExplicitPath {
					name = "custom.yml"
				}
				err := os.WriteFile(filepath.Join(tempDir, name), []byte(tt.configContent), 0644)
				require.NoError(t, err)
				if tt.useExplicitPath {
					configPath = filepath.Join(tempDir, name)
				}
			}
			chdir(t, tempDir)

			loader, err := NewConfigLoader(configPath)
			require.NoError(t, err)
			got, err := loader.Load()

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				for _, wantMsg := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), wantMsg)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want(tempDir), got)
		})
	}
}

func TestConfigLoader_ApplyParameters(t *testing.T) {
	tests := []struct {
		name            string
		params          []string
		wantUnsupported []string
		check           func(t *testing.T, cfg *Config)
	}{
		{
			name:   "long names",
			params: []string{"language=ger", "inDir=export", "outDir=result", "tempDir=work"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "ger", cfg.Language)
				assert.Equal(t, "export", cfg.Directories.Input)
				assert.Equal(t, "result", cfg.Directories.Output)
				assert.Equal(t, "work", cfg.Directories.Temp)
			},
		},
		{
			name:   "aliases",
			params: []string{"lng=ger", "in=export", "out=result", "tmp=work"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "ger", cfg.Language)
				assert.Equal(t, "export", cfg.Directories.Input)
				assert.Equal(t, "result", cfg.Directories.Output)
				assert.Equal(t, "work", cfg.Directories.Temp)
			},
		},
		{
			name:   "later parameters win",
			params: []string{"lang=eng", "lang=ger", "temp=a", "tmpDir=b"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "ger", cfg.Language)
				assert.Equal(t, "b", cfg.Directories.Temp)
			},
		},
		{
			name:   "enable debugging",
			params: []string{"enableDebugging=true"},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Debug)
			},
		},
		{
			name:   "disable debugging",
			params: []string{"enableDebugging=FALSE"},
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Debug)
			},
		},
		{
			name:            "unsupported keys are reported and ignored",
			params:          []string{"color=blue", "lang=ger", "positional"},
			wantUnsupported: []string{"color"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "ger", cfg.Language)
			},
		},
		{
			name:   "values may contain equal signs",
			params: []string{"out=a=b"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "a=b", cfg.Directories.Output)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			t.Setenv("HOME", tempDir)
			require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "export"), 0755))
			require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte("language: eng\n"), 0644))
			chdir(t, tempDir)

			loader, err := NewConfigLoader("")
			require.NoError(t, err)
			assert.Equal(t, tt.wantUnsupported, loader.ApplyParameters(tt.params))

			cfg, err := loader.Load()
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestConfigLoader_BindFlags(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "export"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte("language: eng\nexport:\n  workers: 2\n"), 0644))
	chdir(t, tempDir)

	flags := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	flags.String("lang", "", "")
	flags.String("in", "", "")
	flags.Int("workers", 0, "")
	require.NoError(t, flags.Parse([]string{"--lang=ger", "--in=export"}))

	loader, err := NewConfigLoader("")
	require.NoError(t, err)
	require.NoError(t, loader.BindFlags(flags))
	loader.ApplyParameters([]string{"in=."})

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "ger", cfg.Language)
	assert.Equal(t, ".", cfg.Directories.Input)
	assert.Equal(t, 2, cfg.Export.Workers)
}

func TestConfigLoader_Environment(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("DIARIUM_LANGUAGE", "ger")
	t.Setenv("DIARIUM_OUTPUT_DIRECTORY", "env-out")
	chdir(t, tempDir)

	loader, err := NewConfigLoader("")
	require.NoError(t, err)
	cfg, err := loader.Load()
	require.NoError(t, err)

	assert.Equal(t, "ger", cfg.Language)
	assert.Equal(t, "env-out", cfg.Directories.Output)
	assert.Equal(t, filepath.Join("env-out", "tmp"), cfg.Directories.Temp)
}

func TestConfig_ArchivePath(t *testing.T) {
	cfg := defaultConfig()
	cfg.Directories.Output = strings.Join([]string{"a", "b"}, string(filepath.Separator))
	assert.Equal(t, filepath.Join("a", "b", "journey.zip"), cfg.ArchivePath())
}

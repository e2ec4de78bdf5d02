// Package config loads the svograph settings.
//
// Configuration hierarchy (highest to lowest priority):
//  1. CLI flags
//  2. Environment variables (SVOGRAPH_*)
//  3. Config file (./svograph.yaml or ~/.svograph/config.yaml)
//  4. Defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/revelaction/svograph/file"
)

const EnvPrefix = "SVOGRAPH"

type Config struct {
	DataDir   string `mapstructure:"data_dir" yaml:"data_dir"`
	DataFile  string `mapstructure:"datafile" yaml:"datafile"`
	InOutFile string `mapstructure:"inoutfile" yaml:"inoutfile"`
	SaveDir   string `mapstructure:"save_dir" yaml:"save_dir"`
	JSONDir   string `mapstructure:"json_dir" yaml:"json_dir"`
	JSONFile  string `mapstructure:"jsonfile" yaml:"jsonfile"`

	// DocPath is the parsed-sentence store: a directory or a SQLite file
	DocPath string `mapstructure:"doc_path" yaml:"doc_path"`

	Workers     int    `mapstructure:"workers" yaml:"workers"`
	SkipErrors  bool   `mapstructure:"skip_errors" yaml:"skip_errors"`
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file"`

	Log   LogConfig   `mapstructure:"log" yaml:"log"`
	Neo4j Neo4jConfig `mapstructure:"neo4j" yaml:"neo4j"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type Neo4jConfig struct {
	URI      string `mapstructure:"uri" yaml:"uri"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`
	Corpus   string `mapstructure:"corpus" yaml:"corpus"`
}

func Default() Config {
	return Config{
		DataDir:   file.DataDir,
		DataFile:  file.DataFile,
		InOutFile: file.InOutFile,
		SaveDir:   file.SaveDir,
		JSONDir:   file.SaveDir,
		JSONFile:  file.JSONFile,
		DocPath:   file.DocPath,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Neo4j: Neo4jConfig{
			Username: "neo4j",
			Corpus:   file.DataFile,
		},
	}
}

// Load reads the configuration. If path is empty the first existing file of
// SearchPaths is used; no file at all is not an error. It returns the file
// used, if any.
func Load(path string) (Config, string, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path == "" {
		path = search()
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, "", fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, "", fmt.Errorf("decoding config: %w", err)
	}

	return c, path, nil
}

// SearchPaths are the config files looked up when none is given.
func SearchPaths() []string {
	paths := []string{"svograph.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".svograph", "config.yaml"))
	}
	return paths
}

func search() string {
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// setDefaults registers every key, so that environment variables are
// honored by Unmarshal.
func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("data_dir", c.DataDir)
	v.SetDefault("datafile", c.DataFile)
	v.SetDefault("inoutfile", c.InOutFile)
	v.SetDefault("save_dir", c.SaveDir)
	v.SetDefault("json_dir", c.JSONDir)
	v.SetDefault("jsonfile", c.JSONFile)
	v.SetDefault("doc_path", c.DocPath)
	v.SetDefault("workers", c.Workers)
	v.SetDefault("skip_errors", c.SkipErrors)
	v.SetDefault("metrics_file", c.MetricsFile)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.format", c.Log.Format)
	v.SetDefault("neo4j.uri", c.Neo4j.URI)
	v.SetDefault("neo4j.username", c.Neo4j.Username)
	v.SetDefault("neo4j.password", c.Neo4j.Password)
	v.SetDefault("neo4j.corpus", c.Neo4j.Corpus)
}

// YAML renders the configuration, with the Neo4j password masked.
func (c Config) YAML() ([]byte, error) {
	if c.Neo4j.Password != "" {
		c.Neo4j.Password = "********"
	}

	return yaml.Marshal(c)
}

// DataPath is the sentence corpus CSV.
func (c Config) DataPath() string {
	return file.CSV(c.DataDir, c.DataFile)
}

// InOutPath is the group table CSV.
func (c Config) InOutPath() string {
	return file.CSV(c.DataDir, c.InOutFile)
}

// JSONPath is the triple store written by extract and read by network.
func (c Config) JSONPath() string {
	return file.JSON(c.JSONDir, c.JSONFile)
}

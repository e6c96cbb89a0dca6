package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/moxxiRan/daily-site/pkg/resync"
	"github.com/pelletier/go-toml/v2"
)

// How many parent directories to traverse before considering a directory as not a daily site
const maxDepth = 10

// ConfigFileName is the name of the configuration file present at the root of a daily site.
const ConfigFileName = "daily.toml"

// Default daily.toml content
const DefaultConfig = `
[site]
title = "AI / 游戏 日报"
description = "每天 10 分钟，跟上进展"
base_url = ""

[content]
root = "public"
manifest = "manifest.json"
extensions = ["md"]
timezone = "Asia/Shanghai"
parallel = 8
ignore = []

[categories.ai]
label = "AI 日报"
title_prefix = "AI 日报"
tags = ["AI", "Daily"]
order = 1

[categories.game]
label = "游戏日报"
title_prefix = "游戏行业速递"
tags = ["Game", "Daily"]
keywords = ["🎮", "游戏行业速递"]
order = 2

[publish]
default_category = "ai"

[remote]
type = "fs"
dir = "dist"
`

// Default .gitignore content
const DefaultGitIgnore = `
.env
/dist/
`

// Environment variables overriding the remote credentials
const (
	EnvAccessKey = "DAILY_S3_ACCESS_KEY"
	EnvSecretKey = "DAILY_S3_SECRET_KEY"
)

// Used when the configured time zone cannot be loaded (ex: missing tzdata)
var fallbackLocation = time.FixedZone("UTC+08:00", 8*60*60)

var (
	// Lazy-load configuration and ensure a single read
	configOnce      resync.Once
	configSingleton *Config
)

// Note: Fields must be public for toml package to unmarshall
type ConfigFile struct {
	Site       ConfigSite                `toml:"site"`
	Content    ConfigContent             `toml:"content"`
	Categories map[string]ConfigCategory `toml:"categories"`
	Publish    ConfigPublish             `toml:"publish"`
	Remote     ConfigRemote              `toml:"remote"`
}
type ConfigSite struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	BaseURL     string `toml:"base_url"`
}
type ConfigContent struct {
	Root       string    `toml:"root"`
	Manifest   string    `toml:"manifest"`
	Extensions []string  `toml:"extensions"`
	Timezone   string    `toml:"timezone"`
	Parallel   int       `toml:"parallel"`
	Ignore     GlobPaths `toml:"ignore"`
}
type ConfigCategory struct {
	Label       string   `toml:"label"`
	TitlePrefix string   `toml:"title_prefix"`
	Tags        []string `toml:"tags"`
	Keywords    []string `toml:"keywords"`
	Order       int      `toml:"order"`
}
type ConfigPublish struct {
	DefaultCategory string `toml:"default_category"`
}
type ConfigRemote struct {
	Type string `toml:"type"` // fs or s3
	// fs-specific attributes
	Dir string `toml:"dir"`
	// s3-specific attributes
	Endpoint   string `toml:"endpoint"`
	AccessKey  string `toml:"access_key"`
	SecretKey  string `toml:"secret_key"`
	BucketName string `toml:"bucket"`
	Secure     bool   `toml:"secure"`
	Prefix     string `toml:"prefix"`
}

// SupportExtension checks if the given file extension must be considered.
func (f *ConfigFile) SupportExtension(path string) bool {
	ext := strings.TrimPrefix(filepath.Ext(path), ".") // ".md" => "md"
	for _, extension := range f.Content.Extensions {
		if strings.EqualFold(extension, ext) { // case-insensitive
			return true
		}
	}
	return false
}

// CategoryKeys returns the configured categories sorted by order, then by key.
func (f *ConfigFile) CategoryKeys() []string {
	var keys []string
	for key := range f.Categories {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := f.Categories[keys[i]], f.Categories[keys[j]]
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Category returns the settings of a category.
// Unknown categories get settings derived from their key.
func (f *ConfigFile) Category(key string) ConfigCategory {
	if category, ok := f.Categories[key]; ok {
		return category
	}
	tags := []string{"Daily"}
	if key != "" {
		tags = []string{strings.ToUpper(key[:1]) + key[1:], "Daily"}
	}
	return ConfigCategory{
		Label:       key,
		TitlePrefix: key,
		Tags:        tags,
	}
}

// Labels returns the display label of every category.
func (f *ConfigFile) Labels() map[string]string {
	result := make(map[string]string)
	for key := range f.Categories {
		result[key] = f.Category(key).Label
	}
	return result
}

// ConfigureFSRemote defines a local remote using the file system.
func (f *ConfigFile) ConfigureFSRemote(dir string) *ConfigFile {
	f.Remote = ConfigRemote{
		Type: "fs",
		Dir:  dir,
	}
	return f
}

// ConfigureS3Remote defines a remote using a S3 backend.
func (f *ConfigFile) ConfigureS3Remote(endpoint, bucketName, accessKey, secretKey string) *ConfigFile {
	f.Remote = ConfigRemote{
		Type:       "s3",
		Endpoint:   endpoint,
		BucketName: bucketName,
		AccessKey:  accessKey,
		SecretKey:  secretKey,
	}
	return f
}

type GlobPath string

func (g GlobPath) Negate() bool {
	return strings.HasPrefix(string(g), "!")
}

func (g GlobPath) Expr() string {
	return strings.TrimPrefix(string(g), "!")
}

// Match tests a given path. NB: Directories must have a trailing /.
func (g GlobPath) Match(path string) bool {
	// filepath.Match doesn't support ** (see https://git-scm.com/docs/gitignore)
	if runtime.GOOS == "windows" {
		path = filepath.ToSlash(path)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	expr := g.Expr()
	leadingSlash := strings.HasPrefix(expr, "/")
	trailingSlash := strings.HasSuffix(expr, "/")
	// Ex: "drafts/" => `/drafts/.*?` to match "drafts/01.md" but not "old-drafts/"
	if !leadingSlash {
		expr = "/" + expr
	}
	if trailingSlash {
		expr = expr + "**/"
	}

	parts := strings.Split(expr, "**/")
	var partsPatterns []string
	for _, part := range parts {
		subparts := strings.Split(part, "*")
		for i, subpart := range subparts {
			subparts[i] = regexp.QuoteMeta(subpart)
		}
		partsPatterns = append(partsPatterns, strings.Join(subparts, "[^/]*?")) // * => [^/]*
	}
	pattern := strings.Join(partsPatterns, ".*?") // ** => .*?

	if leadingSlash {
		pattern = "^" + pattern
	}

	rePattern, err := regexp.Compile(pattern)
	if err != nil {
		CurrentLogger().Warnf("Invalid glob pattern %q: %v", g, err)
		return false
	}

	return rePattern.MatchString(path)
}

type GlobPaths []GlobPath

// Match tests if a file path satisfies the conditions.
func (g GlobPaths) Match(path string) bool {
	foundMatch := false
	for _, entry := range g {
		if entry.Match(path) {
			if entry.Negate() {
				// An exclusion matched, the file must no longer be included.
				return false
			}
			foundMatch = true
		}
	}
	return foundMatch
}

/* Main config */

type Config struct {
	// Absolute directory containing daily.toml
	RootDirectory string

	// daily.toml content
	ConfigFile ConfigFile

	// Toggle this flag to skip some side-effects
	DryRun bool
}

// CurrentConfig returns the configuration of the daily site containing the working directory.
// Defaults are used when no daily.toml exists.
func CurrentConfig() *Config {
	configOnce.Do(func() {
		home := currentHome()
		var err error
		configSingleton, err = ReadConfigFromDirectory(home)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to read current configuration: %v\n", err)
			os.Exit(1)
		}
		if configSingleton == nil {
			CurrentLogger().Debugf("No %s found, using default configuration in %s", ConfigFileName, home)
			configSingleton, err = NewConfig(home, DefaultConfig)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Default configuration is broken: %v\n", err)
				os.Exit(1)
			}
		}
	})
	return configSingleton
}

// ResetConfig forces the configuration to be read again.
func ResetConfig() {
	configOnce.Reset()
	configSingleton = nil
}

// SetParallel overrides the number of files processed concurrently.
func (c *Config) SetParallel(parallel int) *Config {
	if parallel > 0 {
		c.ConfigFile.Content.Parallel = parallel
	}
	return c
}

// ContentDir returns the absolute path of the content root.
func (c *Config) ContentDir() string {
	if filepath.IsAbs(c.ConfigFile.Content.Root) {
		return c.ConfigFile.Content.Root
	}
	return filepath.Join(c.RootDirectory, c.ConfigFile.Content.Root)
}

// ManifestPath returns the path of the generated manifest.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.ContentDir(), c.ConfigFile.Content.Manifest)
}

// SiteManifestPath returns the path of the optional hand-authored manifest used for the site metadata.
func (c *Config) SiteManifestPath() string {
	return filepath.Join(c.RootDirectory, c.ConfigFile.Content.Manifest)
}

// MustExcludeFile returns if a path relative to the content root is ignored.
func (c *Config) MustExcludeFile(relativePath string, dir bool) bool {
	relativePath = strings.Trim(filepath.ToSlash(relativePath), "/")
	if dir {
		relativePath += "/"
	}
	return c.ConfigFile.Content.Ignore.Match(relativePath)
}

// Location returns the time zone used to date new posts.
func (c *Config) Location() *time.Location {
	location, err := time.LoadLocation(c.ConfigFile.Content.Timezone)
	if err != nil {
		CurrentLogger().Debugf("Unable to load time zone %q, using %s: %v", c.ConfigFile.Content.Timezone, fallbackLocation, err)
		return fallbackLocation
	}
	return location
}

// Remote instantiates the configured remote.
func (c *Config) Remote() (Remote, error) {
	remote := c.ConfigFile.Remote
	switch remote.Type {
	case "fs":
		dir := remote.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(c.RootDirectory, dir)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		return NewFSRemote(dir)
	case "s3":
		s3Remote, err := NewS3RemoteWithCredentials(remote.Endpoint, remote.BucketName, remote.AccessKey, remote.SecretKey, remote.Secure)
		if err != nil {
			return nil, err
		}
		return s3Remote.WithPrefix(remote.Prefix), nil
	}
	return nil, fmt.Errorf("unsupported remote type %q", remote.Type)
}

// LoadEnv reads the optional .env file of the site and applies the environment overrides.
func (c *Config) LoadEnv() error {
	envPath := filepath.Join(c.RootDirectory, ".env")
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", envPath, err)
	}
	if value, ok := os.LookupEnv(EnvAccessKey); ok {
		c.ConfigFile.Remote.AccessKey = value
	}
	if value, ok := os.LookupEnv(EnvSecretKey); ok {
		c.ConfigFile.Remote.SecretKey = value
	}
	return nil
}

func currentHome() string {
	// Supports overriding the root directory mainly for testing purposes.
	// Ex:
	//
	//   $ env DAILY_HOME=./examples go run ./cmd/daily build
	if path, ok := os.LookupEnv("DAILY_HOME"); ok {
		abspath, err := filepath.Abs(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to evaluate $DAILY_HOME")
			os.Exit(1)
		}
		if _, err := os.Stat(abspath); os.IsNotExist(err) {
			fmt.Fprintln(os.Stderr, "Path in $DAILY_HOME undefined")
			os.Exit(1)
		}
		return abspath
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to determine current directory: %v\n", err)
		os.Exit(1)
	}
	return cwd
}

// ReadConfigFromDirectory loads the configuration by searching for a daily.toml file in the given directory
// or any parent directories. It returns nil when no file is found.
func ReadConfigFromDirectory(path string) (*Config, error) {
	rootPath := path
	i := 0 // Safeguard to not go up too far
	for {
		i++
		if i > maxDepth {
			return nil, nil
		}
		_, err := os.Stat(filepath.Join(rootPath, ConfigFileName))
		if os.IsNotExist(err) {
			parent := filepath.Dir(rootPath)
			if parent == rootPath {
				// Root directory detected
				return nil, nil
			}
			rootPath = parent
		} else if err != nil {
			return nil, fmt.Errorf("error while searching for %s: %w", ConfigFileName, err)
		} else {
			break
		}
	}

	content, err := os.ReadFile(filepath.Join(rootPath, ConfigFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFileName, err)
	}
	config, err := NewConfig(rootPath, string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}
	return config, nil
}

// NewConfig parses a configuration for the site located in the given directory.
func NewConfig(rootPath string, content string) (*Config, error) {
	configFile, err := parseConfigFile(content)
	if err != nil {
		return nil, err
	}
	return &Config{
		RootDirectory: rootPath,
		ConfigFile:    *configFile,
	}, nil
}

func parseConfigFile(content string) (*ConfigFile, error) {
	r := strings.NewReader(content)
	d := toml.NewDecoder(r)
	d.DisallowUnknownFields()
	var result ConfigFile
	if err := d.Decode(&result); err != nil {
		return nil, err
	}
	result.applyDefaults()
	return &result, nil
}

// applyDefaults completes the settings omitted in daily.toml.
func (f *ConfigFile) applyDefaults() {
	if f.Site.Title == "" && f.Site.Description == "" {
		f.Site.Title = "AI / 游戏 日报"
		f.Site.Description = "每天 10 分钟，跟上进展"
	}
	if f.Content.Root == "" {
		f.Content.Root = "public"
	}
	if f.Content.Manifest == "" {
		f.Content.Manifest = "manifest.json"
	}
	if len(f.Content.Extensions) == 0 {
		f.Content.Extensions = []string{"md"}
	}
	if f.Content.Timezone == "" {
		f.Content.Timezone = "Asia/Shanghai"
	}
	if f.Content.Parallel <= 0 {
		f.Content.Parallel = 8
	}
	if len(f.Categories) == 0 {
		f.Categories = map[string]ConfigCategory{
			"ai":   {Label: "AI 日报", TitlePrefix: "AI 日报", Tags: []string{"AI", "Daily"}, Order: 1},
			"game": {Label: "游戏日报", TitlePrefix: "游戏行业速递", Tags: []string{"Game", "Daily"}, Keywords: []string{"🎮", "游戏行业速递"}, Order: 2},
		}
	}
	for key, category := range f.Categories {
		if category.Label == "" {
			category.Label = key
		}
		if category.TitlePrefix == "" {
			category.TitlePrefix = category.Label
		}
		f.Categories[key] = category
	}
	if f.Publish.DefaultCategory == "" {
		if keys := f.CategoryKeys(); len(keys) > 0 {
			f.Publish.DefaultCategory = keys[0]
		}
	}
	if f.Remote.Type == "" {
		f.Remote.Type = "fs"
	}
	if f.Remote.Type == "fs" && f.Remote.Dir == "" {
		f.Remote.Dir = "dist"
	}
}

// InitConfigFromDirectory creates daily.toml with default settings and the content root.
func InitConfigFromDirectory(path string) (*Config, error) {
	currentConfig, err := ReadConfigFromDirectory(path)
	if err != nil {
		return nil, err
	}
	if currentConfig != nil {
		// Do not override current configuration
		return nil, fmt.Errorf("current configuration detected in %s", currentConfig.RootDirectory)
	}

	// Init daily.toml file
	configPath := filepath.Join(path, ConfigFileName)
	err = os.WriteFile(configPath, []byte(strings.TrimLeft(DefaultConfig, "\n")), 0644)
	if err != nil {
		return nil, err
	}

	// Init .gitignore file
	gitIgnorePath := filepath.Join(path, ".gitignore")
	_, err = os.Stat(gitIgnorePath)
	if os.IsNotExist(err) { // Do not override existing file!
		err = os.WriteFile(gitIgnorePath, []byte(strings.TrimLeft(DefaultGitIgnore, "\n")), 0644)
		if err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	// Reread configuration
	config, err := ReadConfigFromDirectory(path)
	if err != nil {
		return nil, err
	}

	// Init content directories
	for _, category := range config.ConfigFile.CategoryKeys() {
		if err := os.MkdirAll(filepath.Join(config.ContentDir(), category), 0755); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// Check validates the settings that cannot be checked when decoding.
func (c *Config) Check() error {
	if _, ok := c.ConfigFile.Categories[c.ConfigFile.Publish.DefaultCategory]; !ok {
		return fmt.Errorf("unknown default category %q", c.ConfigFile.Publish.DefaultCategory)
	}
	for key := range c.ConfigFile.Categories {
		if key == "" || strings.ContainsAny(key, `/\ `) {
			return fmt.Errorf("invalid category key %q", key)
		}
	}
	switch c.ConfigFile.Remote.Type {
	case "fs":
	case "s3":
		if c.ConfigFile.Remote.Endpoint == "" || c.ConfigFile.Remote.BucketName == "" {
			return errors.New("s3 remote requires an endpoint and a bucket")
		}
	default:
		return fmt.Errorf("unsupported remote type %q", c.ConfigFile.Remote.Type)
	}
	return nil
}

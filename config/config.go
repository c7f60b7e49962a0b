package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyRedmineURL    = "redmine.url"
	KeyRedmineAPIKey = "redmine.api_key"

	KeyMailFrom     = "mail.from"
	KeyMailFromName = "mail.from_name"
	KeyMailTo       = "mail.to"
	KeyMailCc       = "mail.cc"

	KeySMTPServer   = "smtp.server"
	KeySMTPPort     = "smtp.port"
	KeySMTPPassword = "smtp.password"

	KeyPathsCSVDirName     = "paths.csv_dir_name"
	KeyPathsPeriodFile     = "paths.period_file"
	KeyPathsMailDir        = "paths.mail_dir"
	KeyPathsSignatureImage = "paths.signature_image"

	KeyLogLevel = "log.level"
)

// envBindings maps config keys to the environment variables the scripts
// have always been driven by.
var envBindings = map[string]string{
	KeyRedmineURL:          "REDMINE_URL",
	KeyRedmineAPIKey:       "API_KEY",
	KeyMailFrom:            "DE",
	KeyMailFromName:        "DE_NAME",
	KeyMailTo:              "PARA",
	KeyMailCc:              "CC",
	KeySMTPServer:          "SMTP_SERVER",
	KeySMTPPort:            "SMTP_PORT",
	KeySMTPPassword:        "SMTP_PASS",
	KeyPathsCSVDirName:     "CSV_DIR_NAME",
	KeyPathsPeriodFile:     "PERIOD_FILE",
	KeyPathsMailDir:        "MAIL_DIR",
	KeyPathsSignatureImage: "SIGNATURE_IMAGE",
	KeyLogLevel:            "LOG_LEVEL",
}

type Config struct {
	Redmine RedmineConfig `mapstructure:"redmine"`
	Mail    MailConfig    `mapstructure:"mail"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
	Paths   PathsConfig   `mapstructure:"paths"`
	Log     LogConfig     `mapstructure:"log"`
}

type RedmineConfig struct {
	URL    string `mapstructure:"url" validate:"required,url"`
	APIKey string `mapstructure:"api_key" validate:"required"`
}

type MailConfig struct {
	From     string `mapstructure:"from" validate:"required,email"`
	FromName string `mapstructure:"from_name"`
	// To and Cc are comma separated lists of "Name <email>" or bare emails.
	To string `mapstructure:"to" validate:"required"`
	Cc string `mapstructure:"cc"`
}

type SMTPConfig struct {
	Server   string `mapstructure:"server" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Password string `mapstructure:"password" validate:"required"`
}

type PathsConfig struct {
	CSVDirName string `mapstructure:"csv_dir_name" validate:"required"`
	// PeriodFile overrides the marker derived from the spreadsheet location.
	PeriodFile     string `mapstructure:"period_file"`
	MailDir        string `mapstructure:"mail_dir" validate:"required"`
	SignatureImage string `mapstructure:"signature_image"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// BindEnv wires every key to its environment variable.
func BindEnv() error {
	return bindEnv(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates the sections every command needs.
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ValidateLoader checks what "load" needs to talk to Redmine.
func ValidateLoader(cfg *Config) error {
	return validateSections(cfg.Redmine)
}

// ValidateReporter checks what "report" needs to resolve titles and send mail.
func ValidateReporter(cfg *Config) error {
	return validateSections(cfg.Redmine, cfg.Mail, cfg.SMTP)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# redhour configuration
# Every value can also come from the environment or a .env file
# (REDMINE_URL, API_KEY, DE, DE_NAME, PARA, CC, SMTP_SERVER, SMTP_PORT, SMTP_PASS, ...).
redmine:
  url: "https://redmine.example.com"
  api_key: ""

mail:
  from: "me@example.com"
  from_name: "Matías Dellafiore"
  to: "Team Lead <lead@example.com>"
  cc: ""

smtp:
  server: "smtp.example.com"
  port: 587
  password: ""

paths:
  csv_dir_name: "CSV Files for Script"
  period_file: ""
  mail_dir: "Mails"
  signature_image: "firma_digital.png"

log:
  level: "info"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.normalize()

	if err := validateSections(cfg.Paths, cfg.Log); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Redmine.URL = strings.TrimRight(strings.TrimSpace(c.Redmine.URL), "/")
	c.Redmine.APIKey = strings.TrimSpace(c.Redmine.APIKey)
	c.Mail.From = strings.TrimSpace(c.Mail.From)
	c.SMTP.Server = strings.TrimSpace(c.SMTP.Server)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
}

func validateSections(sections ...any) error {
	validate := validator.New()
	for _, section := range sections {
		if err := validate.Struct(section); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyMailFromName, "Matías Dellafiore")
	v.SetDefault(KeySMTPPort, 587)
	v.SetDefault(KeyPathsCSVDirName, "CSV Files for Script")
	v.SetDefault(KeyPathsMailDir, "Mails")
	v.SetDefault(KeyPathsSignatureImage, "firma_digital.png")
	v.SetDefault(KeyLogLevel, "info")
}

func bindEnv(v *viper.Viper) error {
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}
	return nil
}

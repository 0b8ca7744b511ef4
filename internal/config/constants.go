package config

// Base application details
const AppName = "docedit"
const ConfigDirName = "docedit"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "docedit.log"

// ConfigHomeEnv overrides the configuration directory.
const ConfigHomeEnv = "DOCEDIT_CONFIG_HOME"

// Document defaults
const DefaultHistoryLimit = 1000
const DefaultKind = "text"

// Spell checking
const DefaultMinWordLength = 2

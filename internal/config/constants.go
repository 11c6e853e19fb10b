package config

import "time"

// Base application details
const AppName = "ebb"
const DefaultConfigFileName = "config.toml"

// UI layout
const StatusBarHeight = 1

// Status bar
const MessageTimeout = 4 * time.Second

// Editing defaults
const DefaultTabWidth = 4
const DefaultScrollMargin = 2

package config

import (
	"github.com/pas-services/pas-profile/internal/logger"
)

// DB holds the database configuration settings.
type DB struct {
	// Engine selects the gorm driver: mysql, postgres or sqlite.
	Engine   string `validate:"required,oneof=mysql postgres sqlite"`
	Extras   string
	Host     string `validate:"required_unless=Engine sqlite"`
	Port     int    `validate:"required_unless=Engine sqlite"`
	User     string
	Password string
	Name     string `validate:"required"` // database name, or the file path for sqlite
}

// Settings holds the options of the framework settings files.
type Settings struct {
	// CacheSeconds is how long a parsed settings file is kept before it is read again.
	// 0 keeps it for the lifetime of the process.
	CacheSeconds int `validate:"gte=0"`
}

// Config overall data structure.
type Config struct {
	DevMode  bool   // enable dev mode for development
	DataPath string `validate:"required"` // base path of the framework data, settings live below it
	DB       DB
	Log      logger.Log
	Settings Settings
	Title    string
}

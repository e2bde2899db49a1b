// Package config reads the service configuration from environment variables.
//
// Parse is generic: it loads an optional .env file with godotenv and fills
// any struct from its env tags with caarlos0/env. Load parses the service
// Config, nesting the Mongo and Redis connection settings, and validates the
// pagination and taxonomy cache bounds.
//
//	cfg := config.MustLoad()
//
// Tests pass variables explicitly instead of touching the process
// environment:
//
//	cfg, err := config.Load(config.WithEnvironment(map[string]string{
//	    "MONGODB_URL": "mongodb://localhost:27017",
//	}))
package config

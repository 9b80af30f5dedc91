// Package config loads engine settings from a YAML file and converts
// them into engine options.
//
//	cfg, err := config.Load("fetchq.yaml")
//	if err != nil { ... }
//	e, err := engine.New(cfg.Options()...)
//
// A config file is never required: every field has a zero value that
// leaves the engine default in place.
package config

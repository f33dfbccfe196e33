// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"reflect"

	"github.com/AntoineBalaine/abc-parse-sub011/cerrs"
)

// Config holds the options cmd/abcfmt loads from disk. Library callers
// (internal/format, internal/transform) never read Config directly; they
// take format.Options / transform args as plain parameters, so Config
// exists only to give the CLI a persistent default (spec.md §6's
// "Persisted state layout: none" binds the core pipeline, not its CLI
// client).
type Config struct {
	AllowConfig bool         `json:"AllowConfig,omitempty"`
	DebugFlags  DebugFlags_t `json:"DebugFlags"`
	Format      Format_t     `json:"Format"`
	Transform   Transform_t  `json:"Transform"`
}

type DebugFlags_t struct {
	LogFile bool `json:"LogFile,omitempty"`
	LogTime bool `json:"LogTime,omitempty"`
	Scanner bool `json:"Scanner,omitempty"`
	Parser  bool `json:"Parser,omitempty"`
}

// Format_t mirrors the Formatted-mode knobs spec.md §4.5 names.
type Format_t struct {
	NoFormat      bool `json:"NoFormat,omitempty"`
	ChordNoteSort bool `json:"ChordNoteSort,omitempty"`
}

// Transform_t carries transform defaults for the CLI when the user doesn't
// pass an override; its only entry is the voice id used by insert-voice.
type Transform_t struct {
	DefaultVoiceID string `json:"DefaultVoiceID,omitempty"`
}

const (
	ErrIsDirectory = cerrs.Error("is directory")
	ErrIsNotAFile  = cerrs.Error("is not a file")
)

func Default() *Config {
	return &Config{
		Format: Format_t{
			ChordNoteSort: true,
		},
		Transform: Transform_t{
			DefaultVoiceID: "V2",
		},
	}
}

func Load(name string, debug bool) (*Config, error) {
	if debug {
		log.Printf("[config] %q: loading configuration...\n", name)
	}
	cfg := Default()
	if sb, err := os.Stat(name); errors.Is(err, os.ErrNotExist) || os.IsNotExist(err) {
		if debug {
			log.Printf("[config] %q: %v\n", name, err)
		}
		return cfg, nil
	} else if sb.Mode().IsDir() {
		return cfg, ErrIsDirectory
	} else if !sb.Mode().IsRegular() {
		return cfg, ErrIsNotAFile
	}

	var tmp Config
	if data, err := os.ReadFile(name); err != nil {
		if debug {
			log.Printf("[config] %q: %v\n", name, err)
		}
		return cfg, nil
	} else if err = json.Unmarshal(data, &tmp); err != nil {
		if debug {
			log.Printf("[config] %q: %v\n", name, err)
		}
		return cfg, nil
	} else if debug {
		if nice, err := json.MarshalIndent(tmp, "", "  "); err == nil {
			log.Printf("[config] %s\n", nice)
		} else {
			log.Printf("[config] %q: loaded %s\n", name, string(data))
		}
	}

	// copy over every value from tmp to config that isn't the default (zero) value
	copyNonZeroFields(&tmp, cfg)

	return cfg, nil
}

// copyNonZeroFields recursively copies non-zero fields from src to dst using reflection
func copyNonZeroFields(src, dst interface{}) {
	srcVal := reflect.ValueOf(src)
	dstVal := reflect.ValueOf(dst)

	// Dereference pointers
	if srcVal.Kind() == reflect.Ptr {
		srcVal = srcVal.Elem()
	}
	if dstVal.Kind() == reflect.Ptr {
		dstVal = dstVal.Elem()
	}

	// Only work with structs
	if srcVal.Kind() != reflect.Struct || dstVal.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < srcVal.NumField(); i++ {
		srcField := srcVal.Field(i)
		dstField := dstVal.Field(i)

		// Skip unexported fields
		if !srcField.CanInterface() || !dstField.CanSet() {
			continue
		}

		// Check if source field is zero value
		if srcField.IsZero() {
			continue
		}

		// Handle different field types
		switch srcField.Kind() {
		case reflect.Struct:
			// Recursively copy struct fields
			copyNonZeroFields(srcField.Interface(), dstField.Addr().Interface())
		default:
			// Copy primitive types and other values
			dstField.Set(srcField)
		}
	}
}

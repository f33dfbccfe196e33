// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package config manages JSON configuration loading for cmd/abcfmt. It holds
// debug flags and the formatter/transform defaults the CLI falls back to
// when a flag isn't passed explicitly. Configuration is loaded from a JSON
// file with sensible defaults; the core pipeline packages never import it.
package config

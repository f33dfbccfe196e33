// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package cerrs defines constant error types using a custom Error string type.
// It centralizes the programmer/API-misuse errors the pipeline packages
// return (a nil Context, an unrecognized tag, a selection with no nodes).
// Per-token and per-node parse problems are not represented here: those
// accumulate into a token.Context's diagnostics sink instead and never
// abort a stage. The Error type supports comparison via errors.Is().
package cerrs

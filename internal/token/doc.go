// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package token defines the token kind enum, the token value (kind,
// lexeme, source position, stable id), and the per-parse Context that
// hands out ids and collects diagnostics across every later stage of the
// pipeline. It is shared by every stage of the pipeline
// (Scanner -> Parser -> CST -> Transforms -> Formatter).
package token

// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package scanner tokenizes ABC notation source into a typed token
// stream. It is a mode-sensitive state machine: the same byte means
// different things depending on which of the file / tune_header /
// tune_body / lyric / symbol_line / info_line / key_info / directive
// modes is active, so the scanner keeps an explicit mode stack rather
// than a single global state. This is the first stage of the pipeline
// (Scanner -> Parser -> CST -> Transforms -> Formatter).
package scanner

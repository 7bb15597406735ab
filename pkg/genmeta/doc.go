// Package genmeta holds the public types shared by the genmeta packages:
// the canonical generation Record, media items and batch results, the
// Logger and retry interfaces, sentinel errors and exit codes.
//
// The extraction engine itself lives under internal/ (document, textblock,
// workflow, extract, prompt). Records produced there are plain maps with a
// fixed vocabulary of well-known keys, so renderers and stores must tolerate
// keys they do not know about.
package genmeta

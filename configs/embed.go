package configs

import "embed"

// Data contains the shipped static agent registry and template catalog files.
//
//go:embed agents.yaml templates.yaml
var Data embed.FS

package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded annotated default configuration.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte

// Package core provides naming helpers for generated configuration files.
package core

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/marketsim/abidesgen/internal/errors"
)

// MaxNameLen is the maximum accepted length for a user-supplied config name.
const MaxNameLen = 100

// ConfigExt is the extension of generated configuration files.
const ConfigExt = ".py"

// SanitizeName validates and normalizes a user-supplied configuration name.
// - a trailing ".py" is accepted and stripped before validation
// - whitespace and filesystem-hostile chars (<>:"/\|?*) collapse to a single underscore
// - the result must contain only [A-Za-z0-9_-]
// - the ".py" extension is appended to the result
// Returns E_INVALID_NAME if the name is empty, too long, or not salvageable.
func SanitizeName(name string) (string, error) {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return "", errors.New(errors.EInvalidName, "configuration name is empty")
	}
	if len(cleaned) > MaxNameLen {
		return "", errors.New(errors.EInvalidName,
			fmt.Sprintf("configuration name too long (max %d characters): %d", MaxNameLen, len(cleaned)))
	}

	cleaned = strings.TrimSuffix(cleaned, ConfigExt)

	var b strings.Builder
	prevUnderscore := false
	for _, r := range cleaned {
		if unicode.IsSpace(r) || strings.ContainsRune(`<>:"/\|?*`, r) {
			if !prevUnderscore {
				b.WriteRune('_')
				prevUnderscore = true
			}
			continue
		}
		b.WriteRune(r)
		prevUnderscore = false
	}

	sanitized := b.String()
	for _, r := range sanitized {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' || r == '-' {
			continue
		}
		return "", errors.New(errors.EInvalidName,
			fmt.Sprintf("configuration name contains invalid characters: %s", name))
	}
	if strings.Trim(sanitized, "_-") == "" {
		return "", errors.New(errors.EInvalidName,
			fmt.Sprintf("configuration name contains no usable characters: %s", name))
	}

	return sanitized + ConfigExt, nil
}

// AutoName builds a configuration name when the user did not supply one:
// abides_<template>_<total>agents_<timestamp> for template-based runs,
// abides_config_<total>agents_<timestamp> for fully custom compositions.
func AutoName(templateName string, totalAgents int, now time.Time) string {
	stamp := now.Format("20060102_150405")
	if templateName != "" {
		return fmt.Sprintf("abides_%s_%dagents_%s%s", templateName, totalAgents, stamp, ConfigExt)
	}
	return fmt.Sprintf("abides_config_%dagents_%s%s", totalAgents, stamp, ConfigExt)
}

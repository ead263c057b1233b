// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package paths resolves the sic-scan configuration directory.
package paths

import (
	"os"
	"path/filepath"
)

// GetConfigDir returns the sic-scan configuration directory.
// SIC_SCAN_CONFIG_DIR overrides the default ~/.sic-scan.
func GetConfigDir() string {
	if dir := os.Getenv("SIC_SCAN_CONFIG_DIR"); dir != "" {
		return dir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".sic-scan"
	}
	return filepath.Join(home, ".sic-scan")
}

// GetConfigFile returns the path to the main config file.
func GetConfigFile() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// GetSuppressionsFile returns the path to the suppressions file.
func GetSuppressionsFile() string {
	return filepath.Join(GetConfigDir(), "suppressions.yaml")
}

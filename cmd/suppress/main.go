// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"os"

	"sic-scan/internal/suppressions"
)

func main() {
	var (
		suppressionFile = flag.String("suppression-file", "", "Path to suppression rules file (default: .sic-scan-suppressions.yaml)")
		action          = flag.String("action", "", "Action to perform: list, remove, cleanup, enable, disable")
		id              = flag.String("id", "", "Suppression rule ID (for remove/enable/disable actions)")
		reason          = flag.String("reason", "", "Reason recorded on the rule (for enable action)")
	)
	flag.Parse()

	if *action == "" {
		fmt.Println("Error: --action is required")
		fmt.Println("Usage: sic-suppress --action <list|remove|cleanup|enable|disable> [options]")
		os.Exit(1)
	}

	manager := suppressions.NewSuppressionManager(*suppressionFile)

	switch *action {
	case "list":
		listSuppressions(manager)
	case "remove":
		requireID(*id, "remove")
		removeSuppression(manager, *id)
	case "cleanup":
		cleanupExpired(manager)
	case "enable":
		requireID(*id, "enable")
		enableSuppression(manager, *id, *reason)
	case "disable":
		requireID(*id, "disable")
		disableSuppression(manager, *id)
	default:
		fmt.Printf("Error: Unknown action '%s'\n", *action)
		fmt.Println("Valid actions: list, remove, cleanup, enable, disable")
		os.Exit(1)
	}
}

func requireID(id, action string) {
	if id == "" {
		fmt.Printf("Error: --id is required for %s action\n", action)
		os.Exit(1)
	}
}

func listSuppressions(manager *suppressions.SuppressionManager) {
	rules := manager.ListSuppressions()
	if len(rules) == 0 {
		fmt.Println("No suppression rules found.")
		return
	}

	fmt.Printf("Found %d suppression rules in %s:\n\n", len(rules), manager.GetConfigPath())
	for _, rule := range rules {
		fmt.Printf("ID: %s\n", rule.ID)
		fmt.Printf("Hash: %s\n", rule.Hash)
		fmt.Printf("Reason: %s\n", rule.Reason)
		fmt.Printf("Enabled: %t\n", rule.Enabled)
		if rule.CreatedBy != "" {
			fmt.Printf("Created By: %s\n", rule.CreatedBy)
		}
		fmt.Printf("Created At: %s\n", rule.CreatedAt.Format("2006-01-02 15:04:05"))
		if rule.ExpiresAt != nil {
			fmt.Printf("Expires At: %s\n", rule.ExpiresAt.Format("2006-01-02 15:04:05"))
		}
		if len(rule.Metadata) > 0 {
			fmt.Println("Metadata:")
			for k, v := range rule.Metadata {
				fmt.Printf("  %s: %s\n", k, v)
			}
		}
		fmt.Println("---")
	}
}

func removeSuppression(manager *suppressions.SuppressionManager, id string) {
	if err := manager.RemoveSuppression(id); err != nil {
		fmt.Printf("Error removing suppression: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully removed suppression rule: %s\n", id)
}

func cleanupExpired(manager *suppressions.SuppressionManager) {
	removed := manager.CleanupExpired()
	fmt.Printf("Cleaned up %d expired suppression rules\n", removed)
}

func enableSuppression(manager *suppressions.SuppressionManager, id, reason string) {
	if err := manager.EnableSuppressionByID(id, reason); err != nil {
		fmt.Printf("Error enabling suppression: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully enabled suppression rule: %s\n", id)
}

func disableSuppression(manager *suppressions.SuppressionManager, id string) {
	if err := manager.DisableSuppressionByID(id); err != nil {
		fmt.Printf("Error disabling suppression: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully disabled suppression rule: %s\n", id)
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// CheckInfo contains standardized information about a check
type CheckInfo struct {
	Name                string             // Name of the check (e.g., "CREDIT_CARD")
	ShortDescription    string             // Short description for the checks list
	DetailedDescription string             // Detailed description of what the check does
	Patterns            []string           // Patterns the check looks for
	SupportedFormats    []string           // Formats or types supported by the check
	ConfidenceFactors   []ConfidenceFactor // Factors affecting confidence
	PositiveKeywords    []string           // Keywords that increase confidence
	NegativeKeywords    []string           // Keywords that decrease confidence
	ConfigurationInfo   string             // Information about how to configure the check
	Examples            []string           // Usage examples
}

// ConfidenceFactor represents a factor that affects confidence scoring
type ConfidenceFactor struct {
	Name        string  // Name of the factor
	Description string  // Description of the factor
	Weight      float64 // Weight of the factor in the confidence score (percentage)
}

// Provider defines the interface for help content providers
type Provider interface {
	GetCheckInfo() CheckInfo
}

// System manages help content for the application
type System struct {
	providers map[string]Provider
	noColor   bool
	colors    map[string]*color.Color
}

// NewSystem creates a new help system
func NewSystem(noColor bool) *System {
	// Disable colors if requested
	if noColor {
		color.NoColor = true
	}

	return &System{
		providers: make(map[string]Provider),
		noColor:   noColor,
		colors: map[string]*color.Color{
			"title":    color.New(color.FgWhite, color.Bold),
			"subtitle": color.New(color.FgCyan, color.Bold),
			"header":   color.New(color.FgBlue, color.Bold),
			"item":     color.New(color.FgCyan),
			"emphasis": color.New(color.FgWhite, color.Bold),
			"positive": color.New(color.FgGreen),
			"negative": color.New(color.FgRed),
			"warning":  color.New(color.FgYellow),
			"example":  color.New(color.FgMagenta),
		},
	}
}

// RegisterProvider adds a help provider to the system
func (h *System) RegisterProvider(provider Provider) {
	info := provider.GetCheckInfo()
	h.providers[strings.ToLower(info.Name)] = provider
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Println("SIC Scan - Personal-Data Screening for Request Records")
	fmt.Println("======================================================")
	fmt.Println()
	h.colors["header"].Println("USAGE:")
	fmt.Println("  sic-scan --file <path-to-file> [options]")
	fmt.Println("  sic-scan --web [--port <port>]  # JSON API server mode")
	fmt.Println()

	h.colors["header"].Println("OPTIONS:")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --file\t<path>\tPath to the input file or directory to scan (CSV, TXT, PDF) (required)")
	fmt.Fprintln(w, "  --column\t<name>\tCSV column holding the request text (default: auto-detect)")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --profile\t<name>\tProfile name to use from config file")
	fmt.Fprintln(w, "  --list-profiles\t\tList available profiles in config file")
	fmt.Fprintln(w, "  --recursive\t\tRecursively scan directories")
	fmt.Fprintln(w, "  --format\t<format>\tOutput format: text, json, csv, yaml (default: text)")
	fmt.Fprintln(w, "  --checks\t<checks>\tSpecific checks to run: CPF,RG,EMAIL,PHONE,ADDRESS,PERSON_NAME,all (default: all)")
	fmt.Fprintln(w, "\t\t\tNote: PERSON_NAME loads the NER model on first use; disable it for faster structure-only scans")
	fmt.Fprintln(w, "  --confidence\t<levels>\tConfidence levels to display: high,medium,low,all (default: all)")
	fmt.Fprintln(w, "  --verbose\t\tDisplay detailed information for each finding")
	fmt.Fprintln(w, "  --debug\t\tEnable debug logging of the scan pipeline")
	fmt.Fprintln(w, "  --output\t<path>\tPath to output file (if not specified, output to stdout)")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --show-match\t\tDisplay the actual matched text in findings (otherwise shows [REDACTED])")
	fmt.Fprintln(w, "  --workers\t<n>\tNumber of parallel record workers (default: 1)")
	fmt.Fprintln(w, "  --suppression-file\t<path>\tPath to suppression rules file (default: .sic-scan-suppressions.yaml)")
	fmt.Fprintln(w, "  --generate-suppressions\t\tGenerate disabled suppression rules for all findings")
	fmt.Fprintln(w, "  --show-suppressed\t\tInclude suppressed findings in output with suppression details")
	fmt.Fprintln(w, "  --quiet\t\tSuppress progress output (useful for scripts and CI/CD)")
	fmt.Fprintln(w, "  --fail-non-public\t\tExit with code 2 when any record is classified non-public (CI gating)")
	fmt.Fprintln(w, "  --web\t\tStart JSON API server mode instead of CLI scanning")
	fmt.Fprintln(w, "  --port\t<port>\tPort for the API server (default: 8080, only used with --web)")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow this help message")
	fmt.Fprintln(w, "  --help checks\t\tList all available checks")
	fmt.Fprintln(w, "  --help <check>\t\tShow detailed help for a specific check")
	w.Flush()

	fmt.Println()
	h.colors["header"].Println("EXAMPLES:")
	fmt.Println("  Basic Usage:")
	h.colors["example"].Println("    sic-scan --file pedidos.csv")
	h.colors["example"].Println("    sic-scan --file pedidos.csv --column \"Texto Mascarado\" --confidence high,medium --verbose")
	fmt.Println("  Configuration and Profiles:")
	h.colors["example"].Println("    sic-scan --file exports/ --recursive --config sic-scan.yaml --profile triagem")
	h.colors["example"].Println("    sic-scan --list-profiles --config sic-scan.yaml")
	fmt.Println("  Publication Gating:")
	h.colors["example"].Println("    sic-scan --file pedidos.csv --fail-non-public --quiet --format json --output report.json")

	fmt.Println()
	h.colors["header"].Println("Suppression Examples:")
	h.colors["example"].Println("  sic-scan --file pedidos.csv --generate-suppressions  # Draft rules for known-public values")
	h.colors["example"].Println("  sic-suppress --action list  # Review existing rules")

	fmt.Println()
	h.colors["header"].Println("Web Server Examples:")
	h.colors["example"].Println("  sic-scan --web  # Start API server on default port")
	h.colors["example"].Println("  sic-scan --web --port 9000  # Start API server on custom port")

	fmt.Println()
	h.colors["header"].Println("CONFIGURATION:")
	fmt.Println("  Default config: ~/.sic-scan/config.yaml")
	fmt.Println("  Project config: sic-scan.yaml or .sic-scan.yaml (in current directory)")
	fmt.Println("  Environment: SIC_SCAN_CONFIG_DIR - Override config directory")
}

// ShowChecksHelp displays information about all available checks
func (h *System) ShowChecksHelp() {
	h.colors["title"].Println("Available Checks in SIC Scan")
	fmt.Println("==============================")
	fmt.Println()
	fmt.Println("The following checks are available for detecting personal data:")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	h.colors["header"].Fprintln(w, "  CHECK\tDESCRIPTION")
	h.colors["header"].Fprintln(w, "  -----\t-----------")

	// Get all check names and sort them alphabetically
	var checkNames []string
	for _, provider := range h.providers {
		info := provider.GetCheckInfo()
		checkNames = append(checkNames, info.Name)
	}

	// Sort alphabetically
	for i := 0; i < len(checkNames); i++ {
		for j := i + 1; j < len(checkNames); j++ {
			if checkNames[i] > checkNames[j] {
				checkNames[i], checkNames[j] = checkNames[j], checkNames[i]
			}
		}
	}

	// Display in alphabetical order
	for _, checkName := range checkNames {
		for _, provider := range h.providers {
			info := provider.GetCheckInfo()
			if info.Name == checkName {
				fmt.Fprintf(w, "  ")
				h.colors["emphasis"].Fprintf(w, "%s", info.Name)
				fmt.Fprintf(w, "\t%s\n", info.ShortDescription)
				break
			}
		}
	}
	w.Flush()

	fmt.Println()
	fmt.Println("For detailed information about a specific check, use:")
	h.colors["example"].Println("  sic-scan --help <check>")
	fmt.Println()

	// Get the first available check name for the example
	var exampleCheck string
	if len(h.providers) > 0 {
		// Find the first check name
		for _, provider := range h.providers {
			info := provider.GetCheckInfo()
			exampleCheck = info.Name
			break
		}
	} else {
		// Fallback if no checks are available
		exampleCheck = "<check>"
	}

	fmt.Println("Example:")
	h.colors["example"].Printf("  sic-scan --help %s\n", exampleCheck)
}

// ShowCheckHelp displays detailed help for a specific check
func (h *System) ShowCheckHelp(checkName string) bool {
	provider, exists := h.providers[strings.ToLower(checkName)]
	if !exists {
		h.colors["negative"].Printf("Error: Check '%s' not found.\n", checkName)
		fmt.Println("Use 'sic-scan --help checks' to see a list of available checks.")
		return false
	}

	info := provider.GetCheckInfo()

	h.colors["title"].Printf("%s Check\n", info.Name)
	fmt.Println(strings.Repeat("=", len(info.Name)+6))
	fmt.Println()
	fmt.Println(info.DetailedDescription)
	fmt.Println()

	// Display patterns
	if len(info.Patterns) > 0 {
		h.colors["header"].Println("PATTERNS DETECTED:")
		for _, pattern := range info.Patterns {
			fmt.Print("  - ")
			h.colors["item"].Println(pattern)
		}
		fmt.Println()
	}

	// Display supported formats
	if len(info.SupportedFormats) > 0 {
		h.colors["header"].Println("SUPPORTED FORMATS:")
		for _, format := range info.SupportedFormats {
			fmt.Print("  - ")
			h.colors["item"].Println(format)
		}
		fmt.Println()
	}

	// Display confidence scoring
	h.colors["header"].Println("CONFIDENCE SCORING:")

	// Group factors by category
	categories := make(map[string][]ConfidenceFactor)
	for _, factor := range info.ConfidenceFactors {
		category := "Other"
		if strings.Contains(strings.ToLower(factor.Name), "format") ||
			strings.Contains(strings.ToLower(factor.Name), "length") ||
			strings.Contains(strings.ToLower(factor.Name), "pattern") ||
			strings.Contains(strings.ToLower(factor.Name), "valid") {
			category = "Format Validation"
		} else if strings.Contains(strings.ToLower(factor.Name), "test") ||
			strings.Contains(strings.ToLower(factor.Name), "sequential") {
			category = "Pattern Analysis"
		} else if strings.Contains(strings.ToLower(factor.Name), "context") ||
			strings.Contains(strings.ToLower(factor.Name), "keyword") {
			category = "Contextual Analysis"
		}
		categories[category] = append(categories[category], factor)
	}

	// Print factors by category
	categoryOrder := []string{"Format Validation", "Pattern Analysis", "Contextual Analysis", "Other"}

	totalWeight := 0.0
	for _, category := range categoryOrder {
		factors, exists := categories[category]
		if !exists || len(factors) == 0 {
			continue
		}

		// Calculate category weight
		categoryWeight := 0.0
		for _, factor := range factors {
			categoryWeight += factor.Weight
		}

		h.colors["emphasis"].Printf("1. %s ", category)
		fmt.Printf("(%.0f%% of base score):\n", categoryWeight)
		for _, factor := range factors {
			fmt.Printf("   - ")
			h.colors["item"].Printf("%s ", factor.Name)
			fmt.Printf("(%.0f%%): %s\n", factor.Weight, factor.Description)
		}

		totalWeight += categoryWeight
		fmt.Println()
	}

	// Display contextual analysis
	if len(info.PositiveKeywords) > 0 || len(info.NegativeKeywords) > 0 {
		h.colors["subtitle"].Println("Contextual Analysis (up to +25% or -50% adjustment):")

		if len(info.PositiveKeywords) > 0 {
			fmt.Print("   - Positive keywords (+5% each): ")
			h.colors["positive"].Printf("%s",
				strings.Join(info.PositiveKeywords[:min(5, len(info.PositiveKeywords))], ", "))
			if len(info.PositiveKeywords) > 5 {
				fmt.Println("\n     and others...")
			} else {
				fmt.Println()
			}
		}

		if len(info.NegativeKeywords) > 0 {
			fmt.Print("   - Negative keywords (-10% each): ")
			h.colors["negative"].Printf("%s",
				strings.Join(info.NegativeKeywords[:min(5, len(info.NegativeKeywords))], ", "))
			if len(info.NegativeKeywords) > 5 {
				fmt.Println("\n     and others...")
			} else {
				fmt.Println()
			}
		}
		fmt.Println()
	}

	// Display confidence levels
	h.colors["header"].Println("Confidence Levels:")
	fmt.Print("- ")
	h.colors["negative"].Print("HIGH")
	fmt.Println(" (90-100%): Very likely to be personal data")
	fmt.Print("- ")
	h.colors["warning"].Print("MEDIUM")
	fmt.Println(" (60-89%): Possibly personal data")
	fmt.Print("- ")
	h.colors["positive"].Print("LOW")
	fmt.Println(" (0-59%): Likely not personal data or a false positive")
	fmt.Println()

	// Display configuration information if available
	if info.ConfigurationInfo != "" {
		h.colors["header"].Println("CONFIGURATION:")
		fmt.Println(info.ConfigurationInfo)
		fmt.Println()
	}

	// Display examples
	if len(info.Examples) > 0 {
		h.colors["header"].Println("EXAMPLES:")
		for _, example := range info.Examples {
			fmt.Print("  ")
			h.colors["example"].Println(example)
		}
	}

	return true
}

// Helper function for min
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"sic-scan/internal/config"
	"sic-scan/internal/core"
	"sic-scan/internal/detector"
	"sic-scan/internal/help"
	"sic-scan/internal/ner"
	"sic-scan/internal/records"
	"sic-scan/internal/suppressions"
	"sic-scan/internal/validators/address"
	"sic-scan/internal/validators/cpf"
	"sic-scan/internal/validators/email"
	"sic-scan/internal/validators/personname"
	"sic-scan/internal/validators/phone"
	"sic-scan/internal/validators/rg"
	"sic-scan/internal/version"
	"sic-scan/internal/web"

	"sic-scan/internal/formatters"
	_ "sic-scan/internal/formatters/csv"
	_ "sic-scan/internal/formatters/json"
	_ "sic-scan/internal/formatters/text"
	_ "sic-scan/internal/formatters/yaml"

	"golang.org/x/term"
)

// configFlags holds command line flag values
type configFlags struct {
	outputFormat     string
	confidenceLevels string
	checksToRun      string
	column           string
	workers          int
	verbose          bool
	debug            bool
	quiet            bool
	noColor          bool
	recursive        bool
	showMatch        bool
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	format           string
	confidenceLevels string
	checksToRun      string
	column           string
	workers          int
	verbose          bool
	debug            bool
	quiet            bool
	noColor          bool
	recursive        bool
	showMatch        bool
}

// resolveConfiguration resolves final configuration values from config file,
// profile, and command line flags. Precedence: built-in default, then config
// file, then profile, then an explicitly set flag.
func resolveConfiguration(cfg *config.Config, activeProfile *config.Profile, flags *configFlags) *finalConfiguration {
	final := &finalConfiguration{}

	// Format
	final.format = "text"
	if cfg != nil && cfg.Defaults.Format != "" {
		final.format = cfg.Defaults.Format
	}
	if activeProfile != nil && activeProfile.Format != "" {
		final.format = activeProfile.Format
	}
	if isFlagSet("format") && flags.outputFormat != "" {
		final.format = flags.outputFormat
	}

	// Confidence levels
	final.confidenceLevels = "all"
	if cfg != nil && cfg.Defaults.ConfidenceLevels != "" {
		final.confidenceLevels = cfg.Defaults.ConfidenceLevels
	}
	if activeProfile != nil && activeProfile.ConfidenceLevels != "" {
		final.confidenceLevels = activeProfile.ConfidenceLevels
	}
	if isFlagSet("confidence") && flags.confidenceLevels != "" {
		final.confidenceLevels = flags.confidenceLevels
	}

	// Checks to run
	final.checksToRun = "all"
	if cfg != nil && cfg.Defaults.Checks != "" {
		final.checksToRun = cfg.Defaults.Checks
	}
	if activeProfile != nil && activeProfile.Checks != "" {
		final.checksToRun = activeProfile.Checks
	}
	if isFlagSet("checks") && flags.checksToRun != "" {
		final.checksToRun = flags.checksToRun
	}

	// CSV text column
	if cfg != nil {
		final.column = cfg.Defaults.Column
	}
	if activeProfile != nil && activeProfile.Column != "" {
		final.column = activeProfile.Column
	}
	if isFlagSet("column") {
		final.column = flags.column
	}

	// Workers
	final.workers = 1
	if cfg != nil && cfg.Defaults.Workers > 0 {
		final.workers = cfg.Defaults.Workers
	}
	if activeProfile != nil && activeProfile.Workers > 0 {
		final.workers = activeProfile.Workers
	}
	if isFlagSet("workers") && flags.workers > 0 {
		final.workers = flags.workers
	}

	// Verbose
	if cfg != nil {
		final.verbose = cfg.Defaults.Verbose
	}
	if activeProfile != nil {
		final.verbose = activeProfile.Verbose
	}
	if isFlagSet("verbose") {
		final.verbose = flags.verbose
	}

	// Debug
	if cfg != nil {
		final.debug = cfg.Defaults.Debug
	}
	if activeProfile != nil {
		final.debug = activeProfile.Debug
	}
	if isFlagSet("debug") {
		final.debug = flags.debug
	}

	// Quiet
	if cfg != nil {
		final.quiet = cfg.Defaults.Quiet
	}
	if activeProfile != nil {
		final.quiet = activeProfile.Quiet
	}
	if isFlagSet("quiet") {
		final.quiet = flags.quiet
	}

	// No color
	if cfg != nil {
		final.noColor = cfg.Defaults.NoColor
	}
	if activeProfile != nil {
		final.noColor = activeProfile.NoColor
	}
	if isFlagSet("no-color") {
		final.noColor = flags.noColor
	}
	// Piped output never gets ANSI colors
	if !isTerminal(os.Stdout) {
		final.noColor = true
	}

	// Recursive
	if cfg != nil {
		final.recursive = cfg.Defaults.Recursive
	}
	if activeProfile != nil {
		final.recursive = activeProfile.Recursive
	}
	if isFlagSet("recursive") {
		final.recursive = flags.recursive
	}

	// Show match
	if cfg != nil {
		final.showMatch = cfg.Defaults.ShowMatch
	}
	if activeProfile != nil {
		final.showMatch = activeProfile.ShowMatch
	}
	if isFlagSet("show-match") {
		final.showMatch = flags.showMatch
	}

	return final
}

// handleProfiles resolves the active profile and handles --list-profiles.
func handleProfiles(cfg *config.Config, listProfiles bool, profileName string) *config.Profile {
	if listProfiles {
		profiles := cfg.ListProfiles()
		if len(profiles) == 0 {
			fmt.Println("No profiles found in configuration.")
		} else {
			fmt.Println("Available profiles:")
			for _, name := range profiles {
				profile := cfg.GetProfile(name)
				if profile != nil && profile.Description != "" {
					fmt.Printf("  %s - %s\n", name, profile.Description)
				} else {
					fmt.Printf("  %s\n", name)
				}
			}
		}
		os.Exit(0)
	}

	if profileName == "" {
		return nil
	}

	profile := cfg.GetProfile(profileName)
	if profile == nil {
		fmt.Fprintf(os.Stderr, "Error: Profile '%s' not found in configuration\n", profileName)
		fmt.Fprintf(os.Stderr, "Use --list-profiles to see available profiles\n")
		os.Exit(1)
	}
	return profile
}

// buildHelpSystem registers every check's help provider.
func buildHelpSystem(noColor bool) *help.System {
	system := help.NewSystem(noColor)
	system.RegisterProvider(cpf.NewValidator())
	system.RegisterProvider(rg.NewValidator())
	system.RegisterProvider(email.NewValidator())
	system.RegisterProvider(phone.NewValidator())
	system.RegisterProvider(address.NewValidator())
	system.RegisterProvider(personname.NewValidator(ner.Default()))
	return system
}

func main() {
	inputFile := flag.String("file", "", "Path to the input file or directory to scan (CSV, TXT, PDF)")
	column := flag.String("column", "", "CSV column holding the request text (default: auto-detect)")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	profileName := flag.String("profile", "", "Profile name to use from config file")
	listProfiles := flag.Bool("list-profiles", false, "List available profiles in config file")
	outputFormat := flag.String("format", "", "Output format: text, json, csv, yaml (default: text)")
	confidenceLevels := flag.String("confidence", "", "Confidence levels to display: high, medium, low, or combinations like 'high,medium'")
	checksToRun := flag.String("checks", "", "Specific checks to run: CPF, RG, EMAIL, PHONE, ADDRESS, PERSON_NAME, or combinations like 'CPF,EMAIL'")
	verbose := flag.Bool("verbose", false, "Display detailed information for each finding")
	debug := flag.Bool("debug", false, "Enable debug logging of the scan pipeline")
	outputFile := flag.String("output", "", "Path to output file (if not specified, output to stdout)")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	showHelp := flag.Bool("help", false, "Show help information")
	showVersion := flag.Bool("version", false, "Show version information")
	showMatch := flag.Bool("show-match", false, "Display the actual matched text in findings")
	recursive := flag.Bool("recursive", false, "Recursively scan directories")
	workers := flag.Int("workers", 0, "Number of parallel record workers (default: 1)")
	suppressionFile := flag.String("suppression-file", "", "Path to suppression rules file (default: .sic-scan-suppressions.yaml)")
	generateSuppressions := flag.Bool("generate-suppressions", false, "Generate disabled suppression rules for all findings")
	showSuppressed := flag.Bool("show-suppressed", false, "Include suppressed findings in output with suppression details")
	quiet := flag.Bool("quiet", false, "Suppress progress output (useful for scripts and CI/CD)")
	failNonPublic := flag.Bool("fail-non-public", false, "Exit with code 2 when any record is classified non-public (CI gating)")
	webMode := flag.Bool("web", false, "Start JSON API server mode instead of CLI scanning")
	webPort := flag.String("port", "8080", "Port for the API server (default: 8080)")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if *showHelp {
		helpSystem := buildHelpSystem(*noColor || !isTerminal(os.Stdout))
		args := flag.Args()
		switch {
		case len(args) > 0 && strings.EqualFold(args[0], "checks"):
			helpSystem.ShowChecksHelp()
		case len(args) > 0:
			if !helpSystem.ShowCheckHelp(args[0]) {
				os.Exit(1)
			}
		default:
			helpSystem.ShowGeneralHelp()
		}
		os.Exit(0)
	}

	if *webMode {
		if err := handleWebMode(*webPort, flag.Args(), *inputFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg := config.LoadConfigOrDefault(*configFile)
	activeProfile := handleProfiles(cfg, *listProfiles, *profileName)

	flags := &configFlags{
		outputFormat:     *outputFormat,
		confidenceLevels: *confidenceLevels,
		checksToRun:      *checksToRun,
		column:           *column,
		workers:          *workers,
		verbose:          *verbose,
		debug:            *debug,
		quiet:            *quiet,
		noColor:          *noColor,
		recursive:        *recursive,
		showMatch:        *showMatch,
	}
	finalConfig := resolveConfiguration(cfg, activeProfile, flags)

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Error: --file is required")
		fmt.Fprintln(os.Stderr, "Usage: sic-scan --file <path> [options]")
		fmt.Fprintln(os.Stderr, "Use --help for more information")
		os.Exit(1)
	}

	formatter, exists := formatters.Get(finalConfig.format)
	if !exists {
		fmt.Fprintf(os.Stderr, "Error: Unknown output format '%s'\n", finalConfig.format)
		fmt.Fprintf(os.Stderr, "Available formats: %s\n", strings.Join(formatters.List(), ", "))
		os.Exit(1)
	}

	sources, err := records.Discover(*inputFile, finalConfig.recursive, finalConfig.column)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	batch, err := records.Collect(sources)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(batch) == 0 {
		fmt.Fprintln(os.Stderr, "No records to scan.")
		os.Exit(0)
	}

	suppressionManager := suppressions.NewSuppressionManager(*suppressionFile)

	showProgress := !finalConfig.quiet && !finalConfig.debug && isTerminal(os.Stderr)
	var progress func(completed, total int, currentRecord string)
	if showProgress {
		progress = func(completed, total int, currentRecord string) {
			fmt.Fprintf(os.Stderr, "\rScanning records... (%d/%d)", completed, total)
			if completed == total {
				fmt.Fprintln(os.Stderr)
			}
		}
	}

	scanConfig := core.ScanConfig{
		Checks:             strings.Split(finalConfig.checksToRun, ","),
		Workers:            finalConfig.workers,
		Debug:              finalConfig.debug,
		Config:             cfg,
		Profile:            activeProfile,
		SuppressionManager: suppressionManager,
		ProgressCallback:   progress,
	}

	scanResult, err := core.ScanRecords(batch, scanConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *generateSuppressions {
		var allMatches []detector.Match
		for _, result := range scanResult.Results {
			allMatches = append(allMatches, result.Matches...)
		}
		if err := suppressionManager.GenerateSuppressionRules(allMatches, "Generated from scan", false); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not generate suppression rules: %v\n", err)
		} else if !finalConfig.quiet {
			fmt.Fprintf(os.Stderr, "Generated suppression rules for %d findings in %s (disabled; review and enable)\n",
				len(allMatches), suppressionManager.GetConfigPath())
		}
	}

	options := formatters.FormatterOptions{
		ConfidenceLevel: core.ParseConfidenceLevels(finalConfig.confidenceLevels),
		Verbose:         finalConfig.verbose,
		NoColor:         finalConfig.noColor,
		ShowMatch:       finalConfig.showMatch,
		ShowSuppressed:  *showSuppressed,
	}

	output, err := formatter.Format(scanResult, options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, []byte(output), 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		if !finalConfig.quiet {
			fmt.Fprintf(os.Stderr, "Results written to %s\n", *outputFile)
		}
	} else {
		fmt.Print(output)
	}

	// Matched values are personal data; wipe them once the report is out
	for i := range scanResult.Results {
		for j := range scanResult.Results[i].Matches {
			scanResult.Results[i].Matches[j].Clear()
		}
	}

	if *failNonPublic && scanResult.NonPublicCount > 0 {
		os.Exit(2)
	}
}

// handleWebMode validates the flag surface and starts the API server.
func handleWebMode(port string, args []string, inputFile string) error {
	if len(args) > 0 || inputFile != "" {
		return fmt.Errorf("--web cannot be combined with file arguments; the server accepts records over HTTP")
	}

	finalPort, err := findAvailablePort(port)
	if err != nil {
		return fmt.Errorf("port validation failed: %w", err)
	}

	return web.NewServer(finalPort).Start()
}

// findAvailablePort checks the requested port and falls back to the
// 8080-8089 range when it is taken.
func findAvailablePort(requestedPort string) (string, error) {
	port, err := validatePort(requestedPort)
	if err != nil {
		return "", err
	}

	if isPortAvailable(port) {
		return port, nil
	}

	basePort := 8080
	for i := 0; i < 10; i++ {
		alternativePort := strconv.Itoa(basePort + i)
		if isPortAvailable(alternativePort) {
			fmt.Fprintf(os.Stderr, "Warning: Port %s is not available, using port %s instead\n", requestedPort, alternativePort)
			return alternativePort, nil
		}
	}

	return "", fmt.Errorf("no available ports found in range 8080-8089")
}

// validatePort validates that the port string is a usable port number.
func validatePort(portStr string) (string, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", fmt.Errorf("invalid port format '%s': must be a number", portStr)
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}
	if port < 1024 && os.Geteuid() != 0 {
		return "", fmt.Errorf("port %d requires root privileges (ports below 1024 are privileged)", port)
	}
	return portStr, nil
}

// isPortAvailable checks if a port is available for binding.
func isPortAvailable(port string) bool {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return false
	}
	listener.Close()
	return true
}

// isFlagSet checks whether a flag was explicitly provided on the command line.
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isTerminal checks if the file descriptor is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

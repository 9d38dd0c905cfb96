package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeviz/internal/ble"
	"github.com/SeamusWaldron/cubeviz/internal/live"
)

const scanTimeout = 5 * time.Second

var scanAttempts int

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List nearby GoCube devices",
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().IntVar(&scanAttempts, "attempts", 3, "Number of scans before giving up")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	results, err := scanWithRetry(cmd.Context(), scanAttempts)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		printNoDevices()
		return nil
	}

	last := cfg().LastDeviceID
	for _, r := range results {
		marker := " "
		if r.ID == last {
			marker = "*"
		}
		fmt.Printf("%s %-20s %-40s %4d dBm\n", marker, r.Name, r.ID, r.RSSI)
	}
	return nil
}

// scanWithRetry scans up to attempts times until a GoCube shows up. On
// macOS discovery sometimes needs more than one scan.
func scanWithRetry(ctx context.Context, attempts int) ([]ble.ScanResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	fmt.Println("Scanning for GoCube devices...")

	var lastErr error
	for attempt := 1; attempt <= max(attempts, 1); attempt++ {
		results, err := live.Scan(ctx, scanTimeout)
		if err != nil {
			lastErr = err
			fmt.Printf("Scan %d failed: %v\n", attempt, err)
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
		if attempt < attempts {
			fmt.Printf("Scan %d: No devices found, retrying...\n", attempt)
		}
	}
	if lastErr != nil {
		return nil, fmt.Errorf("BLE not available: %w", lastErr)
	}
	return nil, nil
}

func printNoDevices() {
	fmt.Println("No GoCube devices found.")
	fmt.Println()
	fmt.Println("To fix this:")
	fmt.Println("  1. Rotate your cube to wake it up")
	fmt.Println("  2. Make sure it's not connected to your phone")
	fmt.Println("  3. Run this command again")
}

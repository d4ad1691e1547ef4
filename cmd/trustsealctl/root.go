package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "trustsealctl",
	Short: "TrustSeal credential service control tool",
	Long:  `Run and manage the TrustSeal credential issuance and verification server.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}

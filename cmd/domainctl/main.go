// domainctl is the command-line interface for the custom domain lifecycle API.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kanakkholwal/custom-domain-sdk/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is overridden by goreleaser via -ldflags "-X main.version=...".
var version = "dev"

var apiURL string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "domainctl",
	Short: "Manage custom domains on the edge platform",
	Long: `domainctl drives a custom domain through its lifecycle:

register the domain, publish the verification TXT record, point the domain
at the edge via CNAME, provision SSL, and poll until it is active.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		viper.SetEnvPrefix("domainctl")
		viper.AutomaticEnv()
		if apiURL == "" {
			apiURL = viper.GetString("api_url")
		}
		if apiURL == "" {
			apiURL = "http://localhost:8080"
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "lifecycle API base URL (default http://localhost:8080)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(dnsCmd)
	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(versionCmd)
}

func apiClient() *client.Client {
	return client.New(apiURL, 15*time.Second)
}

// printInstructions renders an Instructions projection for the terminal.
func printInstructions(inst *client.Instructions) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Hostname:\t%s\n", inst.Hostname)
	fmt.Fprintf(w, "Status:\t%s\n", inst.Status)
	fmt.Fprintf(w, "Next step:\t%s\n", inst.Message)
	if inst.Verification != nil {
		fmt.Fprintf(w, "Publish %s record:\t%s\t->\t%s\n",
			inst.Verification.Type, inst.Verification.Name, inst.Verification.Value)
	}
	if inst.Provisioning != nil {
		fmt.Fprintf(w, "Publish %s record:\t%s\t->\t%s\n",
			inst.Provisioning.Type, inst.Provisioning.Name, inst.Provisioning.Value)
	}
	w.Flush() //nolint:errcheck
}

func runOp(op func(context.Context, string) (*client.Instructions, error), hostname string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	inst, err := op(ctx, hostname)
	if err != nil {
		return err
	}
	printInstructions(inst)
	return nil
}

var addCmd = &cobra.Command{
	Use:   "add <hostname>",
	Short: "Register a custom domain and print the verification TXT record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(apiClient().CreateDomain, args[0])
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <hostname>",
	Short: "Show the current lifecycle status of a domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(apiClient().GetStatus, args[0])
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <hostname>",
	Short: "Check the ownership TXT record and mark the domain verified",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(apiClient().CheckVerification, args[0])
	},
}

var dnsCmd = &cobra.Command{
	Use:   "dns <hostname>",
	Short: "Print the CNAME record pointing the domain at the edge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(apiClient().GetDNSInstructions, args[0])
	},
}

var provisionCmd = &cobra.Command{
	Use:   "provision <hostname>",
	Short: "Request SSL provisioning at the edge provider",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(apiClient().ProvisionDomain, args[0])
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync <hostname>",
	Short: "Poll the provider and reconcile the domain's status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOp(apiClient().SyncStatus, args[0])
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the domainctl version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("domainctl", version)
	},
}

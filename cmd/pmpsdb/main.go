// Package main is the entrypoint for the pmpsdb CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	pmpsdb "github.com/ZLLentz/pmpsdb-client"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flags
var (
	verbose     bool
	directory   string
	timeout     time.Duration
	configFiles []string
	asName      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pmpsdb",
	Short: "PMPS database deployment helpers",
	Long: `pmpsdb reads database export files from and writes them to the FTP
servers on the PMPS PLCs. Hostnames can be given directly or loaded
from YAML host configuration files with --config.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		pmpsdb.SetDebugLogging(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug statements")
	rootCmd.PersistentFlags().StringVar(&directory, "dir", "", "FTP subdirectory to use instead of pmps")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Connection and login timeout")
	rootCmd.PersistentFlags().StringArrayVar(&configFiles, "config", nil, "YAML file mapping hostnames to IOC prefixes (repeatable)")

	uploadCmd.Flags().StringVar(&asName, "as", "", "Filename to store on the PLC instead of the local base name")
	compareCmd.Flags().StringVar(&asName, "as", "", "Filename on the PLC instead of the local base name")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(hostsCmd)
}

func newClient() *pmpsdb.Client {
	return pmpsdb.New(pmpsdb.Config{
		Timeout:   timeout,
		Directory: directory,
	})
}

var listCmd = &cobra.Command{
	Use:   "list <hostname>",
	Short: "List the PLC's database files and their info",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := newClient().ListFileInfo(cmd.Context(), args[0], directory)
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), "No files found")
			return nil
		}
		for _, info := range infos {
			fmt.Fprintf(cmd.OutOrStdout(), "%s uploaded at %s (%d bytes)\n",
				info.Filename, info.CreateTime.Format("Mon Jan  2 15:04:05 2006"), info.Size)
		}
		return nil
	},
}

var downloadCmd = &cobra.Command{
	Use:   "download <hostname> <filename>",
	Short: "Download a PLC file to stdout",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := newClient().DownloadText(cmd.Context(), args[0], args[1], directory)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload <hostname> <local-file>",
	Short: "Upload a local database export to the PLC",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newClient().UploadFile(cmd.Context(), args[0], args[1], asName, directory)
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <hostname> <local-file>",
	Short: "Compare a local database export with the PLC's copy",
	Long: `Compare a local database export with the PLC's copy. Exits non-zero
when the two differ.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		same, err := newClient().Compare(cmd.Context(), args[0], args[1], asName, directory)
		if err != nil {
			return err
		}
		if !same {
			return fmt.Errorf("%s is different on the PLC", args[1])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is the same locally and on the PLC\n", args[1])
		return nil
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync <hostname> <local-file>",
	Short: "Upload a local export if the PLC's copy is out of date, then verify",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := newClient().SyncFile(cmd.Context(), args[0], args[1], directory)
		if err != nil {
			return err
		}
		if result.Uploaded {
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s to %s (%d bytes, verified)\n",
				result.Filename, result.Hostname, result.Size)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is already up to date on %s\n",
				result.Filename, result.Hostname)
		}
		return nil
	},
}

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "List the PLCs named by the --config files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(configFiles) == 0 {
			return fmt.Errorf("no host configuration files given (use --config)")
		}
		hosts, err := pmpsdb.LoadHostConfig(configFiles...)
		if err != nil {
			return err
		}
		for _, name := range hosts.Hostnames() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, hosts[name])
		}
		return nil
	},
}

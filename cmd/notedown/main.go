// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notedown CLI, which exports
// OneNote notebooks to Markdown files via the Microsoft Graph API and
// keeps a local full-text index over the result.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notedown/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the notedown CLI.
var rootCmd = &cobra.Command{
	Use:   "notedown",
	Short: "Export OneNote notebooks to Markdown",
	Long: `notedown exports Microsoft OneNote notebooks to plain Markdown files via
the Microsoft Graph API. Each section becomes a directory and each page a
Markdown file; a conversion cache makes repeated runs incremental, so an
interrupted export picks up where it left off.

Use "list" to see available notebooks, "convert" to export one, "cache clear"
to reset conversion progress, and "index" to build and search a local
full-text index over the exported files.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./notedown.yaml or ~/.config/notedown/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notedown")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notedown"))
		}
	}

	viper.SetEnvPrefix("NOTEDOWN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// stringSetting resolves a string setting: an explicitly set flag wins,
// then the config file or environment, then the flag default.
func stringSetting(cmd *cobra.Command, flag, viperKey string) string {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	if v := viper.GetString(viperKey); v != "" {
		return v
	}
	v, _ := cmd.Flags().GetString(flag)
	return v
}

// durationSetting resolves a duration setting with the same precedence as
// stringSetting.
func durationSetting(cmd *cobra.Command, flag, viperKey string) time.Duration {
	if cmd.Flags().Changed(flag) {
		v, _ := cmd.Flags().GetDuration(flag)
		return v
	}
	if v := viper.GetDuration(viperKey); v > 0 {
		return v
	}
	v, _ := cmd.Flags().GetDuration(flag)
	return v
}

// resolveToken returns the Graph bearer token, in precedence order: the
// --token flag, the config file or NOTEDOWN_GRAPH_TOKEN environment
// variable, the .secrets/graph-token file, and finally an interactive
// prompt.
func resolveToken(cmd *cobra.Command) (string, error) {
	if t, _ := cmd.Flags().GetString("token"); t != "" {
		return t, nil
	}
	if t := viper.GetString("graph.token"); t != "" {
		return t, nil
	}
	if t := loadedSecrets["graph-token"]; t != "" {
		return t, nil
	}
	return promptToken(os.Stdin, os.Stderr)
}

// promptToken asks the user to paste a Microsoft Graph access token.
func promptToken(r io.Reader, w io.Writer) (string, error) {
	fmt.Fprintln(w, "A Microsoft Graph access token is required.")
	fmt.Fprintln(w, "Visit https://developer.microsoft.com/en-us/graph/graph-explorer,")
	fmt.Fprintln(w, "sign in, and copy the token from the \"Access token\" tab.")
	fmt.Fprint(w, "Paste your access token: ")

	line, err := bufio.NewReader(r).ReadString('\n')
	token := strings.TrimSpace(line)
	if token == "" {
		if err != nil {
			return "", fmt.Errorf("reading token: %w", err)
		}
		return "", fmt.Errorf("no access token provided")
	}
	return token, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package cmd command line tools of covenant verifiers
package cmd

import (
	"fmt"
	"os"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"github.com/Laisky/go-covenant/config"
	"github.com/Laisky/go-covenant/log"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "covenant",
	Short: "verify spends of social recovery covenants",
	Args:  NoExtraArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer func() {
		_ = log.Shared.Sync()
	}()

	if err := rootCmd.Execute(); err != nil {
		log.Shared.Error("run command", zap.Error(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "settings file, yaml/json/toml")
	rootCmd.PersistentFlags().Bool(config.KeyDebug, false, "debug")
	rootCmd.PersistentFlags().String(config.KeyScheme, "", "signature scheme, secp256k1-schnorr or ed25519-schnorr")
	rootCmd.PersistentFlags().String("hash", "", "commitment hash, sha256 or blake256")
	rootCmd.PersistentFlags().Int("workers", 0, "concurrent verifications")
}

func setup(cmd *cobra.Command) error {
	if configFile != "" {
		if err := config.Shared.LoadFromFile(configFile); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	for key, name := range map[string]string{
		config.KeyDebug:    config.KeyDebug,
		config.KeyScheme:   config.KeyScheme,
		config.KeyHashType: "hash",
		config.KeyWorkers:  "workers",
	} {
		flag := flags.Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}

		if err := config.Shared.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "bind flag %q", name)
		}
	}

	logger, err := config.Shared.Logger("covenant")
	if err != nil {
		return errors.Wrap(err, "new logger")
	}
	log.Shared = logger

	return nil
}

// NoExtraArgs make sure every args has been processed
//
// do not allow any un processed args
func NoExtraArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown args `%v`", args)
	}

	return nil
}

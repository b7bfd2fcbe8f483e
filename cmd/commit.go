package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/Laisky/errors/v2"
	"github.com/spf13/cobra"

	"github.com/Laisky/go-covenant/config"
	gcrypto "github.com/Laisky/go-covenant/crypto"
	"github.com/Laisky/go-covenant/recovery"
)

var commitArgs struct {
	contractFile string
	pubkey       string
	value        uint64
}

// Commit print the commitment a rotation must declare
var Commit = &cobra.Command{
	Use:   "commit",
	Short: "print the output commitment for re-locking --value under --pubkey",
	Args:  NoExtraArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommit(cmd.OutOrStdout(), config.Shared,
			commitArgs.contractFile, commitArgs.pubkey, commitArgs.value)
	},
}

func init() {
	rootCmd.AddCommand(Commit)
	Commit.Flags().StringVarP(&commitArgs.contractFile, "contract", "f", "", "contract spec in json")
	Commit.Flags().StringVarP(&commitArgs.pubkey, "pubkey", "p", "", "new signing public key, hex")
	Commit.Flags().Uint64VarP(&commitArgs.value, "value", "v", 0, "value of the continuing output")
}

func loadContract(cfg *config.Config, contractFile string) (*recovery.Contract, error) {
	raw, err := os.ReadFile(contractFile)
	if err != nil {
		return nil, errors.Wrapf(err, "read contract %q", contractFile)
	}

	spec := new(recovery.ContractSpec)
	if err = json.Unmarshal(raw, spec); err != nil {
		return nil, errors.Wrapf(err, "unmarshal contract %q", contractFile)
	}

	scheme, err := cfg.Scheme()
	if err != nil {
		return nil, err
	}
	hashType, err := cfg.HashType()
	if err != nil {
		return nil, err
	}

	return spec.Contract(scheme, recovery.WithHashType(hashType))
}

func runCommit(w io.Writer, cfg *config.Config, contractFile, pubkey string, value uint64) error {
	c, err := loadContract(cfg, contractFile)
	if err != nil {
		return err
	}

	var key gcrypto.PublicKey
	if err = key.UnmarshalText([]byte(pubkey)); err != nil {
		return err
	}

	h, err := c.ExpectedCommitment(value, key)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, hex.EncodeToString(h[:]))
	return err
}

package cmd

import (
	"fmt"
	"io"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	gcovenant "github.com/Laisky/go-covenant"
	"github.com/Laisky/go-covenant/log"
)

var modPowArgs struct {
	base, exponent, modulus, expect string
}

// ModPow calculate or verify modular exponentiation
var ModPow = &cobra.Command{
	Use:   "modpow",
	Short: "calculate base^exp mod m, or verify it equals --expect",
	Args:  NoExtraArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModPow(cmd.OutOrStdout(),
			modPowArgs.base, modPowArgs.exponent, modPowArgs.modulus, modPowArgs.expect)
	},
}

func init() {
	rootCmd.AddCommand(ModPow)
	ModPow.Flags().StringVarP(&modPowArgs.base, "base", "x", "", "base, decimal")
	ModPow.Flags().StringVarP(&modPowArgs.exponent, "exp", "y", "", "exponent, decimal, at most 232 bits")
	ModPow.Flags().StringVarP(&modPowArgs.modulus, "mod", "m", "", "modulus, decimal, positive")
	ModPow.Flags().StringVar(&modPowArgs.expect, "expect", "", "verify result equals this value")
}

func parseDecimal(name, val string) (*uint256.Int, error) {
	n, err := uint256.FromDecimal(val)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s %q", name, val)
	}

	return n, nil
}

func runModPow(w io.Writer, base, exponent, modulus, expect string) error {
	x, err := parseDecimal("base", base)
	if err != nil {
		return err
	}
	y, err := parseDecimal("exp", exponent)
	if err != nil {
		return err
	}
	m, err := parseDecimal("mod", modulus)
	if err != nil {
		return err
	}

	me, err := gcovenant.NewModExp(m)
	if err != nil {
		return err
	}

	if expect != "" {
		z, err := parseDecimal("expect", expect)
		if err != nil {
			return err
		}

		if err = me.Verify(x, y, z); err != nil {
			return err
		}

		log.Shared.Debug("modpow verified", zap.String("result", z.Dec()))
		_, err = fmt.Fprintln(w, "ok")
		return err
	}

	z, err := me.Exp(x, y)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, z.Dec())
	return err
}

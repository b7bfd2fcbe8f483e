package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	gcovenant "github.com/Laisky/go-covenant"
	"github.com/Laisky/go-covenant/config"
	gcrypto "github.com/Laisky/go-covenant/crypto"
	"github.com/Laisky/go-covenant/log"
	"github.com/Laisky/go-covenant/recovery"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var verifyFiles []string

// Verify verify spend requests
var Verify = &cobra.Command{
	Use:   "verify",
	Short: "verify spend requests, exit non-zero if any is rejected",
	Args:  NoExtraArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify(cmd.Context(), cmd.OutOrStdout(), config.Shared, verifyFiles)
	},
}

func init() {
	rootCmd.AddCommand(Verify)
	Verify.Flags().StringSliceVarP(&verifyFiles, "file", "f", nil, "spend request in json, repeatable")
}

type verdict struct {
	File      string                 `json:"file"`
	Accepted  bool                   `json:"accepted"`
	Reason    string                 `json:"reason,omitempty"`
	Successor *recovery.ContractSpec `json:"successor,omitempty"`
}

func runVerify(ctx context.Context, w io.Writer, cfg *config.Config, files []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(files) == 0 {
		return errors.New("no spend request given")
	}

	cache, err := gcrypto.NewSigCache(cfg.GetInt(config.KeySigCacheSize))
	if err != nil {
		return err
	}

	var spends []recovery.Spend
	for _, fpath := range files {
		raw, err := os.ReadFile(fpath)
		if err != nil {
			return errors.Wrapf(err, "read %q", fpath)
		}

		req, err := recovery.ParseSpendRequest(raw)
		if err != nil {
			return errors.Wrapf(err, "parse %q", fpath)
		}
		if req.Scheme == "" {
			req.Scheme = gcrypto.SchemeName(cfg.GetString(config.KeyScheme))
		}
		if req.HashType == "" {
			req.HashType = gcovenant.HashType(cfg.GetString(config.KeyHashType))
		}

		spend, err := req.Spend(
			recovery.WithSigCache(cache),
			recovery.WithLogger(log.Shared.Named("recovery")),
		)
		if err != nil {
			return errors.Wrapf(err, "load %q", fpath)
		}
		spends = append(spends, spend)
	}

	results, err := recovery.VerifyBatch(ctx, spends, cfg.GetInt(config.KeyWorkers))
	if err != nil {
		return err
	}

	for i, r := range results {
		v := verdict{File: files[i], Accepted: r.Err == nil}
		if r.Err != nil {
			v.Reason = r.Err.Error()
			log.Shared.Info("spend rejected",
				zap.String("file", files[i]),
				zap.NamedError("kind", gcovenant.RejectionKind(r.Err)),
				zap.Error(r.Err))
		}
		if r.Successor != nil {
			spec := r.Successor.Spec()
			v.Successor = &spec
		}

		out, err := json.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "marshal verdict")
		}
		if _, err = fmt.Fprintln(w, string(out)); err != nil {
			return err
		}
	}

	return recovery.FirstRejection(results)
}

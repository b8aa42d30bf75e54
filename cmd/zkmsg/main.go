package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/zkmsg/zkmsg/crypto/ecc"
	"github.com/zkmsg/zkmsg/crypto/ecc/curves"
	"github.com/zkmsg/zkmsg/crypto/ecies"
	"github.com/zkmsg/zkmsg/log"
	"github.com/zkmsg/zkmsg/web3"
)

var (
	flagCurve    string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zkmsg",
	Short: "Encrypted messaging codec for BabyJubJub keys",
	Long: `zkmsg encodes short text messages into field elements, encrypts them
against a recipient's BabyJubJub public key and packs the result into a
hex blob suitable for posting to the on-chain messenger contract.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Init(flagLogLevel, "stderr", nil)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagCurve, "curve",
		curves.CurveTypeBabyJubJub, "curve backend (bjj_gnark or bjj_iden3)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level")
	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(sendCmd)
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a BabyJubJub key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		curve, err := curves.New(flagCurve)
		if err != nil {
			return err
		}
		pub, priv, err := ecies.GenerateKey(curve)
		if err != nil {
			return err
		}
		x, y := pub.Point()
		fmt.Printf("privateKey: %s\n", priv.String())
		fmt.Printf("publicKey.x: %s\n", x.String())
		fmt.Printf("publicKey.y: %s\n", y.String())
		return nil
	},
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt [flags] message",
	Short: "Encrypt a message for a public key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pubX, _ := cmd.Flags().GetString("pub-x")
		pubY, _ := cmd.Flags().GetString("pub-y")
		pub, err := parsePublicKey(flagCurve, pubX, pubY)
		if err != nil {
			return err
		}
		blob, err := ecies.New(pub).Encrypt(pub, args[0])
		if err != nil {
			return err
		}
		fmt.Println(blob.String())
		return nil
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [flags] blob",
	Short: "Decrypt a hex blob with a private key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keyStr, _ := cmd.Flags().GetString("key")
		priv, err := parseBigInt(keyStr)
		if err != nil {
			return fmt.Errorf("invalid private key: %w", err)
		}
		curve, err := curves.New(flagCurve)
		if err != nil {
			return err
		}
		text, err := ecies.New(curve).DecryptHex(priv, args[0])
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	},
}

var sendCmd = &cobra.Command{
	Use:   "send [flags] message",
	Short: "Encrypt a message and post it to the messenger contract",
	Args:  cobra.ExactArgs(1),
	RunE:  runSend,
}

func init() {
	encryptCmd.Flags().String("pub-x", "", "recipient public key X coordinate")
	encryptCmd.Flags().String("pub-y", "", "recipient public key Y coordinate")
	encryptCmd.MarkFlagRequired("pub-x")
	encryptCmd.MarkFlagRequired("pub-y")

	decryptCmd.Flags().StringP("key", "k", "", "private key scalar (decimal or 0x hex)")
	decryptCmd.MarkFlagRequired("key")

	sendCmd.Flags().String("pub-x", "", "recipient public key X coordinate")
	sendCmd.Flags().String("pub-y", "", "recipient public key Y coordinate")
	sendCmd.Flags().String("rpc", "", "web3 RPC endpoint")
	sendCmd.Flags().String("contract", "", "messenger contract address")
	sendCmd.Flags().String("recipient", "", "recipient account address")
	sendCmd.Flags().String("eth-key", "", "ethereum private key for signing the transaction")
	sendCmd.Flags().Uint8("type", 0, "message type byte")
	sendCmd.MarkFlagRequired("pub-x")
	sendCmd.MarkFlagRequired("pub-y")
	sendCmd.MarkFlagRequired("rpc")
	sendCmd.MarkFlagRequired("contract")
	sendCmd.MarkFlagRequired("recipient")
	sendCmd.MarkFlagRequired("eth-key")
}

func runSend(cmd *cobra.Command, args []string) error {
	pubX, _ := cmd.Flags().GetString("pub-x")
	pubY, _ := cmd.Flags().GetString("pub-y")
	rpc, _ := cmd.Flags().GetString("rpc")
	contract, _ := cmd.Flags().GetString("contract")
	recipient, _ := cmd.Flags().GetString("recipient")
	ethKey, _ := cmd.Flags().GetString("eth-key")
	msgType, _ := cmd.Flags().GetUint8("type")

	pub, err := parsePublicKey(flagCurve, pubX, pubY)
	if err != nil {
		return err
	}
	blob, err := ecies.New(pub).Encrypt(pub, args[0])
	if err != nil {
		return err
	}
	if !common.IsHexAddress(contract) {
		return fmt.Errorf("invalid contract address %q", contract)
	}
	if !common.IsHexAddress(recipient) {
		return fmt.Errorf("invalid recipient address %q", recipient)
	}
	messenger, err := web3.NewMessenger(common.HexToAddress(contract), rpc)
	if err != nil {
		return err
	}
	if err := messenger.SetAccountPrivateKey(ethKey); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()
	tx, err := messenger.SendMessage(ctx, common.HexToAddress(recipient), msgType, blob)
	if err != nil {
		return err
	}
	fmt.Printf("tx: %s\n", tx.Hash().Hex())
	return nil
}

func parsePublicKey(curveType, xStr, yStr string) (ecc.Point, error) {
	x, err := parseBigInt(xStr)
	if err != nil {
		return nil, fmt.Errorf("invalid public key X: %w", err)
	}
	y, err := parseBigInt(yStr)
	if err != nil {
		return nil, fmt.Errorf("invalid public key Y: %w", err)
	}
	curve, err := curves.New(curveType)
	if err != nil {
		return nil, err
	}
	return curve.SetPoint(x, y), nil
}

// parseBigInt accepts decimal or 0x-prefixed hexadecimal integers.
func parseBigInt(s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("empty value")
	}
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("cannot parse %q as integer", s)
	}
	return v, nil
}

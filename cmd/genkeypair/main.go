package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"os"

	"github.com/pkg/errors"
	"github.com/satoshilab/scriptcore/btcec"
	"github.com/satoshilab/scriptcore/util"
	"github.com/tyler-smith/go-bip39"
)

func main() {
	cfg, err := parseConfig()
	if err != nil {
		os.Exit(1)
	}

	var privateKey *btcec.PrivateKey
	mnemonic := cfg.FromMnemonic
	if cfg.Mnemonic && mnemonic == "" {
		mnemonic, err = createMnemonic()
		if err != nil {
			printErrorAndExit(err, "Failed to generate a mnemonic")
		}
		fmt.Printf("Mnemonic (keep it secret): %s\n", mnemonic)
	}

	if mnemonic != "" {
		passphrase := ""
		if cfg.Passphrase {
			passphrase = string(getPassword("Passphrase: "))
		}
		privateKey, err = keyFromMnemonic(mnemonic, passphrase)
		if err != nil {
			printErrorAndExit(err, "Failed to derive the private key")
		}
	} else {
		privateKey, err = btcec.NewPrivateKey()
		if err != nil {
			printErrorAndExit(err, "Failed to generate the private key")
		}
	}

	compressed := !cfg.Uncompressed
	params := cfg.NetParams()
	fmt.Printf("Network: %s\n", params.Name)
	fmt.Printf("Private key (hex): %s\n", hex.EncodeToString(privateKey.Serialize()))
	fmt.Printf("Private key (WIF): %s\n", privateKey.WIF(compressed, params))
	fmt.Printf("Public key: %s\n", hex.EncodeToString(privateKey.PubKey().Serialize(compressed)))
	fmt.Printf("Address: %s\n", privateKey.PubKey().Address(compressed, params))
}

func createMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return bip39.NewMnemonic(entropy)
}

// keyFromMnemonic derives a private key from the BIP39 seed of mnemonic:
// the SHA-256 of the seed reduced modulo the group order.
func keyFromMnemonic(mnemonic, passphrase string) (*btcec.PrivateKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, passphrase)

	secret := new(big.Int).SetBytes(util.Sha256(seed))
	secret.Mod(secret, btcec.S256().N())
	if secret.Sign() == 0 {
		return nil, errors.New("mnemonic seed maps to the zero key")
	}
	return btcec.PrivKeyFromBigInt(secret)
}

func printErrorAndExit(err error, message string) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", message, err)
	os.Exit(1)
}

package app

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log/slog"
	"os"

	"github.com/eliteconnect/userservice/pkg/jwtx"

	"github.com/oklog/ulid/v2"
)

// InitSigningKeys builds the process-wide token signing key.
//
// When cfg.SigningKey names an existing PEM file the key is loaded from it,
// so tokens survive restarts. Otherwise a fresh Ed25519 key is generated in
// memory and outstanding tokens become invalid on restart.
func InitSigningKeys(cfg Config, logger *slog.Logger) (jwtx.Signer, *jwtx.KeySet, error) {
	kid := ulid.Make().String()

	var pemKey []byte
	switch {
	case cfg.SigningKey != "":
		raw, err := os.ReadFile(cfg.SigningKey)
		if err != nil {
			return nil, nil, fmt.Errorf("read signing key: %w", err)
		}
		pemKey = raw
		logger.Info("signing key loaded", "path", cfg.SigningKey, "kid", kid)

	default:
		raw, err := generateEd25519PEM()
		if err != nil {
			return nil, nil, fmt.Errorf("generate signing key: %w", err)
		}
		pemKey = raw
		logger.Info("ephemeral signing key generated", "kid", kid)
	}

	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	if err != nil {
		return nil, nil, err
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, nil, err
	}
	return signer, keys, nil
}

func generateEd25519PEM() ([]byte, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, err
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/tasktab/tasktab/pkg/cryptox"
	"github.com/tasktab/tasktab/pkg/idx"
	"github.com/tasktab/tasktab/pkg/jwtx"
)

// initSigningKey loads the Ed25519 signing key from cfg.SigningKeyFile,
// creating the file on first run. Without a configured path an ephemeral
// key is generated, which invalidates outstanding tokens on restart.
func initSigningKey(cfg Config, logger *slog.Logger) (*jwtx.EdDSASigner, error) {
	kid := idx.New().String()

	if cfg.SigningKeyFile == "" {
		pemKey, err := cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
		logger.Warn("no signing key file configured, using ephemeral key",
			"kid", kid)
		return jwtx.NewSignerEdDSA(kid, pemKey)
	}

	pemKey, err := os.ReadFile(cfg.SigningKeyFile)
	if os.IsNotExist(err) {
		pemKey, err = cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, fmt.Errorf("generate signing key: %w", err)
		}
		if err := os.WriteFile(cfg.SigningKeyFile, pemKey, 0600); err != nil {
			return nil, fmt.Errorf("write signing key file: %w", err)
		}
		logger.Info("generated new signing key", "path", cfg.SigningKeyFile, "kid", kid)
	} else if err != nil {
		return nil, fmt.Errorf("read signing key file: %w", err)
	}

	return jwtx.NewSignerEdDSA(kid, pemKey)
}

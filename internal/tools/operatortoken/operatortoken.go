package operatortoken

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/jwt"
	"github.com/google/uuid"
)

// Config - параметры выпуска токена
type Config struct {
	Name   string
	Role   string
	ID     string
	Expiry time.Duration
}

// ParseConfig разбирает флаги. Срок по умолчанию берется из JWT_ACCESS_EXPIRY
func ParseConfig(fs *flag.FlagSet, args []string, defaultExpiry time.Duration) (Config, error) {
	cfg := Config{Role: string(domain.RoleOperator), Expiry: defaultExpiry}
	fs.StringVar(&cfg.Name, "name", cfg.Name, "operator display name")
	fs.StringVar(&cfg.Role, "role", cfg.Role, "operator role: operator, inspector or admin")
	fs.StringVar(&cfg.ID, "id", cfg.ID, "operator UUID (random when empty)")
	fs.DurationVar(&cfg.Expiry, "expiry", cfg.Expiry, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run выпускает токен и пишет его в out
func Run(cfg Config, secret string, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}
	if secret == "" {
		return errors.New("JWT secret is required")
	}
	if cfg.Name == "" {
		return errors.New("operator name is required")
	}
	if cfg.Expiry <= 0 {
		return errors.New("expiry must be greater than zero")
	}

	role, err := domain.ParseOperatorRole(cfg.Role)
	if err != nil {
		return err
	}

	op := &domain.Operator{Name: cfg.Name, Role: role}
	if cfg.ID != "" {
		id, err := uuid.Parse(cfg.ID)
		if err != nil {
			return fmt.Errorf("parse operator id: %w", err)
		}
		op.ID = id
	}

	token, err := jwt.NewTokenService(secret, cfg.Expiry).GenerateToken(op)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "operator_id=%s\nrole=%s\nexpires_at=%s\ntoken=%s\n",
		op.ID, op.Role, token.ExpiresAt.Format(time.RFC3339), token.AccessToken)
	return err
}

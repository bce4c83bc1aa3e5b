// Package config loads the genesis document of a ramps deployment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

// Genesis seeds a fresh deployment.
type Genesis struct {
	// APIURL is the initial bank API base url.
	APIURL   string           `mapstructure:"api_url"`
	Accounts []GenesisAccount `mapstructure:"accounts"`
	// Workers may submit statements.
	Workers []string `mapstructure:"workers"`
	// Admins act as root on the command surface.
	Admins []string `mapstructure:"admins"`
}

// GenesisAccount is one pre-mapped bank account.
type GenesisAccount struct {
	Account string `mapstructure:"account"`
	IBAN    string `mapstructure:"iban"`
}

// LoadGenesis reads a genesis file; the format follows the extension (yaml, toml, json).
// Keys can be overridden with FIATRAMPS_GENESIS_* environment variables.
func LoadGenesis(path string, maxIBANLength int) (Genesis, error) {
	if path == "" {
		return Genesis{}, errors.New("genesis path is required")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("FIATRAMPS_GENESIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Genesis{}, fmt.Errorf("read genesis %s: %w", path, err)
	}

	var g Genesis
	if err := v.Unmarshal(&g); err != nil {
		return Genesis{}, fmt.Errorf("unmarshal genesis: %w", err)
	}
	if err := g.Validate(maxIBANLength); err != nil {
		return Genesis{}, err
	}
	return g, nil
}

// Validate rejects malformed IBANs and duplicated mappings.
func (g Genesis) Validate(maxIBANLength int) error {
	ibans := make(map[string]struct{}, len(g.Accounts))
	accounts := make(map[string]struct{}, len(g.Accounts))
	for i, acc := range g.Accounts {
		if acc.Account == "" {
			return fmt.Errorf("genesis account %d: empty account", i)
		}
		if err := model.ValidateIBAN(model.IBAN(acc.IBAN), maxIBANLength); err != nil {
			return fmt.Errorf("genesis account %d: %w", i, err)
		}
		if _, dup := ibans[acc.IBAN]; dup {
			return fmt.Errorf("genesis account %d: iban %s mapped twice", i, acc.IBAN)
		}
		if _, dup := accounts[acc.Account]; dup {
			return fmt.Errorf("genesis account %d: account %s mapped twice", i, acc.Account)
		}
		ibans[acc.IBAN] = struct{}{}
		accounts[acc.Account] = struct{}{}
	}
	return nil
}

// WorkerAccounts returns the authorized worker identities.
func (g Genesis) WorkerAccounts() []model.AccountID {
	return toAccounts(g.Workers)
}

// AdminAccounts returns the identities treated as root.
func (g Genesis) AdminAccounts() []model.AccountID {
	return toAccounts(g.Admins)
}

func toAccounts(in []string) []model.AccountID {
	out := make([]model.AccountID, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, model.AccountID(s))
		}
	}
	return out
}

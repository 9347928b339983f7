// Package credentials resolves the workspace host, access token and warehouse
// a command runs against.
//
// Host and warehouse come from the layered config (flag > env > file). The
// token is taken from --token or DATABRICKS_TOKEN when given and otherwise
// from the OS keychain entry stored by `dbxkit login` for that host.
// Nothing is ever defaulted to a literal value.
package credentials

import (
	"errors"
	"strings"

	"dbxkit/cli/internal/config"
	dbxerrors "dbxkit/cli/internal/errors"
	"dbxkit/cli/internal/keychain"
)

// TokenSource records where the access token was found.
type TokenSource string

const (
	SourceNone     TokenSource = ""
	SourceConfig   TokenSource = "flag or environment"
	SourceKeychain TokenSource = "keychain"
)

// Credentials bundles what the Genie client needs.
type Credentials struct {
	Host        string
	Token       string
	WarehouseID string
	TokenSource TokenSource
}

// Resolve fills Credentials from cfg and, when no token was configured, from
// store. store may be nil when no OS keychain is available.
//
// The returned Credentials are populated as far as possible even when an
// error is returned, so callers that only preview a request can still use
// the parts that were found. The error has kind config_missing and lists
// every missing piece with the flag or variable that sets it.
func Resolve(cfg config.Config, store keychain.Store) (Credentials, error) {
	c := Credentials{
		Host:        config.NormalizeHost(cfg.Host),
		Token:       strings.TrimSpace(cfg.Token),
		WarehouseID: strings.TrimSpace(cfg.WarehouseID),
	}

	if c.Token != "" {
		c.TokenSource = SourceConfig
	} else if c.Host != "" && store != nil {
		if tok, err := store.LoadToken(c.Host); err == nil {
			c.Token = tok
			c.TokenSource = SourceKeychain
		} else if !errors.Is(err, keychain.ErrNotFound) {
			return c, dbxerrors.Wrap(dbxerrors.ConfigMissing, "reading access token from keychain", err)
		}
	}

	var missing []string
	if c.Host == "" {
		missing = append(missing, "workspace host (--host or DATABRICKS_HOST)")
	}
	if c.Token == "" {
		missing = append(missing, "access token (--token, DATABRICKS_TOKEN or 'dbxkit login')")
	}
	if c.WarehouseID == "" {
		missing = append(missing, "SQL warehouse id (--warehouse-id or DATABRICKS_WAREHOUSE_ID)")
	}
	if len(missing) > 0 {
		return c, dbxerrors.New(dbxerrors.ConfigMissing, "missing "+strings.Join(missing, ", "))
	}
	return c, nil
}

// Package host defines the trading server collaborators the credit report
// reads from, plus the server-side group mask rules.
package host

import (
	"context"
	"errors"

	"creditreport/internal/core"
)

var ErrAccountNotFound = errors.New("account not found")

// Ports for inbound host data.
type (
	TradeQuerier interface {
		// TransactionsByGroup returns trades whose account group matches mask
		// and whose close time lies in [from, to].
		TransactionsByGroup(ctx context.Context, mask string, from, to int64) ([]core.TradeRecord, error)
	}

	GroupLister interface {
		AllGroups(ctx context.Context) ([]core.GroupRecord, error)
	}

	AccountFinder interface {
		// AccountByLogin returns ErrAccountNotFound for unknown logins.
		AccountByLogin(ctx context.Context, login int64) (core.AccountRecord, error)
	}

	Server interface {
		TradeQuerier
		GroupLister
		AccountFinder
	}
)

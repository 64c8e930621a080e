package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// NoCurrency is shown when a trade's account group has no configured currency.
const NoCurrency = "N/A"

// TimestampLayout is the display form of host close times (UTC).
const TimestampLayout = "2006-01-02 15:04:05"

// Command is the host's operation kind for a trade record.
type Command int

const (
	CmdBuy Command = iota
	CmdSell
	CmdBuyLimit
	CmdSellLimit
	CmdBuyStop
	CmdSellStop
	CmdBalance
	CmdCreditIn
	CmdCreditOut
)

var commandNames = map[Command]string{
	CmdBuy:       "BUY",
	CmdSell:      "SELL",
	CmdBuyLimit:  "BUY_LIMIT",
	CmdSellLimit: "SELL_LIMIT",
	CmdBuyStop:   "BUY_STOP",
	CmdSellStop:  "SELL_STOP",
	CmdBalance:   "BALANCE",
	CmdCreditIn:  "CREDIT_IN",
	CmdCreditOut: "CREDIT_OUT",
}

var ErrUnknownCommand = errors.New("unknown command")

type (
	// TradeRecord is a single host transaction as returned by the trade query.
	TradeRecord struct {
		Order     int64
		Login     int64
		Cmd       Command
		Profit    float64
		CloseTime int64 // unix seconds
		Comment   string
	}

	// AccountRecord is the host account for a login. The zero value is the
	// empty account used after a failed lookup.
	AccountRecord struct {
		Login int64
		Name  string
		Group string
	}

	GroupRecord struct {
		Group    string
		Currency string
	}

	// ReportRow is the display projection of one credit trade.
	ReportRow struct {
		Order     string `json:"order"`
		Login     string `json:"login"`
		Name      string `json:"name"`
		CloseTime string `json:"close_time"`
		Comment   string `json:"comment"`
		Profit    string `json:"profit"`
		Currency  string `json:"currency"`
	}
)

// String returns the host name of the command, e.g. "CREDIT_IN".
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// IsCredit reports whether the command is a credit facility operation.
func (c Command) IsCredit() bool {
	return c == CmdCreditIn || c == CmdCreditOut
}

// ParseCommand is the inverse of Command.String. Matching ignores case and
// accepts '-' or ' ' in place of '_'.
func ParseCommand(s string) (Command, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for cmd, name := range commandNames {
		if name == norm {
			return cmd, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}

// MarshalText lets commands appear by name in fixtures and messages.
func (c Command) MarshalText() ([]byte, error) {
	if _, ok := commandNames[c]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCommand, int(c))
	}
	return []byte(c.String()), nil
}

func (c *Command) UnmarshalText(b []byte) error {
	cmd, err := ParseCommand(string(b))
	if err != nil {
		return err
	}
	*c = cmd
	return nil
}

// FormatTimestamp renders a host close time. Non-positive values are unset
// and render as the empty string.
func FormatTimestamp(ts int64) string {
	if ts <= 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts either the display layout or RFC 3339 and returns
// unix seconds.
func ParseTimestamp(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if t, err := time.ParseInLocation(TimestampLayout, s, time.UTC); err == nil {
		return t.Unix(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	return t.Unix(), nil
}

package host

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"creditreport/internal/core"
)

// Fixture is the YAML seed format shared by the memory host and the seed tool.
//
//	groups:
//	  - {group: real-usd, currency: USD}
//	accounts:
//	  - {login: 1001, name: Alice, group: real-usd}
//	trades:
//	  - {order: 1, login: 1001, cmd: CREDIT_IN, profit: 100, close_time: "2024-01-02 10:00:00"}
type Fixture struct {
	Groups   []FixtureGroup   `yaml:"groups"`
	Accounts []FixtureAccount `yaml:"accounts"`
	Trades   []FixtureTrade   `yaml:"trades"`
}

type FixtureGroup struct {
	Group    string `yaml:"group"`
	Currency string `yaml:"currency"`
}

type FixtureAccount struct {
	Login int64  `yaml:"login"`
	Name  string `yaml:"name"`
	Group string `yaml:"group"`
}

type FixtureTrade struct {
	Order     int64        `yaml:"order"`
	Login     int64        `yaml:"login"`
	Cmd       core.Command `yaml:"cmd"`
	Profit    float64      `yaml:"profit"`
	CloseTime string       `yaml:"close_time"`
	Comment   string       `yaml:"comment"`
}

// LoadFixture reads a YAML fixture. A missing file yields an empty fixture.
func LoadFixture(path string) (Fixture, error) {
	var fx Fixture
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fx, nil
	}
	if err != nil {
		return fx, fmt.Errorf("read fixture %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return fx, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return fx, nil
}

// Records converts the fixture into domain records.
func (fx Fixture) Records() ([]core.GroupRecord, []core.AccountRecord, []core.TradeRecord, error) {
	groups := make([]core.GroupRecord, 0, len(fx.Groups))
	for _, g := range fx.Groups {
		groups = append(groups, core.GroupRecord{Group: g.Group, Currency: g.Currency})
	}
	accounts := make([]core.AccountRecord, 0, len(fx.Accounts))
	for _, a := range fx.Accounts {
		accounts = append(accounts, core.AccountRecord{Login: a.Login, Name: a.Name, Group: a.Group})
	}
	trades := make([]core.TradeRecord, 0, len(fx.Trades))
	for _, tr := range fx.Trades {
		ts, err := core.ParseTimestamp(tr.CloseTime)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("trade %d: %w", tr.Order, err)
		}
		trades = append(trades, core.TradeRecord{
			Order:     tr.Order,
			Login:     tr.Login,
			Cmd:       tr.Cmd,
			Profit:    tr.Profit,
			CloseTime: ts,
			Comment:   tr.Comment,
		})
	}
	return groups, accounts, trades, nil
}

package payee

import (
	"encoding/base64"
	"strings"

	"moneymarket/core"
)

// memo formats routed to an action, the transferred amount is the action amount
//
//	supply
//	repay:<borrower>
//	liquidate:<borrower>:<collateral symbol>
func parseMemo(memo string) (*core.Action, error) {
	if action, err := parseMemoText(memo); err == nil {
		return action, nil
	}

	// mixin messenger sends memos base64 encoded
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawURLEncoding} {
		if b, err := enc.DecodeString(strings.TrimSpace(memo)); err == nil {
			if action, err := parseMemoText(string(b)); err == nil {
				return action, nil
			}
		}
	}

	return nil, core.Errorf(core.ErrInvalidMemo, "memo %q can not be routed", memo)
}

func parseMemoText(memo string) (*core.Action, error) {
	parts := strings.Split(strings.TrimSpace(memo), ":")
	for idx := range parts {
		parts[idx] = strings.TrimSpace(parts[idx])
	}

	switch {
	case len(parts) == 1 && parts[0] == "supply":
		return &core.Action{Type: core.ActionTypeSupply}, nil
	case len(parts) == 2 && parts[0] == "repay" && parts[1] != "":
		return &core.Action{Type: core.ActionTypeRepay, Borrower: parts[1]}, nil
	case len(parts) == 3 && parts[0] == "liquidate" && parts[1] != "" && parts[2] != "":
		return &core.Action{
			Type:       core.ActionTypeLiquidate,
			Borrower:   parts[1],
			Collateral: strings.ToUpper(parts[2]),
		}, nil
	}

	return nil, core.ErrInvalidMemo
}

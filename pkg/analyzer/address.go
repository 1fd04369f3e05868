package analyzer

import (
	"fmt"

	"block-lens/pkg/parser"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// NetParams maps a network name to its chain parameters
func NetParams(network string) (*chaincfg.Params, error) {
	switch network {
	case "", "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	}
	return nil, fmt.Errorf("unknown network %q", network)
}

// GetAddressFromScript derives an address from a decoded output script.
// Returns nil if the script type has no address (e.g., OP_RETURN, unknown)
func GetAddressFromScript(script parser.Script, netParams *chaincfg.Params) *string {
	var addr btcutil.Address
	var err error

	switch ClassifyOutputScript(script) {
	case ScriptP2PKH:
		addr, err = btcutil.NewAddressPubKeyHash(script.Ops[2].Data, netParams)

	case ScriptP2SH:
		addr, err = btcutil.NewAddressScriptHashFromHash(script.Ops[1].Data, netParams)

	case ScriptP2PK:
		// Reported as the P2PKH address of the key, as wallets do
		addr, err = btcutil.NewAddressPubKey(script.Ops[0].Data, netParams)

	case ScriptP2WPKH:
		addr, err = btcutil.NewAddressWitnessPubKeyHash(script.Ops[1].Data, netParams)

	case ScriptP2WSH:
		addr, err = btcutil.NewAddressWitnessScriptHash(script.Ops[1].Data, netParams)

	case ScriptP2TR:
		addr, err = btcutil.NewAddressTaproot(script.Ops[1].Data, netParams)

	default:
		return nil
	}

	if err != nil {
		return nil
	}

	addrStr := addr.EncodeAddress()
	return &addrStr
}

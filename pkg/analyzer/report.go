package analyzer

import (
	"fmt"
	"time"

	"block-lens/pkg/parser"
	"block-lens/pkg/types"
	"block-lens/pkg/utils"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// BuildBlockOutput converts a decoded block into its JSON report
func BuildBlockOutput(block *parser.Block, network string) (*types.BlockOutput, error) {
	netParams, err := NetParams(network)
	if err != nil {
		return nil, err
	}

	header := block.Header
	txids := make([]chainhash.Hash, len(block.Transactions))
	txOutputs := make([]types.TransactionOutput, len(block.Transactions))
	stats := types.BlockStats{ScriptTypeSummary: make(map[string]int)}
	size := parser.BlockHeaderSize + len(parser.AppendVarInt(nil, uint64(len(block.Transactions))))

	for i := range block.Transactions {
		tx := &block.Transactions[i]
		txids[i] = tx.TxID
		txOutputs[i] = AnalyzeTransaction(tx, netParams)

		size += tx.Size
		stats.TotalOutputSats += txOutputs[i].TotalOutputSats
		stats.TotalInputs += len(tx.TxIn)
		stats.TotalOutputs += len(tx.TxOut)
		for _, scriptType := range txOutputs[i].VoutScriptTypes {
			stats.ScriptTypeSummary[scriptType]++
		}
	}

	computedMerkleRoot := ComputeMerkleRoot(txids)

	out := &types.BlockOutput{
		OK:      true,
		Network: netParams.Name,
		BlockHeader: types.BlockHeader{
			Version:         header.Version,
			PrevBlockHash:   header.PrevBlock.String(),
			MerkleRoot:      header.MerkleRoot.String(),
			MerkleRootValid: computedMerkleRoot.IsEqual(&header.MerkleRoot),
			Timestamp:       header.Timestamp,
			Time:            header.Time().Format(time.RFC3339),
			Bits:            fmt.Sprintf("%08x", header.Bits),
			Nonce:           header.Nonce,
			BlockHash:       header.Hash().String(),
		},
		SizeBytes:    size,
		TxCount:      len(block.Transactions),
		Transactions: txOutputs,
		BlockStats:   stats,
		Warnings:     make([]types.Warning, 0),
	}

	if len(block.Transactions) > 0 && block.Transactions[0].IsCoinbase() {
		coinbaseTx := &block.Transactions[0]
		data := coinbaseTx.TxIn[0].CoinbaseData
		out.Coinbase = &types.CoinbaseInfo{
			Bip34Height:       ExtractBIP34Height(data),
			CoinbaseScriptHex: utils.BytesToHex(data),
			TotalOutputSats:   txOutputs[0].TotalOutputSats,
		}
	} else {
		out.Warnings = append(out.Warnings, types.Warning{Code: "MISSING_COINBASE"})
	}

	if !out.BlockHeader.MerkleRootValid {
		out.Warnings = append(out.Warnings, types.Warning{Code: "MERKLE_ROOT_MISMATCH"})
	}

	return out, nil
}

// AnalyzeTransaction converts a decoded transaction to its JSON report
func AnalyzeTransaction(tx *parser.Transaction, netParams *chaincfg.Params) types.TransactionOutput {
	inputs := make([]types.Input, 0, len(tx.TxIn))
	sequences := make([]uint32, 0, len(tx.TxIn))
	unknownOpcode := false

	for _, txIn := range tx.TxIn {
		in := types.Input{
			Txid:         txIn.PreviousOutPoint.Hash.String(),
			Vout:         txIn.PreviousOutPoint.Index,
			Sequence:     txIn.Sequence,
			Coinbase:     txIn.PreviousOutPoint.IsCoinbase(),
			ScriptSigHex: utils.BytesToHex(txIn.SignatureScript.Raw),
			ScriptAsm:    txIn.SignatureScript.String(),
		}
		if in.Coinbase {
			in.CoinbaseHex = utils.BytesToHex(txIn.CoinbaseData)
		}

		enabled, tlType, tlValue := ParseRelativeTimelock(tx.Version, txIn.Sequence)
		in.RelativeTimelock = types.RelativeTimelock{Enabled: enabled}
		if enabled {
			in.RelativeTimelock.Type = tlType
			in.RelativeTimelock.Value = tlValue
		}

		unknownOpcode = unknownOpcode || txIn.SignatureScript.HasUnknown()
		sequences = append(sequences, txIn.Sequence)
		inputs = append(inputs, in)
	}

	outputs := make([]types.Output, 0, len(tx.TxOut))
	voutScriptTypes := make([]string, 0, len(tx.TxOut))
	var totalOutputSats uint64

	for i, txOut := range tx.TxOut {
		totalOutputSats += txOut.Value

		scriptType := ClassifyOutputScript(txOut.PkScript)
		output := types.Output{
			N:               i,
			ValueSats:       txOut.Value,
			ScriptPubkeyHex: utils.BytesToHex(txOut.PkScript.Raw),
			ScriptAsm:       txOut.PkScript.String(),
			ScriptType:      scriptType,
			Address:         GetAddressFromScript(txOut.PkScript, netParams),
		}

		if scriptType == ScriptOpReturn {
			output.OpReturnDataHex, output.OpReturnDataUtf8 = ParseOpReturn(txOut.PkScript)
		}

		unknownOpcode = unknownOpcode || txOut.PkScript.HasUnknown()
		voutScriptTypes = append(voutScriptTypes, scriptType)
		outputs = append(outputs, output)
	}

	// Coinbase sequences carry no replaceability meaning
	rbfSignaling := !tx.IsCoinbase() && IsRBFSignaling(sequences)

	return types.TransactionOutput{
		Txid:            tx.TxID.String(),
		Coinbase:        tx.IsCoinbase(),
		Version:         tx.Version,
		Locktime:        tx.LockTime,
		LocktimeType:    GetLocktimeType(tx.LockTime),
		SizeBytes:       tx.Size,
		TotalOutputSats: totalOutputSats,
		RbfSignaling:    rbfSignaling,
		VinCount:        len(inputs),
		VoutCount:       len(outputs),
		VoutScriptTypes: voutScriptTypes,
		Vin:             inputs,
		Vout:            outputs,
		Warnings:        GenerateWarnings(rbfSignaling, unknownOpcode, outputs),
	}
}

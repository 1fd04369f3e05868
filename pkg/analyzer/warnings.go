package analyzer

import "block-lens/pkg/types"

// DustThreshold is the value below which a spendable output is reported as dust
const DustThreshold = 546

// GenerateWarnings creates the warning array for a decoded transaction
func GenerateWarnings(rbfSignaling, unknownOpcode bool, outputs []types.Output) []types.Warning {
	warnings := make([]types.Warning, 0)

	// DUST_OUTPUT: any non-OP_RETURN output < 546 sats
	for _, out := range outputs {
		if out.ScriptType != ScriptOpReturn && out.ValueSats < DustThreshold {
			warnings = append(warnings, types.Warning{Code: "DUST_OUTPUT"})
			break
		}
	}

	// UNKNOWN_OUTPUT_SCRIPT: any output has unknown script type
	for _, out := range outputs {
		if out.ScriptType == ScriptUnknown {
			warnings = append(warnings, types.Warning{Code: "UNKNOWN_OUTPUT_SCRIPT"})
			break
		}
	}

	// UNKNOWN_OPCODE: only reachable when decoding leniently
	if unknownOpcode {
		warnings = append(warnings, types.Warning{Code: "UNKNOWN_OPCODE"})
	}

	if rbfSignaling {
		warnings = append(warnings, types.Warning{Code: "RBF_SIGNALING"})
	}

	return warnings
}

package analyzer

// GetLocktimeType determines if locktime is block height, timestamp, or none
func GetLocktimeType(locktime uint32) string {
	if locktime == 0 {
		return "none"
	}
	if locktime < 500000000 {
		return "block_height"
	}
	return "unix_timestamp"
}

// ParseRelativeTimelock decodes a BIP68 relative timelock from an input sequence.
// BIP68 only applies from transaction version 2.
func ParseRelativeTimelock(txVersion, sequence uint32) (enabled bool, tlType string, value uint32) {
	if txVersion < 2 {
		return false, "", 0
	}

	// Bit 31 set disables the relative timelock
	if sequence&(1<<31) != 0 {
		return false, "", 0
	}

	// Bit 22 determines type: 0 = blocks, 1 = time
	if sequence&(1<<22) != 0 {
		// Time-based: value in 512-second increments
		return true, "time", (sequence & 0xffff) * 512
	}

	return true, "blocks", sequence & 0xffff
}

// IsRBFSignaling checks if transaction signals BIP125 replaceability
func IsRBFSignaling(sequences []uint32) bool {
	// Any input with sequence < 0xfffffffe signals RBF
	for _, seq := range sequences {
		if seq < 0xfffffffe {
			return true
		}
	}
	return false
}

package types

// BlockOutput represents the JSON output for a decoded block
type BlockOutput struct {
	OK           bool                `json:"ok"`
	Network      string              `json:"network,omitempty"`
	BlockHeader  BlockHeader         `json:"block_header"`
	SizeBytes    int                 `json:"size_bytes,omitempty"`
	TxCount      int                 `json:"tx_count"`
	Coinbase     *CoinbaseInfo       `json:"coinbase"`
	Transactions []TransactionOutput `json:"transactions"`
	BlockStats   BlockStats          `json:"block_stats"`
	Warnings     []Warning           `json:"warnings"`
	Error        *ErrorInfo          `json:"error,omitempty"`
}

// BlockHeader represents block header information
type BlockHeader struct {
	Version         int32  `json:"version"`
	PrevBlockHash   string `json:"prev_block_hash"`
	MerkleRoot      string `json:"merkle_root"`
	MerkleRootValid bool   `json:"merkle_root_valid"`
	Timestamp       uint32 `json:"timestamp"`
	Time            string `json:"time"`
	Bits            string `json:"bits"`
	Nonce           uint32 `json:"nonce"`
	BlockHash       string `json:"block_hash"`
}

// CoinbaseInfo represents coinbase transaction info
type CoinbaseInfo struct {
	Bip34Height       int64  `json:"bip34_height"`
	CoinbaseScriptHex string `json:"coinbase_script_hex"`
	TotalOutputSats   uint64 `json:"total_output_sats"`
}

// BlockStats represents block-level statistics
type BlockStats struct {
	TotalOutputSats   uint64         `json:"total_output_sats"`
	TotalInputs       int            `json:"total_inputs"`
	TotalOutputs      int            `json:"total_outputs"`
	ScriptTypeSummary map[string]int `json:"script_type_summary"`
}

// TransactionOutput represents a decoded transaction
type TransactionOutput struct {
	Txid            string    `json:"txid"`
	Coinbase        bool      `json:"coinbase"`
	Version         uint32    `json:"version"`
	Locktime        uint32    `json:"locktime"`
	LocktimeType    string    `json:"locktime_type"`
	SizeBytes       int       `json:"size_bytes"`
	TotalOutputSats uint64    `json:"total_output_sats"`
	RbfSignaling    bool      `json:"rbf_signaling"`
	VinCount        int       `json:"vin_count"`
	VoutCount       int       `json:"vout_count"`
	VoutScriptTypes []string  `json:"vout_script_types"`
	Vin             []Input   `json:"vin"`
	Vout            []Output  `json:"vout"`
	Warnings        []Warning `json:"warnings"`
}

// Input represents a transaction input
type Input struct {
	Txid             string           `json:"txid"`
	Vout             uint32           `json:"vout"`
	Sequence         uint32           `json:"sequence"`
	Coinbase         bool             `json:"coinbase"`
	CoinbaseHex      string           `json:"coinbase_hex,omitempty"`
	ScriptSigHex     string           `json:"script_sig_hex"`
	ScriptAsm        string           `json:"script_asm"`
	RelativeTimelock RelativeTimelock `json:"relative_timelock"`
}

// Output represents a transaction output
type Output struct {
	N                int     `json:"n"`
	ValueSats        uint64  `json:"value_sats"`
	ScriptPubkeyHex  string  `json:"script_pubkey_hex"`
	ScriptAsm        string  `json:"script_asm"`
	ScriptType       string  `json:"script_type"`
	Address          *string `json:"address"`
	OpReturnDataHex  string  `json:"op_return_data_hex,omitempty"`
	OpReturnDataUtf8 *string `json:"op_return_data_utf8,omitempty"`
}

// RelativeTimelock represents BIP68 relative timelock
type RelativeTimelock struct {
	Enabled bool   `json:"enabled"`
	Type    string `json:"type,omitempty"`
	Value   uint32 `json:"value,omitempty"`
}

// Warning represents an analysis warning
type Warning struct {
	Code string `json:"code"`
}

// ErrorInfo represents an error response
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeRequest is the body accepted by the web decode endpoint
type DecodeRequest struct {
	BlockHex string `json:"block_hex"`
	Network  string `json:"network"`
	Lenient  bool   `json:"lenient"`
}

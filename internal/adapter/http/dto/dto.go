package dto

// PlaceWagerRequest is the request body for placing a wager. Stake is a
// decimal string; StakeUnit says whether it is already in ledger units.
type PlaceWagerRequest struct {
	WagerID    *string    `json:"wager_id,omitempty" binding:"omitempty,uuid"`
	Stake      string     `json:"stake" binding:"required,decimal_amount"`
	StakeUnit  string     `json:"stake_unit,omitempty" binding:"omitempty,oneof=DECIMAL FIXED_POINT UNKNOWN"`
	Variant    string     `json:"variant" binding:"required,oneof=CONCEALMENT_GRID WHEEL"`
	Params     GameParams `json:"params"`
	ClientSeed string     `json:"client_seed,omitempty" binding:"omitempty,max=64,safe_id"`
}

// GameParams carries the variant's parameters; unused fields stay zero.
type GameParams struct {
	TotalCells     int    `json:"total_cells,omitempty" binding:"omitempty,min=2,max=100"`
	ConcealedCount int    `json:"concealed_count,omitempty" binding:"omitempty,min=1"`
	SegmentCount   int    `json:"segment_count,omitempty" binding:"omitempty,min=10,max=50"`
	Risk           string `json:"risk,omitempty" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	ThresholdBps   int64  `json:"threshold_bps,omitempty" binding:"omitempty,min=0"`
}

// PlayerActionRequest is the request body for one move.
type PlayerActionRequest struct {
	Kind  string `json:"kind" binding:"required,oneof=REVEAL SPIN"`
	Index *int   `json:"index,omitempty" binding:"omitempty,min=0"`
}

// ForceEndRequest optionally records why an operator discarded a wager.
type ForceEndRequest struct {
	Reason string `json:"reason,omitempty" binding:"omitempty,max=256"`
}

// WagerResponse is the response body describing a wager.
type WagerResponse struct {
	ID             string  `json:"id"`
	Variant        string  `json:"variant"`
	Stake          int64   `json:"stake"`
	Status         string  `json:"status"`
	Outcome        string  `json:"outcome"`
	Payout         int64   `json:"payout"`
	ServerSeedHash string  `json:"server_seed_hash"`
	ServerSeed     string  `json:"server_seed,omitempty"`
	ClientSeed     string  `json:"client_seed"`
	Nonce          uint64  `json:"nonce"`
	CreatedAt      string  `json:"created_at"`
	ResolvedAt     *string `json:"resolved_at,omitempty"`
}

// BalanceResponse is the response body for balance queries.
type BalanceResponse struct {
	AccountID    string `json:"account_id"`
	Balance      int64  `json:"balance"`
	Display      string `json:"display"`
	ScaleFactor  int64  `json:"scale_factor"`
	LastSyncedAt string `json:"last_synced_at,omitempty"`
}

// ModeResponse is the response body for mode queries.
type ModeResponse struct {
	Mode string `json:"mode"`
}

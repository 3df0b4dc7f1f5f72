package store

// Token is the per-symbol registry row: supply bounds, role principals, the
// vesting start timestamp and the registry-wide unique token index.
type Token struct {
	MaxSupply    int64  `json:"max_supply"`
	Supply       int64  `json:"supply"`
	Issuer       string `json:"issuer"`
	Ruler        string `json:"ruler"`
	Bigsetter    string `json:"bigsetter"`
	Locker       string `json:"locker"`
	Freezer      string `json:"freezer"`
	Unfreezer    string `json:"unfreezer"`
	VestingStart uint64 `json:"vesting_start"` // 0 = unset
	TokenIndex   uint32 `json:"token_index"`
	Precision    uint8  `json:"precision"`
}

// Position is one locked tranche: the principal a recipient received under
// a single vesting rule. The quantity only grows when further vesting
// transfers merge into it; the unlocked fraction is derived on read.
type Position struct {
	Recipient   string `json:"recipient"`
	Sender      string `json:"sender"`
	Quantity    int64  `json:"quantity"`
	LastTouched uint64 `json:"last_touched"`
}

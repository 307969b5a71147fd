package model

import (
	"encoding/json"
	"time"
)

// Analysis modes recorded in the archive.
const (
	ModeChannel = "channel"
	ModeBattle  = "battle"
	ModeTruth   = "truth"
)

// ArchiveEntry is one archived analysis result.
type ArchiveEntry struct {
	ID        int64           `json:"id"`
	Mode      string          `json:"mode"`
	Subject   string          `json:"subject"`
	Report    json.RawMessage `json:"report"`
	CreatedAt time.Time       `json:"createdAt"`
}

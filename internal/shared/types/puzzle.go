package types

// PuzzleState is a point-in-time copy of the progression flags
type PuzzleState struct {
	FoundV          bool   `json:"found_v"`
	FoundA          bool   `json:"found_a"`
	FoundU          bool   `json:"found_u"`
	FoundL          bool   `json:"found_l"`
	FoundT          bool   `json:"found_t"`
	OrderSeen       bool   `json:"order_seen_in_calendar"`
	VaultUnlocked   bool   `json:"vault_unlocked"`
	ArchiveLocked   bool   `json:"archive_locked"`
	ArchiveUnlocked bool   `json:"archive_unlocked"`
	PhotoDeepLink   string `json:"photo_deep_link,omitempty"`
	FileDeepLink    string `json:"file_deep_link,omitempty"`
}

package domain

// DisplayRow is one rendered table row. A parent row carries the course and
// its representative section plus a global 1-based ordinal; a child row
// carries one of the non-first sections of an expanded course and no ordinal.
type DisplayRow struct {
	Key         string   `json:"key"`
	IsChild     bool     `json:"is_child"`
	Course      Course   `json:"course"`
	Section     *Section `json:"section,omitempty"`
	Ordinal     int      `json:"ordinal,omitempty"`
	ColorIndex  int      `json:"color_index"`
	DarkVariant bool     `json:"dark_variant"`
}

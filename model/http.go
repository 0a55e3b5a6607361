package model

type TriggerRequestBody struct {
	Degree int      `json:"degree"`
	Gain   *float64 `json:"gain,omitempty"`
}

type TriggerResponse struct {
	Played    bool       `json:"played"`
	VoiceID   string     `json:"voice_id,omitempty"`
	AssetPath string     `json:"asset_path"`
	Pitches   []int      `json:"pitches"`
	Notes     []string   `json:"notes"`
	Event     ChordEvent `json:"event"`
}

type HistoryResponse struct {
	Changed bool         `json:"changed"`
	Events  []ChordEvent `json:"events"`
}

type SaveRequestBody struct {
	Name string `json:"name"`
}

type ExportResponse struct {
	Path string `json:"path"`
}

type StatusResponse struct {
	Status  string         `json:"status"`
	Context MusicalContext `json:"context"`
	Voices  []Voice        `json:"voices"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

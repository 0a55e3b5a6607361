package model

type VoiceState string

const (
	VoicePlaying   VoiceState = "playing"
	VoiceCompleted VoiceState = "completed"
	VoiceStopped   VoiceState = "stopped"
)

type Voice struct {
	ID        string     `json:"id"`
	AssetPath string     `json:"asset_path"`
	Gain      float64    `json:"gain"`
	State     VoiceState `json:"state"`
}

package catalog

// AssetType classifies a library asset and determines where it may be
// placed: music goes on audio tracks, everything else on the stage.
type AssetType string

const (
	TypeCharacter  AssetType = "character"
	TypeBackground AssetType = "background"
	TypeMusic      AssetType = "music"
	TypeGraphic    AssetType = "graphic"
)

// Types lists all valid asset types in display order.
var Types = []AssetType{TypeCharacter, TypeBackground, TypeMusic, TypeGraphic}

// Valid reports whether t is a known asset type.
func (t AssetType) Valid() bool {
	switch t {
	case TypeCharacter, TypeBackground, TypeMusic, TypeGraphic:
		return true
	}
	return false
}

// PlaceableOnCanvas reports whether an asset of this type can become a
// canvas asset. Pure audio assets cannot.
func (t AssetType) PlaceableOnCanvas() bool {
	return t.Valid() && t != TypeMusic
}

// IsAudio reports whether an asset of this type belongs on an audio track.
func (t AssetType) IsAudio() bool {
	return t == TypeMusic
}

// Asset is a single library entry. Duration and BPM are only meaningful
// for music assets; Duration is in seconds.
type Asset struct {
	ID           string    `yaml:"id"`
	Type         AssetType `yaml:"type"`
	Name         string    `yaml:"name,omitempty"`
	MediaURL     string    `yaml:"mediaUrl"`
	ThumbnailURL string    `yaml:"thumbnailUrl,omitempty"`
	Duration     float64   `yaml:"duration,omitempty"`
	BPM          int       `yaml:"bpm,omitempty"`
}

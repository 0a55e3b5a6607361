package chord

import (
	"path"
	"strconv"
	"strings"

	"github.com/jsphweid/diatonicpad/model"
)

const (
	AssetSeparator = "_"
	AssetExtension = ".wav"
	AssetDir       = "audio"
)

// AssetName maps a resolved chord and its context to the file name used by
// the sample library, e.g. "C_Ionian_I_maj_drop2_root__oct4.wav". Fields are
// used as given; callers pass validated contexts.
func AssetName(ctx model.MusicalContext, r Resolved) string {
	parts := []string{
		ctx.Tonic,
		ctx.Mode,
		r.Degree,
		r.Quality,
		ctx.Voicing,
		ctx.Inversion,
		model.NewTensions(ctx.Tensions...).String(),
		"oct" + strconv.Itoa(ctx.OctaveBase),
	}
	return strings.Join(parts, AssetSeparator) + AssetExtension
}

// AssetPath is AssetName relative to the assets root.
func AssetPath(ctx model.MusicalContext, r Resolved) string {
	return path.Join(AssetDir, AssetName(ctx, r))
}

// DefaultAssetPath is played when a requested asset is missing.
var DefaultAssetPath = path.Join(AssetDir, "C_Ionian_I_maj_drop2_root__oct4.wav")

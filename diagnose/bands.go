package diagnose

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-mixcheck/measure/spectral"
)

// ErrUnknownBand is returned for a band name without a canonical band.
var ErrUnknownBand = errors.New("diagnose: unknown band")

var bandAliases = map[string]string{
	"sub_bass":  spectral.BandSub,
	"subbass":   spectral.BandSub,
	"subgrave":  spectral.BandSub,
	"sub_grave": spectral.BandSub,
	"subgraves": spectral.BandSub,

	"graves": spectral.BandBass,
	"grave":  spectral.BandBass,
	"low":    spectral.BandBass,
	"lows":   spectral.BandBass,

	"lowmid":       spectral.BandLowMid,
	"low_mids":     spectral.BandLowMid,
	"lower_mid":    spectral.BandLowMid,
	"medio_grave":  spectral.BandLowMid,
	"médio_grave":  spectral.BandLowMid,
	"medios_grave": spectral.BandLowMid,

	"mids":   spectral.BandMid,
	"medio":  spectral.BandMid,
	"médio":  spectral.BandMid,
	"medios": spectral.BandMid,
	"médios": spectral.BandMid,

	"highmid":      spectral.BandHighMid,
	"high_mids":    spectral.BandHighMid,
	"upper_mid":    spectral.BandHighMid,
	"medio_agudo":  spectral.BandHighMid,
	"médio_agudo":  spectral.BandHighMid,
	"medios_agudo": spectral.BandHighMid,

	"presenca": spectral.BandPresence,
	"presença": spectral.BandPresence,

	"brilho":    spectral.BandBrilliance,
	"brillance": spectral.BandBrilliance,
	"air":       spectral.BandBrilliance,
	"ar":        spectral.BandBrilliance,
	"highs":     spectral.BandBrilliance,
	"treble":    spectral.BandBrilliance,
}

var canonicalBands = func() map[string]bool {
	m := make(map[string]bool)
	for _, name := range spectral.BandNames() {
		m[name] = true
	}

	return m
}()

// CanonicalBand resolves a canonical, localized or legacy band name to the
// name used by spectral.DefaultBands.
func CanonicalBand(name string) (string, bool) {
	key := normalizeKey(name)
	if canonicalBands[key] {
		return key, true
	}

	c, ok := bandAliases[key]

	return c, ok
}

// NormalizeBands rekeys band targets by canonical name so that each
// physical band has exactly one range. When several keys resolve to the
// same band the canonical key wins, otherwise the lexicographically first
// key.
func NormalizeBands(in map[string]TargetRange) (map[string]TargetRange, error) {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	out := make(map[string]TargetRange, len(in))
	exact := make(map[string]bool, len(in))

	for _, k := range keys {
		c, ok := CanonicalBand(k)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBand, k)
		}

		isCanonical := normalizeKey(k) == c

		if _, seen := out[c]; seen && (exact[c] || !isCanonical) {
			continue
		}

		out[c] = in[k]
		exact[c] = isCanonical
	}

	return out, nil
}

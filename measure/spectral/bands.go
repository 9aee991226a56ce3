package spectral

// Band is a named frequency range. LowHz is inclusive and HighHz exclusive,
// except for the last band of a set, which includes its upper edge.
type Band struct {
	Name     string
	LowHz    float64
	HighHz   float64
	CenterHz float64
}

// Canonical band names.
const (
	BandSub        = "sub"
	BandBass       = "bass"
	BandLowMid     = "low_mid"
	BandMid        = "mid"
	BandHighMid    = "high_mid"
	BandPresence   = "presence"
	BandBrilliance = "brilliance"
)

// DefaultBands returns the seven ordered, disjoint bands from 20 Hz to
// 20 kHz. The centre is the geometric mean of the edges.
func DefaultBands() []Band {
	return []Band{
		{Name: BandSub, LowHz: 20, HighHz: 60, CenterHz: 34.6},
		{Name: BandBass, LowHz: 60, HighHz: 250, CenterHz: 122.5},
		{Name: BandLowMid, LowHz: 250, HighHz: 500, CenterHz: 353.6},
		{Name: BandMid, LowHz: 500, HighHz: 2000, CenterHz: 1000},
		{Name: BandHighMid, LowHz: 2000, HighHz: 4000, CenterHz: 2828.4},
		{Name: BandPresence, LowHz: 4000, HighHz: 6000, CenterHz: 4899},
		{Name: BandBrilliance, LowHz: 6000, HighHz: 20000, CenterHz: 10954.5},
	}
}

// BandNames returns the names of DefaultBands in order.
func BandNames() []string {
	bands := DefaultBands()
	names := make([]string, len(bands))

	for i, b := range bands {
		names[i] = b.Name
	}

	return names
}

package core

// NeutralScore is the score reported when nothing was classified
const NeutralScore = 3.0

// Score reduces emotion counts to their weighted mean in [1,5]
func Score(counts EmotionCounts) float64 {
	total := 0
	weighted := 0
	for _, emotion := range Emotions {
		n := counts[emotion]
		total += n
		weighted += n * emotion.Weight()
	}
	if total == 0 {
		return NeutralScore
	}
	return float64(weighted) / float64(total)
}

// GaugeBand is one coloured range of the gauge axis
type GaugeBand struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Color string  `json:"color"`
	Label string  `json:"label"`
}

// GaugeThreshold is the marker line drawn at the score
type GaugeThreshold struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
	Width int     `json:"width"`
}

// GaugeSpec describes the emotion scale chart, independent of any chart library
type GaugeSpec struct {
	Title      string         `json:"title"`
	Min        float64        `json:"min"`
	Max        float64        `json:"max"`
	TickValues []float64      `json:"tick_values"`
	TickLabels []string       `json:"tick_labels"`
	BarColor   string         `json:"bar_color"`
	Bands      []GaugeBand    `json:"bands"`
	Value      float64        `json:"value"`
	Threshold  GaugeThreshold `json:"threshold"`
}

// NewGauge builds the chart description for a score
func NewGauge(score float64) GaugeSpec {
	return GaugeSpec{
		Title:      "Emotion Scale",
		Min:        1,
		Max:        5,
		TickValues: []float64{1, 2, 3, 4, 5},
		TickLabels: []string{"Angry", "Threat", "Neutral", "Joy", "Happy"},
		BarColor:   "black",
		Bands: []GaugeBand{
			{From: 1, To: 2, Color: "red", Label: string(Angry)},
			{From: 2, To: 3, Color: "orange", Label: string(Threat)},
			{From: 3, To: 4, Color: "yellow", Label: string(Neutral)},
			{From: 4, To: 5, Color: "green", Label: string(Joy) + "/" + string(Happy)},
		},
		Value: score,
		Threshold: GaugeThreshold{
			Value: score,
			Color: "blue",
			Width: 4,
		},
	}
}

// BandFor returns the band containing value; the upper bound of the last band is inclusive
func (g GaugeSpec) BandFor(value float64) (GaugeBand, bool) {
	for i, band := range g.Bands {
		last := i == len(g.Bands)-1
		if value >= band.From && (value < band.To || (last && value <= band.To)) {
			return band, true
		}
	}
	return GaugeBand{}, false
}

package cleaner

// State of the trip table after each step of a cleaning run
type State int

const (
	Loaded State = iota
	Imputed
	IntegrityFiltered
	FeatureEnriched
	InferredFiltered
)

var stateNames = map[State]string{
	Loaded:            "loaded",
	Imputed:           "imputed",
	IntegrityFiltered: "integrity-filtered",
	FeatureEnriched:   "feature-enriched",
	InferredFiltered:  "inferred-filtered",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

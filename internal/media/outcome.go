package media

import "time"

// Outcome records the result of attempting to place one file into a tier.
// Exactly one is created per file per classification pass; it is never
// mutated afterwards. On success both TargetPath and TierLabel are set; on
// failure ErrorMessage carries the reason and TargetPath stays empty.
type Outcome struct {
	Success      bool
	SourcePath   string
	TargetPath   string
	Info         *Info
	TierLabel    string
	ErrorMessage string
	Timestamp    time.Time
}

// Succeeded builds a successful outcome.
func Succeeded(source, target string, info Info, tierLabel string, at time.Time) Outcome {
	return Outcome{
		Success:    true,
		SourcePath: source,
		TargetPath: target,
		Info:       &info,
		TierLabel:  tierLabel,
		Timestamp:  at,
	}
}

// Failed builds a failed outcome. info may be nil when the failure happened
// before or during probing.
func Failed(source string, info *Info, errMsg string, at time.Time) Outcome {
	return Outcome{
		Success:      false,
		SourcePath:   source,
		Info:         info,
		ErrorMessage: errMsg,
		Timestamp:    at,
	}
}

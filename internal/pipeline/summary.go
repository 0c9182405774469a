package pipeline

import (
	"git.home.luguber.info/inful/rollerblade/internal/compiler"
	"git.home.luguber.info/inful/rollerblade/internal/metrics"
)

// Summary counts batch outcomes.
type Summary struct {
	Succeeded int
	Failed    int
	Canceled  int
	Warnings  int
}

// Summarize tallies outcomes. Warnings counts validation warnings across
// completed requests.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, out := range outcomes {
		switch {
		case out.State == StateCanceled:
			s.Canceled++
		case out.OK():
			s.Succeeded++
			if out.Result != nil {
				s.Warnings += len(out.Result.Warnings)
			}
		default:
			s.Failed++
		}
	}
	return s
}

// Outcome is the overall batch status used for metrics.
func (s Summary) Outcome() metrics.ResultLabel {
	switch {
	case s.Failed > 0:
		return metrics.ResultFailed
	case s.Canceled > 0:
		return metrics.ResultCanceled
	case s.Warnings > 0:
		return metrics.ResultWarning
	default:
		return metrics.ResultSuccess
	}
}

// Results returns the results of completed outcomes in order.
func Results(outcomes []Outcome) []*compiler.Result {
	out := make([]*compiler.Result, 0, len(outcomes))
	for _, o := range outcomes {
		if o.OK() {
			out = append(out, o.Result)
		}
	}
	return out
}

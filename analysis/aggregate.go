package analysis

import (
	"math"

	"github.com/cwbudde/algo-tensionfield/tension"
)

// Aggregate accumulates per-block render reports over a run.
type Aggregate struct {
	blocks int
	peak   tension.Report
	sum    tension.Report
}

// Add folds one block report into the aggregate.
func (a *Aggregate) Add(report tension.Report) {
	a.blocks++

	a.peak.InputLeft = math.Max(a.peak.InputLeft, report.InputLeft)
	a.peak.InputRight = math.Max(a.peak.InputRight, report.InputRight)
	a.peak.ElasticActivity = math.Max(a.peak.ElasticActivity, report.ElasticActivity)
	a.peak.WarpActivity = math.Max(a.peak.WarpActivity, report.WarpActivity)
	a.peak.SpaceActivity = math.Max(a.peak.SpaceActivity, report.SpaceActivity)
	a.peak.FeedbackActivity = math.Max(a.peak.FeedbackActivity, report.FeedbackActivity)
	a.peak.OutputLeft = math.Max(a.peak.OutputLeft, report.OutputLeft)
	a.peak.OutputRight = math.Max(a.peak.OutputRight, report.OutputRight)
	a.peak.TensionActivity = math.Max(a.peak.TensionActivity, report.TensionActivity)

	a.sum.InputLeft += report.InputLeft
	a.sum.InputRight += report.InputRight
	a.sum.ElasticActivity += report.ElasticActivity
	a.sum.WarpActivity += report.WarpActivity
	a.sum.SpaceActivity += report.SpaceActivity
	a.sum.FeedbackActivity += report.FeedbackActivity
	a.sum.OutputLeft += report.OutputLeft
	a.sum.OutputRight += report.OutputRight
	a.sum.TensionActivity += report.TensionActivity
}

// Blocks returns the number of reports added.
func (a *Aggregate) Blocks() int {
	return a.blocks
}

// Peak returns the per-field maxima across all added reports.
func (a *Aggregate) Peak() tension.Report {
	return a.peak
}

// Mean returns the per-field averages across all added reports.
// It returns a zero report before the first Add.
func (a *Aggregate) Mean() tension.Report {
	if a.blocks == 0 {
		return tension.Report{}
	}

	n := float64(a.blocks)
	return tension.Report{
		InputLeft:        a.sum.InputLeft / n,
		InputRight:       a.sum.InputRight / n,
		ElasticActivity:  a.sum.ElasticActivity / n,
		WarpActivity:     a.sum.WarpActivity / n,
		SpaceActivity:    a.sum.SpaceActivity / n,
		FeedbackActivity: a.sum.FeedbackActivity / n,
		OutputLeft:       a.sum.OutputLeft / n,
		OutputRight:      a.sum.OutputRight / n,
		TensionActivity:  a.sum.TensionActivity / n,
	}
}

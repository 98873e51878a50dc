package indicator

import (
	"btcpulse/internal/domain"
	"btcpulse/internal/provider"
)

// COT report sources.
const (
	COTSourceCFTC      = "cftc"
	COTSourceReference = "reference"
)

// NormalizeCOT maps the four CFTC position-holder classes onto the dashboard
// categories: dealers, institutions (asset managers), hedge funds (leveraged
// money) and retail (non-reportables).
func NormalizeCOT(report *provider.COTReport, source string) *domain.COT {
	if report == nil {
		return nil
	}

	return &domain.COT{
		ReportDate:   report.ReportDate.Format("2006-01-02"),
		Dealers:      cotCategory(report.DealerLong, report.DealerShort),
		Institutions: cotCategory(report.AssetManagerLong, report.AssetManagerShort),
		HedgeFunds:   cotCategory(report.LeveragedLong, report.LeveragedShort),
		Retail:       cotCategory(report.NonReportableLong, report.NonReportableShort),
		Source:       source,
	}
}

func cotCategory(long, short int) domain.COTCategory {
	cat := domain.COTCategory{
		Long:   long,
		Short:  short,
		Net:    long - short,
		Signal: domain.SignalNeutral,
	}
	if total := long + short; total > 0 {
		cat.LongPct = float64(long) / float64(total) * 100
		cat.ShortPct = float64(short) / float64(total) * 100
	}

	switch {
	case float64(long) > 1.5*float64(short) && long > 0:
		cat.Signal = domain.SignalBullish
	case float64(short) > 1.5*float64(long) && short > 0:
		cat.Signal = domain.SignalBearish
	}

	return cat
}

// NormalizeETF passes the flow figures through with their provenance.
func NormalizeETF(point *provider.ETFFlowPoint, source string) *domain.ETFFlows {
	if point == nil {
		return nil
	}
	return &domain.ETFFlows{
		DailyNetM:  point.DailyNetM,
		WeeklyNetM: point.WeeklyNetM,
		AsOf:       point.AsOf.Format("2006-01-02"),
		Source:     source,
	}
}

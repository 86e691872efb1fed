package export

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/threatforge/insider-synth/internal/domain/activity"
	"github.com/threatforge/insider-synth/internal/service/analysis"
)

// RenderReport formats the analysis summary as the plain-text report that
// accompanies every export. Large counts are comma grouped, rates printed
// as percentages with one decimal.
func RenderReport(summary *analysis.Summary, generatedAt time.Time) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder
	o := summary.Overview

	b.WriteString("\n=== INSIDER THREAT DATASET - ANALYSIS REPORT ===\n")
	fmt.Fprintf(&b, "Generated on: %s\n", generatedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("\n=== DATASET OVERVIEW ===\n")
	p.Fprintf(&b, "Total Records: %d\n", o.TotalRecords)
	p.Fprintf(&b, "Total Employees: %d\n", o.TotalEmployees)
	fmt.Fprintf(&b, "Date Range: %s to %s\n",
		o.FirstDate.Format(activity.DateLayout), o.LastDate.Format(activity.DateLayout))
	fmt.Fprintf(&b, "Total Days: %d\n", o.TotalDays)

	b.WriteString("\n=== MALICIOUS EMPLOYEE ANALYSIS ===\n")
	fmt.Fprintf(&b, "Malicious Employees: %d\n", o.MaliciousEmployees)
	p.Fprintf(&b, "Malicious Records: %d (%s)\n", o.MaliciousRecords, pct(o.MaliciousRecordRate))
	fmt.Fprintf(&b, "Malicious Employee Rate: %s\n", pct(o.MaliciousEmployeeRate))

	b.WriteString("\n=== DEPARTMENT DISTRIBUTION ===\n")
	for _, dept := range o.Departments {
		fmt.Fprintf(&b, "%s: %d employees (%d malicious, %s)\n",
			dept.Department, dept.Employees, dept.MaliciousEmployees,
			pct(ratio(dept.MaliciousEmployees, dept.Employees)))
	}

	b.WriteString("\n=== BEHAVIORAL GROUP ANALYSIS ===\n")
	for _, g := range summary.Groups {
		fmt.Fprintf(&b, "Group %s (%s): %d employees (%d malicious, %s)\n",
			g.Group, g.Department, g.TotalEmployees, g.MaliciousEmployees,
			pct(ratio(g.MaliciousEmployees, g.TotalEmployees)))
	}

	b.WriteString("\n=== ACTIVITY STATISTICS ===\n")
	p.Fprintf(&b, "Total Print Commands: %d\n", o.TotalPrintCommands)
	p.Fprintf(&b, "Total Pages Printed: %d\n", o.TotalPrintedPages)
	p.Fprintf(&b, "Total Burn Requests: %d\n", o.TotalBurnRequests)
	p.Fprintf(&b, "Total Files Burned: %d\n", o.TotalFilesBurned)
	p.Fprintf(&b, "Total Days Abroad: %d\n", o.TotalDaysAbroad)
	p.Fprintf(&b, "Hostile Country Visits: %d\n", o.HostileCountryVisits)
	p.Fprintf(&b, "Risk Travel Incidents: %d\n", o.RiskTravelIncidents)

	b.WriteString("\n=== OFF-HOURS ACTIVITY ===\n")
	p.Fprintf(&b, "Off-Hours Print Commands: %d (%s)\n", o.OffHoursPrintCommands, pct(o.OffHoursPrintRate))
	p.Fprintf(&b, "Off-Hours Burn Requests: %d (%s)\n", o.OffHoursBurnRequests, pct(o.OffHoursBurnRate))
	p.Fprintf(&b, "Early Entries: %d\n", o.EarlyEntries)
	p.Fprintf(&b, "Late Exits: %d\n", o.LateExits)
	p.Fprintf(&b, "Weekend Entries: %d\n", o.WeekendEntries)

	b.WriteString("\n=== DATA QUALITY CHECKS ===\n")
	b.WriteString("Missing Values:\n")
	anyMissing := false
	for _, mv := range o.MissingValues {
		if mv.Count == 0 {
			continue
		}
		anyMissing = true
		fmt.Fprintf(&b, "  %s: %d (%s)\n", mv.Column, mv.Count, pct(ratio(mv.Count, o.TotalRecords)))
	}
	if !anyMissing {
		b.WriteString("  No missing values detected\n")
	}

	b.WriteString("\nLogical Consistency:\n")
	fmt.Fprintf(&b, "  Employees abroad with no building access: %d / %d\n", o.AbroadWithoutAccess, o.AbroadRecords)
	fmt.Fprintf(&b, "  Color prints vs total prints: %d / %d\n", o.ColorPrints, o.TotalPrintedPages)
	fmt.Fprintf(&b, "  BW prints vs total prints: %d / %d\n", o.BWPrints, o.TotalPrintedPages)

	b.WriteString("\n=== RISK INDICATORS ===\n")
	fmt.Fprintf(&b, "High Classification Burning (Level 4): %d incidents\n", o.TopClassificationBurnDays)
	fmt.Fprintf(&b, "Multi-Campus Access: %d incidents\n", o.MultiCampusDays)
	fmt.Fprintf(&b, "Unofficial Travel: %d days\n", o.UnofficialTravelDays)
	fmt.Fprintf(&b, "Combined Risk Indicators: %d incidents\n", o.RiskTravelIncidents)

	b.WriteString("\n=== RECOMMENDATIONS ===\n")
	b.WriteString("1. Focus monitoring on employees with multiple risk indicators\n")
	b.WriteString("2. Pay special attention to off-hours activities\n")
	b.WriteString("3. Monitor travel patterns, especially to hostile countries\n")
	b.WriteString("4. Track high-classification document access and burning\n")
	b.WriteString("5. Investigate multi-campus access patterns\n")
	b.WriteString("6. Review unofficial travel combined with sensitive activities\n")

	return b.String()
}

func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func ratio(part, whole int) float64 {
	if whole < 1 {
		return 0
	}
	return float64(part) / float64(whole)
}

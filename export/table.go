package export

import (
	"consult-lab/domain"
	"consult-lab/errors"
	"consult-lab/repositories"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

const maxCellWidth = 80

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(true)
	table.SetColWidth(maxCellWidth)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetRowLine(true)
	return table
}

// RenderOpinions prints one row per specialist, in dispatch order.
func RenderOpinions(w io.Writer, opinions domain.AggregatedResponses) {
	table := newTable(w, []string{"#", "Specialty", "Status", "Opinion"})
	for i, r := range opinions.Results() {
		status, text := "ok", r.Response
		if !r.Succeeded() {
			status, text = "failed", r.Err.Error()
		}
		table.Append([]string{fmt.Sprint(i + 1), r.Specialty, status, text})
	}
	table.Render()
}

// RenderHistory prints a summary row per stored consultation.
func RenderHistory(w io.Writer, records []repositories.ConsultationRecord) {
	table := newTable(w, []string{"ID", "Created", "Mode", "Specialties", "Opinions", "Report"})
	for _, r := range records {
		succeeded := lo.CountBy(r.Opinions, func(o repositories.OpinionRecord) bool { return o.Error == "" })
		report := "ok"
		if r.ReportError != "" {
			report = "failed"
		}
		table.Append([]string{
			r.ID.String(),
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			string(r.Mode),
			strings.Join(r.Specialties, ", "),
			fmt.Sprintf("%d/%d", succeeded, len(r.Opinions)),
			report,
		})
	}
	table.Render()
}

// DescribeFailure names the stage an error comes from, for display.
func DescribeFailure(err error) string {
	switch errors.StageOf(err) {
	case errors.StageClassification:
		return fmt.Sprintf("Classification failed, no specialist was consulted: %v", err)
	case errors.StageSynthesis:
		return fmt.Sprintf("Synthesis failed, specialist opinions are shown above: %v", err)
	case errors.StageSpecialist:
		return fmt.Sprintf("Specialist failed: %v", err)
	case errors.StageGateway:
		return fmt.Sprintf("Gateway failed: %v", err)
	default:
		return fmt.Sprintf("Consultation failed: %v", err)
	}
}

package timing

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
)

const totalColumn = "Total"

// Report is one rendered view of a Recorder: either the intervals of the
// current cycle or the per-name averages across folded cycles.
type Report struct {
	Title     string          `json:"title"`
	Names     []string        `json:"names"`
	Intervals []time.Duration `json:"intervals_ns"`
	Total     time.Duration   `json:"total_ns"`
}

func newReport(title string, names []string, intervals []time.Duration) Report {
	rep := Report{
		Title:     title,
		Names:     names,
		Intervals: intervals,
	}
	for _, d := range intervals {
		rep.Total += d
	}
	return rep
}

// Len returns the number of intervals in the report.
func (r Report) Len() int { return len(r.Intervals) }

// Interval returns the first interval recorded under name.
func (r Report) Interval(name string) (time.Duration, bool) {
	for i, n := range r.Names {
		if n == name {
			return r.Intervals[i], true
		}
	}
	return 0, false
}

// Seconds returns the intervals as floating point seconds.
func (r Report) Seconds() []float64 {
	out := make([]float64, len(r.Intervals))
	for i, d := range r.Intervals {
		out[i] = d.Seconds()
	}
	return out
}

// Render writes the bordered table: a centred title line, the checkpoint names
// followed by Total, and the elapsed seconds followed by their sum.
func (r Report) Render(w io.Writer) error {
	var table bytes.Buffer
	tw := tablewriter.NewWriter(&table)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)

	header := make([]string, 0, len(r.Names)+1)
	header = append(header, r.Names...)
	tw.SetHeader(append(header, totalColumn))

	row := make([]string, 0, len(r.Intervals)+1)
	for _, d := range r.Intervals {
		row = append(row, formatSeconds(d))
	}
	tw.Append(append(row, formatSeconds(r.Total)))
	tw.Render()

	width := strings.IndexByte(table.String(), '\n')
	if _, err := io.WriteString(w, titleLine(r.Title, width)+"\n"); err != nil {
		return err
	}
	_, err := w.Write(table.Bytes())
	return err
}

func (r Report) String() string {
	var sb strings.Builder
	r.Render(&sb)
	return sb.String()
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 6, 64)
}

func titleLine(title string, width int) string {
	label := " " + title + " "
	pad := width - len(label)
	if pad < 6 {
		pad = 6
	}
	left := pad / 2
	return strings.Repeat("-", left) + label + strings.Repeat("-", pad-left)
}

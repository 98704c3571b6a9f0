package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/prx-network/relayleaf/internal/model"
)

// TablePrinter prints relay client information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintStats prints one statistics snapshot as a single line, suitable for
// periodic polling output.
func (t *TablePrinter) PrintStats(stats model.Stats) error {
	_, err := fmt.Fprintf(
		t.writer,
		"connected=%t nodes=%d uptime=%s streams=%d/%d sent=%s recv=%s reconnects=%d exits=%d\n",
		stats.Connected,
		stats.ConnectedNodes,
		FormatUptime(stats.Uptime),
		stats.ActiveStreams,
		stats.TotalStreams,
		FormatBytes(int64(stats.BytesSent)),
		FormatBytes(int64(stats.BytesReceived)),
		stats.ReconnectCount,
		len(stats.ExitPoints),
	)
	if err != nil {
		return err
	}

	if stats.LastError != "" {
		if _, err := fmt.Fprintf(t.writer, "last error: %s\n", stats.LastError); err != nil {
			return err
		}
	}

	return nil
}

// PrintHistory prints recorded snapshots in a table format.
func (t *TablePrinter) PrintHistory(records []model.SnapshotRecord) error {
	if len(records) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header.
	fmt.Fprintln(tw, "DEVICE\tCONNECTED\tNODES\tUPTIME\tSENT\tRECEIVED\tEXITS\tCAPTURED")

	// Print rows.
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%t\t%d\t%s\t%s\t%s\t%s\t%s\n",
			r.DeviceID,
			r.Stats.Connected,
			r.Stats.ConnectedNodes,
			FormatUptime(r.Stats.Uptime),
			FormatBytes(int64(r.Stats.BytesSent)),
			FormatBytes(int64(r.Stats.BytesReceived)),
			exitPointSummary(r.Stats.ExitPoints),
			FormatTimestamp(r.Stats.CapturedAt),
		)
	}

	return nil
}

// PrintMessage prints a simple message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}

func exitPointSummary(exitPoints []model.ExitPoint) string {
	if len(exitPoints) == 0 {
		return "-"
	}

	countries := make([]string, 0, len(exitPoints))
	for _, ep := range exitPoints {
		if ep.Country != "" {
			countries = append(countries, ep.Country)
		}
	}
	if len(countries) == 0 {
		return fmt.Sprintf("%d", len(exitPoints))
	}

	return strings.Join(countries, ",")
}

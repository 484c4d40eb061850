package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"

	client "github.com/devexp/devexp-go-client"
)

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func printContacts(contacts []client.Contact) {
	if outputJSON {
		printJSON(contacts)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tPHONE")
	for _, c := range contacts {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Phone)
	}
	_ = w.Flush()
}

func printMessages(messages []client.Message) {
	if outputJSON {
		printJSON(messages)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tFROM\tTO\tSTATUS\tCREATED\tCONTENT")
	for _, m := range messages {
		to := m.To.String()
		if m.ToContact != nil {
			to = fmt.Sprintf("%s (%s)", m.ToContact.Name, m.ToContact.Phone)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.ID, m.From, to, m.Status, m.CreatedAt.Format("2006-01-02 15:04:05"), m.Content)
	}
	_ = w.Flush()
}

// printMetrics writes the counters gathered during the command to stderr.
func printMetrics(reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		return
	}

	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })

	w := tabwriter.NewWriter(os.Stderr, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "METRIC\tLABELS\tVALUE")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := ""
			for _, lp := range m.GetLabel() {
				labels += lp.GetName() + "=" + lp.GetValue() + " "
			}

			var value string
			switch {
			case m.GetCounter() != nil:
				value = fmt.Sprintf("%g", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				value = fmt.Sprintf("count=%d sum=%.3fs", h.GetSampleCount(), h.GetSampleSum())
			default:
				continue
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", mf.GetName(), labels, value)
		}
	}
	_ = w.Flush()
}

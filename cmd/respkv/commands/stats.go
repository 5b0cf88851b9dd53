package commands

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var statsAddr string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Fetch metrics from a running respkv instance",
	Long: `Fetch /metrics from a running respkv instance's admin endpoint
and render the respkv_* series as a table.

Examples:
  respkv stats
  respkv stats --addr localhost:9090`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsAddr, "addr", "localhost:9090", "admin HTTP endpoint host:port")
}

func runStats(cmd *cobra.Command, args []string) error {
	url := fmt.Sprintf("http://%s/metrics", statsAddr)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to fetch metrics from %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("metrics endpoint returned status %d", resp.StatusCode)
	}

	samples, err := parseRespkvSamples(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to parse metrics: %w", err)
	}

	if len(samples) == 0 {
		fmt.Println("No respkv_* metrics found (is metrics.enabled set?)")
		return nil
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i].name < samples[j].name })

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, s := range samples {
		table.Append([]string{s.name, s.value})
	}
	table.Render()

	return nil
}

type metricSample struct {
	name  string
	value string
}

// parseRespkvSamples extracts respkv_* series from a Prometheus text
// exposition stream, one sample per metric/label-set line.
func parseRespkvSamples(r io.Reader) ([]metricSample, error) {
	scanner := bufio.NewScanner(r)
	var samples []metricSample

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "respkv_") {
			continue
		}

		idx := strings.LastIndex(line, " ")
		if idx < 0 {
			continue
		}
		name := line[:idx]
		value := line[idx+1:]

		if _, err := strconv.ParseFloat(value, 64); err != nil {
			continue
		}
		samples = append(samples, metricSample{name: name, value: value})
	}

	return samples, scanner.Err()
}

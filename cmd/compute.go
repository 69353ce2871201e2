package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sysafari.com/customs/costsim/config"
	"sysafari.com/customs/costsim/sheet"
	"sysafari.com/customs/costsim/worker"
)

var (
	computeInput  string
	computeReport bool
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute one request and print the response as JSON",
	Long: `Reads a cost request, the same JSON document the AMQP consumer accepts,
and prints the response. For example:
  costsim compute --input req.json --report
  cat req.json | costsim compute --input -
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(cmd.InOrStdin(), computeInput)
		if err != nil {
			return err
		}
		if computeReport {
			data, err = withReport(data)
			if err != nil {
				return err
			}
		}

		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		e, err := loadEngine(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		w := worker.New(e, sheet.NewReporter(cfg.Report.TmpDir), nil)
		res := w.Process(string(data))

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
		if res.Status != worker.StatusSuccess {
			return fmt.Errorf("%s", res.Error)
		}
		return nil
	},
}

func init() {
	computeCmd.Flags().StringVarP(&computeInput, "input", "i", "-", "request file, - for stdin")
	computeCmd.Flags().BoolVar(&computeReport, "report", false, "also write the xlsx report")
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// withReport sets the report flag of a raw request.
func withReport(data []byte) ([]byte, error) {
	req := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	req["report"] = json.RawMessage("true")
	return json.Marshal(req)
}

package cmd

import (
	"fmt"
	"text/tabwriter"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sysafari.com/customs/costsim/config"
	"sysafari.com/customs/costsim/ratestore"
	"sysafari.com/customs/costsim/sheet"
)

var searchLimit int

var tariffsCmd = &cobra.Command{
	Use:   "tariffs",
	Short: "Search and maintain the rate tables",
}

var tariffsSearchCmd = &cobra.Command{
	Use:   "search <code or text>",
	Short: "Find tariff lines by code prefix or description",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		e, err := loadEngine(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		entries := e.Resolver().Search(args[0], searchLimit)
		if len(entries) == 0 {
			return fmt.Errorf("no tariff line matches %q", args[0])
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tDUTY %\tCUMUL %\tCUMUL+TAX %\tRRR %\tRCP %\tDESCRIPTION")
		for _, t := range entries {
			fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t%s\n",
				t.Code, t.DutyRate, t.CumulativeWithoutTax, t.CumulativeWithTax, t.RRRRate, t.RCPRate, t.Description)
		}
		return w.Flush()
	},
}

var tariffsImportCmd = &cobra.Command{
	Use:   "import <workbook.xlsx>",
	Short: "Load a rate-table workbook into MySQL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imp, err := sheet.ImportRatesFile(args[0])
		if err != nil {
			return err
		}
		for _, e := range imp.Errors {
			log.Warnf("Skip rate row: %v", e)
		}

		store, closeDB, err := openStore()
		if err != nil {
			return err
		}
		defer closeDB()
		if err := store.Migrate(cmd.Context()); err != nil {
			return err
		}
		if err := store.Save(cmd.Context(), imp.Tariffs, imp.Exemptions, imp.PortFees); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d tariffs, %d exemptions, %d port fees, %d rows rejected\n",
			len(imp.Tariffs), len(imp.Exemptions), len(imp.PortFees), len(imp.Errors))
		return nil
	},
}

var tariffsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the rate tables in MySQL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeDB, err := openStore()
		if err != nil {
			return err
		}
		defer closeDB()
		return store.Migrate(cmd.Context())
	},
}

func init() {
	tariffsSearchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of lines listed")
	tariffsCmd.AddCommand(tariffsSearchCmd, tariffsImportCmd, tariffsMigrateCmd)
}

// openStore connects to MySQL regardless of rates.source.
func openStore() (*ratestore.Store, func(), error) {
	v := viper.GetViper()
	db, err := ratestore.Open(config.MySQL{
		Url:             v.GetString("mysql.url"),
		MaxOpenConns:    v.GetInt("mysql.max-open-conns"),
		MaxIdleConns:    v.GetInt("mysql.max-idle-conns"),
		ConnMaxLifetime: v.GetDuration("mysql.conn-max-lifetime"),
	})
	if err != nil {
		return nil, nil, err
	}
	return ratestore.New(db), func() { db.Close() }, nil
}

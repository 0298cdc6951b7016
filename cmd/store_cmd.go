package cmd

import (
	"fmt"

	"github.com/theirongolddev/moolah/internal/cli"

	"github.com/spf13/cobra"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage scenarios saved in the database",
}

var storeSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current scenario, replacing one with the same name",
	Args:  cobra.NoArgs,
	RunE:  runStoreSave,
}

var storeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved scenarios",
	Args:    cobra.NoArgs,
	RunE:    runStoreList,
}

var storeRmCmd = &cobra.Command{
	Use:   "rm <id|name>",
	Short: "Delete a saved scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreRm,
}

func init() {
	storeCmd.AddCommand(storeSaveCmd, storeListCmd, storeRmCmd)
	rootCmd.AddCommand(storeCmd)
}

func runStoreSave(cmd *cobra.Command, _ []string) error {
	sc, src, err := loadScenario()
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.SaveScenario(sc)
	if err != nil {
		return fmt.Errorf("saving %s: %w", src, err)
	}
	log.Info().Str("id", id).Str("name", sc.Name).Msg("scenario stored")
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

func runStoreList(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	list, err := st.ListScenarios()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "  No saved scenarios. Store one with `moolah store save`.")
		return nil
	}

	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			s.ID,
			s.Name,
			cli.FormatDate(s.Start),
			cli.FormatMoney(s.InitialValue),
			cli.FormatNumber(int64(s.Deltas)),
			s.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Headers: []string{"ID", "Name", "Start", "Initial", "Deltas", "Updated"},
		Rows:    rows,
		Left:    []int{1, 2, 5},
	}))
	return nil
}

func runStoreRm(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	id := resolveID(st, args[0])
	if err := st.DeleteScenario(id); err != nil {
		return err
	}
	log.Info().Str("id", id).Msg("scenario deleted")
	fmt.Fprintf(cmd.OutOrStdout(), "  Deleted %s\n", id)
	return nil
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wordjournal/xcproj/internal/pbxid"
	"github.com/wordjournal/xcproj/internal/terminal"
)

var idsCount int

var idsCmd = &cobra.Command{
	Use:   "ids",
	Short: "Print fresh object identifiers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIDs(idsCount)
	},
}

func init() {
	idsCmd.Flags().IntVarP(&idsCount, "count", "n", 1, "number of identifiers")
}

func runIDs(n int) error {
	if n < 1 {
		return fmt.Errorf("count must be positive, got %d", n)
	}
	tbl := pbxid.NewTable(nil)
	for i := range n {
		id, err := tbl.Allocate(fmt.Sprintf("id:%d", i))
		if err != nil {
			return err
		}
		terminal.Println(id)
	}
	return nil
}

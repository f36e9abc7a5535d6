package commands

import (
	"github.com/spf13/cobra"

	"github.com/wordjournal/xcproj/internal/terminal"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the effective project layout as YAML",
	Long:  "Print the layout generate and verify use, with defaults filled in. The output can be edited and passed back with --layout.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLayout()
	},
}

func runLayout() error {
	l, err := loadLayout()
	if err != nil {
		return err
	}
	data, err := l.Marshal()
	if err != nil {
		return err
	}
	_, err = terminal.Output().Write(data)
	return err
}

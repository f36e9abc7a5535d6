package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wordjournal/xcproj/internal/terminal"
	"github.com/wordjournal/xcproj/internal/verify"
)

// errVerifyFailed is returned by verify --strict when files are missing.
var errVerifyFailed = errors.New("project verification failed")

var verifyStrict bool

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the expected source files and the manifest exist",
	Long:  "Check each expected source file below the project root, then the project manifest. The result is printed; with --strict a failed check also exits with status 1.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify(verifyStrict)
	},
}

func init() {
	verifyCmd.Flags().BoolVar(&verifyStrict, "strict", false, "exit with status 1 when any file is missing")
}

func runVerify(strict bool) error {
	table, app := verify.RequiredFiles, "WordJournal"
	if cfg.LayoutPath != "" {
		l, err := loadLayout()
		if err != nil {
			return err
		}
		table, app = verify.FromLayout(l), l.Name
	}

	report := verify.Run(cfg.Root, table, verify.DefaultManifest(app))
	printReport(report, app)

	logger.Debug("verification finished",
		zap.Int("checked", len(report.Entries)),
		zap.Int("missing", len(report.Missing())),
		zap.Bool("manifest", report.ManifestPresent))

	if strict && !report.Passed() {
		return errVerifyFailed
	}
	return nil
}

func printReport(report *verify.Report, app string) {
	terminal.Println("Verifying project files...")
	terminal.Divider()
	for _, e := range report.Entries {
		if e.Present {
			terminal.Success(e.Name)
			continue
		}
		terminal.Error(fmt.Sprintf("%s at %s", e.Name, e.Path))
		logger.Debug("missing file", zap.String("path", e.Path), zap.String("reason", e.Reason))
	}
	terminal.Divider()

	terminal.Println("")
	if len(report.Missing()) == 0 {
		terminal.Success("All required files are present!")
		printNextSteps(
			fmt.Sprintf("Open %s.xcodeproj in Xcode", app),
			"Verify all files appear in Project Navigator",
			"Ensure dictionary.json has Target Membership checked",
			"Build and run (Cmd+R)",
		)
	} else {
		terminal.Error("Some files are missing!")
		terminal.Println("Please check the file paths above.")
	}

	terminal.Println("")
	if report.ManifestPresent {
		terminal.Success(fmt.Sprintf("Xcode project file exists: %s", report.ManifestPath))
	} else {
		terminal.Error(fmt.Sprintf("Xcode project file not found: %s", report.ManifestPath))
	}

	terminal.Divider()
	if report.Passed() {
		terminal.Success("Verification passed")
	} else {
		terminal.Error(fmt.Sprintf("Verification failed: %d of %d files missing, project file %s",
			len(report.Missing()), len(report.Entries), manifestState(report)))
	}
}

func manifestState(report *verify.Report) string {
	if report.ManifestPresent {
		return "present"
	}
	return "missing"
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thesyncim/glasscheck/pkg/smoke"
)

func newListCommand(flags *Flags) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the tests each project would run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listTests(cmd, flags)
		},
	}
	listCmd.Flags().StringSliceVarP(&flags.Projects, "project", "p", nil, "Only list the named project (repeatable)")
	listCmd.Flags().StringVarP(&flags.Grep, "grep", "g", "", "Only list tests whose title matches this regular expression")
	listCmd.Flags().StringVarP(&flags.TestDir, "test-dir", "t", "", "Directory to collect *.spec.yaml files from")
	return listCmd
}

func listTests(cmd *cobra.Command, flags *Flags) error {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}
	projects, err := cfg.SelectProjects(flags.Projects)
	if err != nil {
		return err
	}
	cases, err := collect(cfg, flags.Grep)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Listing tests:")
	for _, p := range projects {
		for _, c := range cases {
			fmt.Fprintf(out, "  [%s] › %s\n", p.Name, c.FullTitle())
		}
	}
	fmt.Fprintf(out, "Total: %d tests in %d files\n", len(projects)*len(cases), len(smoke.Files(cases)))
	return nil
}

package main

import (
	"log/slog"
	"strings"

	"github.com/JonMunkholm/onkofaze/internal/core"
	"github.com/JonMunkholm/onkofaze/internal/logging"
	"github.com/JonMunkholm/onkofaze/internal/termview"
	"github.com/spf13/cobra"
)

// defaultMaxSize matches the server's SCHEDULE_MAX_SIZE default.
const defaultMaxSize = 5 << 20

type options struct {
	file    string
	maxSize int64
	verbose bool
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "harmonogram",
		Short: "Browse the hospital construction schedule",
		Long: `Reads the phase schedule document and shows departments, their
timelines and the construction notes that apply to every department.
Without --file the bundled example schedule is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			slog.SetDefault(logging.New(cmd.ErrOrStderr(), level, "text"))
		},
	}

	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "Schedule CSV file (default: bundled schedule)")
	root.PersistentFlags().Int64Var(&opts.maxSize, "max-size", defaultMaxSize, "Maximum document size in bytes")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newDepartmentsCmd(opts))
	root.AddCommand(newTimelineCmd(opts))
	root.AddCommand(newNotesCmd(opts))
	root.AddCommand(newClassifyCmd())
	return root
}

// loadService builds a service for the selected source and loads it once.
func (o *options) loadService(cmd *cobra.Command) (*core.Service, error) {
	var src core.Source = core.DefaultSource()
	if o.file != "" {
		src = core.FileSource{Path: o.file, MaxSize: o.maxSize}
	}

	svc := core.NewService(src)
	if err := svc.Reload(cmd.Context()); err != nil {
		return nil, err
	}
	return svc, nil
}

// =============================================================================
// SUBCOMMANDS
// =============================================================================

func newDepartmentsCmd(opts *options) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "departments",
		Short: "List departments grouped by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.loadService(cmd)
			if err != nil {
				return err
			}
			return termview.New(cmd.OutOrStdout()).Departments(svc.Departments(search))
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by category or department name")
	return cmd
}

func newTimelineCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "timeline <row-id>",
		Short: "Show the phase timeline of one department",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.loadService(cmd)
			if err != nil {
				return err
			}
			view, err := svc.Department(args[0])
			if err != nil {
				return err
			}
			tv := termview.New(cmd.OutOrStdout())
			if err := tv.Timeline(view); err != nil {
				return err
			}
			return tv.Legend()
		},
	}
}

func newNotesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "notes",
		Short: "Show construction notes per phase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.loadService(cmd)
			if err != nil {
				return err
			}
			return termview.New(cmd.OutOrStdout()).Notes(svc.Snapshot().Result)
		},
	}
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text...>",
		Short: "Classify a schedule cell",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return termview.New(cmd.OutOrStdout()).Classification(strings.Join(args, " "))
		},
	}
}

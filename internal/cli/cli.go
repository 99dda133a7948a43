// Package cli implements eventctl, a terminal front end to the same event
// store the server uses.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pkordes/eventboard/internal/domain"
	"github.com/pkordes/eventboard/internal/export"
	"github.com/pkordes/eventboard/internal/service"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// OpenFunc opens the event store for one command. The returned close
// function is called when the command finishes.
type OpenFunc func(ctx context.Context) (*service.EventStore, func() error, error)

// Options configures the command tree.
type Options struct {
	Open       OpenFunc
	Categories domain.Categories
	// Now stamps exports; nil means time.Now.
	Now func() time.Time
}

type runner struct {
	opts    Options
	noColor bool
}

// NewRootCmd creates the root command
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if len(opts.Categories) == 0 {
		opts.Categories = domain.DefaultCategories
	}
	r := &runner{opts: opts}

	cmd := &cobra.Command{
		Use:   "eventctl",
		Short: "Manage the event board from the terminal",
		Long: `eventctl lists, adds, edits, deletes and exports events in the
store configured by STORAGE_DRIVER and friends (see .env.example).`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if r.noColor {
				color.NoColor = true
			}
		},
	}
	cmd.PersistentFlags().BoolVar(&r.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(
		r.newListCmd(),
		r.newAddCmd(),
		r.newEditCmd(),
		r.newDeleteCmd(),
		r.newExportCmd(),
	)
	return cmd
}

// withStore opens the store, runs fn and closes the store again.
func (r *runner) withStore(ctx context.Context, fn func(*service.EventStore) error) error {
	store, closeFn, err := r.opts.Open(ctx)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	runErr := fn(store)
	if err := closeFn(); err != nil && runErr == nil {
		return fmt.Errorf("closing store: %w", err)
	}
	return runErr
}

func (r *runner) newListCmd() *cobra.Command {
	var f domain.Filter
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events sorted by date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != FormatText && format != FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", format)
			}
			return r.withStore(cmd.Context(), func(s *service.EventStore) error {
				return WriteEvents(cmd.OutOrStdout(), s.List(f), f, s.Len(), format)
			})
		},
	}
	cmd.Flags().StringVar(&f.Category, "category", "", "Only show this category ('all' for every category)")
	cmd.Flags().StringVar(&f.Search, "search", "", "Case-insensitive text to match in title or description")
	cmd.Flags().StringVar(&format, "format", FormatText, "Output format: text or json")
	return cmd
}

func (r *runner) newAddCmd() *cobra.Command {
	var title, date, category, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := domain.EventInput{Title: &title, Date: &date, Category: &category, Description: &description}
			if err := service.ValidateInput(in, r.opts.Categories, false); err != nil {
				return err
			}
			return r.withStore(cmd.Context(), func(s *service.EventStore) error {
				e, err := s.Add(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s (id %s)\n", service.MsgAdded, e.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Event title (required)")
	cmd.Flags().StringVar(&date, "date", "", "Event date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&category, "category", "", "One of: "+strings.Join(r.opts.Categories, ", ")+" (required)")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("category")
	return cmd
}

func (r *runner) newEditCmd() *cobra.Command {
	var title, date, category, description string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of an existing event",
		Long:  "Only the flags given on the command line are changed; everything else is kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := domain.EventInput{}
			flags := cmd.Flags()
			if flags.Changed("title") {
				in.Title = &title
			}
			if flags.Changed("date") {
				in.Date = &date
			}
			if flags.Changed("category") {
				in.Category = &category
			}
			if flags.Changed("description") {
				in.Description = &description
			}
			if in == (domain.EventInput{}) {
				return errors.New("nothing to change: pass at least one of --title, --date, --category, --description")
			}
			if err := service.ValidateInput(in, r.opts.Categories, true); err != nil {
				return err
			}

			id := args[0]
			return r.withStore(cmd.Context(), func(s *service.EventStore) error {
				_, found, err := s.Update(cmd.Context(), id, in)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
				}
				fmt.Fprintln(cmd.OutOrStdout(), service.MsgUpdated)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&date, "date", "", "New date, YYYY-MM-DD")
	cmd.Flags().StringVar(&category, "category", "", "New category")
	cmd.Flags().StringVar(&description, "description", "", "New description (empty string clears it)")
	return cmd
}

func (r *runner) newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an event after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var confirm service.Confirmer = service.AlwaysConfirm
			if !yes {
				confirm = PromptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
			}

			id := args[0]
			return r.withStore(cmd.Context(), func(s *service.EventStore) error {
				if _, err := s.Get(id); err != nil {
					return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
				}
				outcome, err := s.Delete(cmd.Context(), id, confirm)
				if err != nil {
					return err
				}
				switch outcome {
				case service.DeleteDeclined:
					fmt.Fprintln(cmd.OutOrStdout(), "Delete cancelled.")
				case service.DeleteNotFound:
					return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
				case service.DeleteRemoved:
					fmt.Fprintln(cmd.OutOrStdout(), service.MsgDeleted)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (r *runner) newExportCmd() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every event as JSON, CSV or iCalendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withStore(cmd.Context(), func(s *service.EventStore) error {
				f, err := export.Encode(s.List(domain.Filter{}), format, r.opts.Now())
				if err != nil {
					return err
				}
				if output == "" || output == "-" {
					_, err = cmd.OutOrStdout().Write(f.Body)
					return err
				}
				if err := os.WriteFile(output, f.Body, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", output, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", export.FormatJSON, "Export format: "+strings.Join(export.Formats, ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

// PromptConfirmer asks on out and reads a y/N answer from in.
// Anything other than "y" or "yes" declines, including EOF.
func PromptConfirmer(in io.Reader, out io.Writer) service.Confirmer {
	reader := bufio.NewReader(in)
	return service.ConfirmFunc(func(_ context.Context, prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	})
}

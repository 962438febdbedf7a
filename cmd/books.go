package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"bookshelf/models"
	"bookshelf/render"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var addInput models.BookInput

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a book to the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer app.close()

		if err := app.controller.OnAdd(); err != nil {
			return err
		}
		if err := app.controller.OnFormChange(addInput); err != nil {
			return err
		}
		book, err := app.controller.OnSubmit(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), book.Id)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list [filter]",
	Short: "List books, optionally only those whose name contains filter",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer app.close()

		filter := ""
		if len(args) == 1 {
			filter = args[0]
		}
		return writeRows(cmd.OutOrStdout(), app.controller.OnSearch(filter))
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a book by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer app.close()

		if _, err := app.controller.OnDeleteRequested(models.Id(args[0])); err != nil {
			return err
		}
		book, err := app.controller.OnDeleteConfirmed(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "removed %s (%s)\n", book.Name, book.Id)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addInput.Name, "name", "", "book name")
	addCmd.Flags().StringVar(&addInput.Author, "author", "", "book author")
	addCmd.Flags().StringVar(&addInput.Topic, "topic", "", "book topic")
	for _, flag := range []string{"name", "author", "topic"} {
		addCmd.MarkFlagRequired(flag)
	}
}

func writeRows(out io.Writer, rows []render.Row) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	header := color.New(color.Bold)
	header.Fprintf(w, "ID\tNAME\tAUTHOR\tTOPIC\n")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", row.Id, row.Name, row.Author, row.Topic)
	}
	return w.Flush()
}

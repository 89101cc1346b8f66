package options

import (
	"github.com/spf13/cobra"
)

// RecordsOptions narrow and order the record list.
type RecordsOptions struct {
	Query    string
	Category string
	Sort     string
}

func AddRecordsArgs(cmd *cobra.Command, o *RecordsOptions) {
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		"Only show records in this category.")
	cmd.Flags().StringVarP(&o.Sort, "sort", "s", "",
		"Sort order: alphabetical or recent.")
}

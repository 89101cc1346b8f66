// Package records prints the filtered record list and single records.
package records

import (
	"context"
	"errors"

	"tableflip.dev/ampcred/pkg/app"
	"tableflip.dev/ampcred/pkg/console"
	"tableflip.dev/ampcred/pkg/filter"
	"tableflip.dev/ampcred/pkg/printers"
	"tableflip.dev/ampcred/pkg/record"
)

// Records prints the records matching Query and Category.
type Records struct {
	Service  *app.Service
	Printer  *printers.PrettyPrint
	Query    string
	Category string
	JSON     bool
}

type listOutput struct {
	Query   filter.Query    `json:"query"`
	Empty   string          `json:"empty,omitempty"`
	Records []record.Record `json:"records"`
}

func (r *Records) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("records: no console loaded")
	}
	pp := r.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	c := r.Service.Console
	c.SetQuery(r.Query)
	c.SetCategory(r.Category)

	list := c.Records()
	empty := c.EmptyMessage(console.RecordsPane)
	if r.JSON {
		if list == nil {
			list = []record.Record{}
		}
		return pp.JSON(listOutput{Query: c.Query(), Empty: empty, Records: list})
	}

	q := c.Query()
	pp.Header(r.Service.Variant)
	pp.TitleWithCount(q.Category+" · "+q.Sort.Title(), len(list))
	pp.NewLine()
	pp.Records(list, empty)
	return nil
}

// Show prints one record with its abstract rendered as markdown.
type Show struct {
	Service *app.Service
	Printer *printers.PrettyPrint
	ID      string
	JSON    bool
}

func (s *Show) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("records: no console loaded")
	}
	pp := s.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	rec, err := s.Service.Record(s.ID)
	if err != nil {
		return err
	}
	if s.JSON {
		return pp.JSON(rec)
	}
	return pp.RecordDetail(rec)
}

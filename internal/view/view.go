// Package view derives the renderable projection of the tracker dataset:
// every row annotated with display colors and flagged as shown or hidden by
// the current filter selection.
package view

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/hupe1980/trackerview/internal/filter"
	"github.com/hupe1980/trackerview/internal/scale"
	"github.com/hupe1980/trackerview/internal/tracker"
)

// Annotated is a categorical value with its display color.
type Annotated struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Categories is the annotated counterpart of tracker.Categories. The
// partnership fields carry no color.
type Categories struct {
	NewStatus               Annotated `json:"new_status"`
	UseCase                 Annotated `json:"use_case"`
	Technology              Annotated `json:"technology"`
	Architecture            Annotated `json:"architecture"`
	Infrastructure          Annotated `json:"infrastructure"`
	Access                  Annotated `json:"access"`
	CorporatePartnership    string    `json:"corporate_partnership"`
	CrossborderPartnerships string    `json:"crossborder_partnerships"`
}

// Row is one row of the derived view. Hidden rows stay in the sequence with
// Show set to false.
type Row struct {
	Name       Annotated  `json:"name"`
	Categories Categories `json:"categories"`
	Show       bool       `json:"show"`
}

// Derive computes the view of rows under the given filter states and color
// scales. A row is shown when, for every filter, its value is selected.
// Filters missing from states select nothing.
func Derive(rows []tracker.Row, states filter.Snapshot, scales *scale.Set) []Row {
	if scales == nil {
		scales = scale.NewSet()
	}

	defs := filter.Definitions()

	selections := make([]sets.Set[string], len(defs))
	for i, d := range defs {
		selections[i] = states[d.Name].Selection()
	}

	status := scales.Get(scale.Status)
	country := scales.Get(scale.Country)
	useCase := scales.Get(scale.UseCase)
	technology := scales.Get(scale.Technology)
	architecture := scales.Get(scale.Architecture)
	infrastructure := scales.Get(scale.Infrastructure)
	access := scales.Get(scale.Access)

	out := make([]Row, len(rows))

	for i, r := range rows {
		c := r.Categories

		show := true

		for j, d := range defs {
			if !selections[j].HasAny(d.Accessor(r)...) {
				show = false
				break
			}
		}

		out[i] = Row{
			Name: annotate(r.Name, country),
			Categories: Categories{
				NewStatus:               annotate(c.NewStatus, status),
				UseCase:                 annotate(c.UseCase, useCase),
				Technology:              annotate(c.Technology, technology),
				Architecture:            annotate(c.Architecture, architecture),
				Infrastructure:          annotate(c.Infrastructure, infrastructure),
				Access:                  annotate(c.Access, access),
				CorporatePartnership:    c.CorporatePartnership,
				CrossborderPartnerships: c.CrossborderPartnerships,
			},
			Show: show,
		}
	}

	return out
}

func annotate(value string, c scale.ColorScale) Annotated {
	return Annotated{Name: value, Color: c.Color(value)}
}

// Shown returns the rows with Show set.
func Shown(rows []Row) []Row {
	out := make([]Row, 0, len(rows))

	for _, r := range rows {
		if r.Show {
			out = append(out, r)
		}
	}

	return out
}

// Stats summarizes a derived view.
type Stats struct {
	Total  int `json:"total"`
	Shown  int `json:"shown"`
	Hidden int `json:"hidden"`
}

// Summarize counts shown and hidden rows.
func Summarize(rows []Row) Stats {
	s := Stats{Total: len(rows)}

	for _, r := range rows {
		if r.Show {
			s.Shown++
		}
	}

	s.Hidden = s.Total - s.Shown

	return s
}

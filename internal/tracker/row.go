// Package tracker defines the tracker dataset: one row per country or
// deployment with a fixed set of categorical attributes. It also provides the
// CSV loader and the canonical status vocabulary.
package tracker

// Row is a single dataset record. Rows are treated as immutable once loaded.
type Row struct {
	// Name identifies the country or entity the row describes.
	Name string `json:"name"`
	// Categories holds the categorical attributes of the row.
	Categories Categories `json:"categories"`
}

// Categories holds the categorical string fields of a Row.
type Categories struct {
	NewStatus               string `json:"new_status"`
	UseCase                 string `json:"use_case"`
	Technology              string `json:"technology"`
	Architecture            string `json:"architecture"`
	Infrastructure          string `json:"infrastructure"`
	Access                  string `json:"access"`
	CorporatePartnership    string `json:"corporate_partnership"`
	CrossborderPartnerships string `json:"crossborder_partnerships"`
}

// Column names as they appear in the dataset header.
const (
	ColumnName                    = "name"
	ColumnNewStatus               = "new_status"
	ColumnUseCase                 = "use_case"
	ColumnTechnology              = "technology"
	ColumnArchitecture            = "architecture"
	ColumnInfrastructure          = "infrastructure"
	ColumnAccess                  = "access"
	ColumnCorporatePartnership    = "corporate_partnership"
	ColumnCrossborderPartnerships = "crossborder_partnerships"
)

// setColumn assigns value to the field identified by column. It reports
// whether the column is known.
func (r *Row) setColumn(column, value string) bool {
	c := &r.Categories

	switch column {
	case ColumnName:
		r.Name = value
	case ColumnNewStatus:
		c.NewStatus = value
	case ColumnUseCase:
		c.UseCase = value
	case ColumnTechnology:
		c.Technology = value
	case ColumnArchitecture:
		c.Architecture = value
	case ColumnInfrastructure:
		c.Infrastructure = value
	case ColumnAccess:
		c.Access = value
	case ColumnCorporatePartnership:
		c.CorporatePartnership = value
	case ColumnCrossborderPartnerships:
		c.CrossborderPartnerships = value
	default:
		return false
	}

	return true
}

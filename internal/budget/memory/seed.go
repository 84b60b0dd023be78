package memory

import "github.com/ShishirPoreddy/Landover-Hills-Dashboard/internal/core"

// SeedFacts returns the adopted Landover Hills budget dataset used by the
// demo backend. FY26 is a partial year: only the line items adopted so far
// are present.
func SeedFacts() []core.BudgetFact {
	return []core.BudgetFact{
		// FY24 adopted budget, total $5,391,635.
		{FiscalYear: core.FY24, Category: "ADMINISTRATION", LineItem: "Payroll Taxes", Amount: 20389},
		{FiscalYear: core.FY24, Category: "ADMINISTRATION", LineItem: "Salaries", Amount: 700000},
		{FiscalYear: core.FY24, Category: "TAXES", LineItem: "Real Property", Amount: 1400000},
		{FiscalYear: core.FY24, Category: "POLICE DEPARTMENT", LineItem: "Salaries", Amount: 1100000},
		{FiscalYear: core.FY24, Category: "PUBLIC WORKS", LineItem: "Road Repairs", Amount: 900000},
		{FiscalYear: core.FY24, Category: "GRANTS", LineItem: "Police Grants", Amount: 1271246},

		// FY25 adopted budget, total $6,894,068.
		{FiscalYear: core.FY25, Category: "TAXES", LineItem: "Real Property", Amount: 1481200},
		{FiscalYear: core.FY25, Category: "POLICE DEPARTMENT", LineItem: "Salaries", Amount: 1249212},
		{FiscalYear: core.FY25, Category: "TRASH REMOVAL", LineItem: "Contract", Amount: 1163656},
		{FiscalYear: core.FY25, Category: "PUBLIC WORKS", LineItem: "Road Repairs", Amount: 1100000},
		{FiscalYear: core.FY25, Category: "GRANTS", LineItem: "Police Grants", Amount: 1000000},
		{FiscalYear: core.FY25, Category: "ADMINISTRATION", LineItem: "Salaries", Amount: 900000},

		// FY26 partial, total $2,721,944 so far.
		{FiscalYear: core.FY26, Category: "TAXES", LineItem: "Real Property", Amount: 1000000},
		{FiscalYear: core.FY26, Category: "POLICE DEPARTMENT", LineItem: "Salaries", Amount: 900000},
		{FiscalYear: core.FY26, Category: "ADMINISTRATION", LineItem: "Salaries", Amount: 821944},
	}
}

// NewSeededStore returns a Store preloaded with SeedFacts.
func NewSeededStore() *Store {
	return NewStore(SeedFacts()...)
}

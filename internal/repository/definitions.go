package repository

import "backend/internal/model"

// Row read-models returned by the list engine: the entity's own columns plus
// the joined display-only fields the original SELECTs carry.

type ProjectRow struct {
	model.Project `gorm:"embedded"`
	ManagerName   string `json:"manager_name"`
	ManagerEmail  string `json:"manager_email"`
}

type TaskRow struct {
	model.Task   `gorm:"embedded"`
	ProjectName  string `json:"project_name"`
	AssigneeName string `json:"assignee_name"`
}

type InvoiceRow struct {
	model.Invoice `gorm:"embedded"`
	ProjectName   string `json:"project_name"`
}

type PaymentRow struct {
	model.Payment `gorm:"embedded"`
	InvoiceNumber string `json:"invoice_number"`
	Client        string `json:"client"`
}

type MaterialRow struct {
	model.Material `gorm:"embedded"`
	ProjectName    string `json:"project_name"`
}

type GRNRow struct {
	model.GRN    `gorm:"embedded"`
	MaterialName string `json:"material_name"`
}

type InspectionRow struct {
	model.QualityInspection `gorm:"embedded"`
	TaskTitle               string `json:"task_title"`
}

type MilestoneRow struct {
	model.Milestone `gorm:"embedded"`
	ProjectName     string `json:"project_name"`
}

type RiskRow struct {
	model.Risk  `gorm:"embedded"`
	ProjectName string `json:"project_name"`
}

type DrawingRow struct {
	model.Drawing `gorm:"embedded"`
	ProjectName   string `json:"project_name"`
}

// Per-resource declarative list configuration. Sort allow-lists live with the
// handlers that read them off the query string; these definitions carry the
// SQL side: projection, joins and searchable columns.

var (
	ProjectListDef = ListDefinition{
		Select:        "p.*, (u.first_name || ' ' || u.last_name) AS manager_name, u.email AS manager_email",
		From:          "projects p LEFT JOIN users u ON u.id = p.manager_id",
		SortPrefix:    "p.",
		SearchColumns: []string{"p.name", "p.client", "p.description"},
	}

	TaskListDef = ListDefinition{
		Select:        "t.*, p.name AS project_name, (u.first_name || ' ' || u.last_name) AS assignee_name",
		From:          "tasks t LEFT JOIN projects p ON p.id = t.project_id LEFT JOIN users u ON u.id = t.assignee_id",
		SortPrefix:    "t.",
		SearchColumns: []string{"t.title", "p.name", "(u.first_name || ' ' || u.last_name)"},
	}

	ContractListDef = ListDefinition{
		Select:        "c.*",
		From:          "contracts c",
		SortPrefix:    "c.",
		SearchColumns: []string{"c.client", "c.project_name", "c.manager"},
	}

	RFQListDef = ListDefinition{
		Select:        "r.*",
		From:          "rfqs r",
		SortPrefix:    "r.",
		SearchColumns: []string{"r.client", "r.project", "r.location"},
	}

	InvoiceListDef = ListDefinition{
		Select:        "i.*, p.name AS project_name",
		From:          "invoices i LEFT JOIN projects p ON p.id = i.project_id",
		SortPrefix:    "i.",
		SearchColumns: []string{"i.invoice_number", "p.name", "i.client"},
	}

	PaymentListDef = ListDefinition{
		Select:        "p.*, i.invoice_number, i.client",
		From:          "payments p LEFT JOIN invoices i ON i.id = p.invoice_id",
		SortPrefix:    "p.",
		SearchColumns: []string{"p.reference", "i.invoice_number"},
	}

	MaterialListDef = ListDefinition{
		Select:        "m.*, p.name AS project_name",
		From:          "materials m LEFT JOIN projects p ON p.id = m.project_id",
		SortPrefix:    "m.",
		SearchColumns: []string{"m.name", "m.supplier", "p.name", "m.po_no"},
	}

	GRNListDef = ListDefinition{
		Select:        "g.*, m.name AS material_name",
		From:          "grns g LEFT JOIN materials m ON m.id = g.material_id",
		SortPrefix:    "g.",
		SearchColumns: []string{"g.grn_number", "m.name"},
	}

	InspectionListDef = ListDefinition{
		Select:        "q.*, t.title AS task_title",
		From:          "quality_inspections q LEFT JOIN tasks t ON t.id = q.task_id",
		SortPrefix:    "q.",
		SearchColumns: []string{"q.inspection_id", "q.inspector", "q.snags", "t.title"},
	}

	MilestoneListDef = ListDefinition{
		Select:        "m.*, p.name AS project_name",
		From:          "milestones m LEFT JOIN projects p ON p.id = m.project_id",
		SortPrefix:    "m.",
		SearchColumns: []string{"m.name", "p.name"},
	}

	RiskListDef = ListDefinition{
		Select:        "r.*, p.name AS project_name",
		From:          "risks r LEFT JOIN projects p ON p.id = r.project_id",
		SortPrefix:    "r.",
		SearchColumns: []string{"r.description", "r.mitigation_plan", "r.owner", "p.name"},
	}

	ResourceListDef = ListDefinition{
		Select:        "r.*",
		From:          "resources r",
		SortPrefix:    "r.",
		SearchColumns: []string{"r.name", "r.role", "r.subcontractor"},
	}

	JobCostListDef = ListDefinition{
		Select:        "jc.*",
		From:          "job_costs jc",
		SortPrefix:    "jc.",
		SearchColumns: []string{"jc.job_id", "jc.project", "jc.task", "jc.resource"},
	}

	DrawingListDef = ListDefinition{
		Select:        "d.*, p.name AS project_name",
		From:          "drawings d LEFT JOIN projects p ON p.id = d.project_id",
		SortPrefix:    "d.",
		SearchColumns: []string{"d.drawing_id", "d.file_name", "p.name"},
	}

	UserListDef = ListDefinition{
		Select:        "u.*",
		From:          "users u",
		SortPrefix:    "u.",
		SearchColumns: []string{"u.first_name", "u.last_name", "u.email"},
	}
)

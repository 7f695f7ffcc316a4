// Package dashboard computes the read-only aggregate views shown on the
// dashboard and the profit and loss page.
package dashboard

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"contracting/internal/core"
)

// Unspecified labels employees without a specialization.
const Unspecified = "غير محدد"

const (
	monthDays       = 30
	adminShare      = 0.2
	topProjectCount = 5
	recentCount     = 4
	materialsMarker = "مواد"
)

// ExpenseLabels names the expense distribution slices in display order.
var ExpenseLabels = []string{"مواد البناء", "أجور العمال", "إيجار المعدات", "مصاريف إدارية", "أخرى"}

// Snapshot is a point-in-time copy of the collections the views read.
type Snapshot struct {
	Projects   []core.Project
	Statements []core.Statement
	Employees  []core.Employee
	Equipment  []core.Equipment
	Payments   []core.Payment
}

type ProjectStatsView struct {
	Total           int `json:"total"`
	Planned         int `json:"planned"`
	InProgress      int `json:"inProgress"`
	Completed       int `json:"completed"`
	OnHold          int `json:"onHold"`
	AverageProgress int `json:"averageProgress"`
}

type LaborGroup struct {
	Specialization string `json:"specialization"`
	Count          int    `json:"count"`
}

type ProjectValue struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

type ExpenseDistribution struct {
	Labels    []string `json:"labels"`
	Materials float64  `json:"materials"`
	Labor     float64  `json:"labor"`
	Equipment float64  `json:"equipment"`
	Admin     float64  `json:"admin"`
	Other     float64  `json:"other"`
}

type ProfitLossView struct {
	Revenue           float64             `json:"revenue"`
	Expenses          float64             `json:"expenses"`
	LaborCost         float64             `json:"laborCost"`
	EquipmentCost     float64             `json:"equipmentCost"`
	NetProfit         float64             `json:"netProfit"`
	Margin            float64             `json:"margin"`
	ContractValue     float64             `json:"contractValue"`
	PaidStatements    float64             `json:"paidStatements"`
	PendingStatements float64             `json:"pendingStatements"`
	Distribution      ExpenseDistribution `json:"expenseDistribution"`
	TopProjects       []ProjectValue      `json:"topProjects"`
}

// ProjectStats counts projects per status. AverageProgress is the rounded
// mean progress, 0 without projects.
func ProjectStats(projects []core.Project) ProjectStatsView {
	v := ProjectStatsView{Total: len(projects)}
	sum := 0
	for _, p := range projects {
		switch p.Status {
		case core.ProjectPlanned:
			v.Planned++
		case core.ProjectInProgress:
			v.InProgress++
		case core.ProjectCompleted:
			v.Completed++
		case core.ProjectOnHold:
			v.OnHold++
		}
		sum += p.Progress
	}
	if v.Total > 0 {
		v.AverageProgress = int(decimal.NewFromInt(int64(sum)).
			Div(decimal.NewFromInt(int64(v.Total))).
			Round(0).IntPart())
	}
	return v
}

// LaborDistribution groups active employees by trimmed specialization,
// largest group first. Equal counts keep first-seen order.
func LaborDistribution(employees []core.Employee) []LaborGroup {
	groups := []LaborGroup{}
	index := map[string]int{}
	for _, e := range employees {
		if e.Status != core.EmployeeActive {
			continue
		}
		key := strings.TrimSpace(e.Specialization)
		if key == "" {
			key = Unspecified
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, LaborGroup{Specialization: key})
		}
		groups[i].Count++
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	return groups
}

// ProfitLoss derives the financial summary. Labor and equipment costs are
// monthly estimates (30 days). The admin/other split of the residual is a
// fixed 20/80 heuristic.
func ProfitLoss(s Snapshot) ProfitLossView {
	var revenue, paid, pending decimal.Decimal
	for _, st := range s.Statements {
		amount := decimal.NewFromFloat(st.Amount)
		switch st.Status {
		case core.StatementPaid:
			paid = paid.Add(amount)
		case core.StatementPending:
			pending = pending.Add(amount)
		}
	}
	revenue = paid

	var expenses, materials decimal.Decimal
	for _, p := range s.Payments {
		if p.Type != core.PaymentOutgoing {
			continue
		}
		amount := decimal.NewFromFloat(p.Amount)
		expenses = expenses.Add(amount)
		if strings.Contains(p.Description, materialsMarker) {
			materials = materials.Add(amount)
		}
	}

	days := decimal.NewFromInt(monthDays)
	var labor decimal.Decimal
	for _, e := range s.Employees {
		if e.Status == core.EmployeeActive {
			labor = labor.Add(decimal.NewFromFloat(e.DailyWage).Mul(days))
		}
	}
	var equipment decimal.Decimal
	for _, eq := range s.Equipment {
		if eq.Status == core.EquipmentInUse {
			equipment = equipment.Add(decimal.NewFromFloat(eq.DailyCost).Mul(days))
		}
	}

	var contract decimal.Decimal
	for _, p := range s.Projects {
		if p.Budget != nil {
			contract = contract.Add(decimal.NewFromFloat(*p.Budget))
		}
	}

	net := revenue.Sub(expenses)
	margin := decimal.Zero
	if revenue.IsPositive() {
		margin = net.Div(revenue).Mul(decimal.NewFromInt(100))
	}

	other := expenses.Sub(materials).Sub(labor).Sub(equipment)
	admin := other.Mul(decimal.NewFromFloat(adminShare))

	return ProfitLossView{
		Revenue:           revenue.InexactFloat64(),
		Expenses:          expenses.InexactFloat64(),
		LaborCost:         labor.InexactFloat64(),
		EquipmentCost:     equipment.InexactFloat64(),
		NetProfit:         net.InexactFloat64(),
		Margin:            margin.InexactFloat64(),
		ContractValue:     contract.InexactFloat64(),
		PaidStatements:    paid.InexactFloat64(),
		PendingStatements: pending.InexactFloat64(),
		Distribution: ExpenseDistribution{
			Labels:    ExpenseLabels,
			Materials: materials.InexactFloat64(),
			Labor:     labor.InexactFloat64(),
			Equipment: equipment.InexactFloat64(),
			Admin:     admin.InexactFloat64(),
			Other:     other.Sub(admin).InexactFloat64(),
		},
		TopProjects: TopProjects(s.Projects, topProjectCount),
	}
}

// TopProjects returns the n projects with the largest budgets. A missing
// budget counts as 0.
func TopProjects(projects []core.Project, n int) []ProjectValue {
	values := make([]ProjectValue, len(projects))
	for i, p := range projects {
		values[i] = ProjectValue{ID: p.ID, Name: p.Name}
		if p.Budget != nil {
			values[i].Value = *p.Budget
		}
	}
	sort.SliceStable(values, func(i, j int) bool { return values[i].Value > values[j].Value })
	if len(values) > n {
		values = values[:n]
	}
	return values
}

// RecentProjects returns the n most recently created projects, newest first.
func RecentProjects(projects []core.Project, n int) []core.Project {
	recent := append([]core.Project(nil), projects...)
	sort.Slice(recent, func(i, j int) bool { return recent[i].ID > recent[j].ID })
	if len(recent) > n {
		recent = recent[:n]
	}
	if recent == nil {
		recent = []core.Project{}
	}
	return recent
}

package core

type (
	ProjectStatus   string
	EmployeeStatus  string
	EquipmentStatus string
	StatementStatus string
	PaymentType     string
	PaymentMethod   string
	PaymentStatus   string
)

const (
	ProjectPlanned    ProjectStatus = "PLANNED"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectOnHold     ProjectStatus = "ON_HOLD"

	EmployeeActive   EmployeeStatus = "ACTIVE"
	EmployeeInactive EmployeeStatus = "INACTIVE"

	EquipmentAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentInUse       EquipmentStatus = "IN_USE"
	EquipmentMaintenance EquipmentStatus = "MAINTENANCE"

	StatementReview  StatementStatus = "REVIEW"
	StatementPending StatementStatus = "PENDING"
	StatementPaid    StatementStatus = "PAID"

	PaymentIncoming PaymentType = "INCOMING"
	PaymentOutgoing PaymentType = "OUTGOING"

	MethodCash         PaymentMethod = "CASH"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCheck        PaymentMethod = "CHECK"

	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentPending   PaymentStatus = "PENDING"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanned, ProjectInProgress, ProjectCompleted, ProjectOnHold:
		return true
	}
	return false
}

func (s EmployeeStatus) Valid() bool {
	return s == EmployeeActive || s == EmployeeInactive
}

func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentAvailable, EquipmentInUse, EquipmentMaintenance:
		return true
	}
	return false
}

func (s StatementStatus) Valid() bool {
	switch s {
	case StatementReview, StatementPending, StatementPaid:
		return true
	}
	return false
}

func (t PaymentType) Valid() bool {
	return t == PaymentIncoming || t == PaymentOutgoing
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodCheck:
		return true
	}
	return false
}

func (s PaymentStatus) Valid() bool {
	return s == PaymentCompleted || s == PaymentPending
}

type (
	Client struct {
		ID            int64  `json:"id"`
		Name          string `json:"name"`
		ContactPerson string `json:"contactPerson,omitempty"`
		Phone         string `json:"phone,omitempty"`
		Email         string `json:"email,omitempty"`
		Address       string `json:"address,omitempty"`
	}

	Project struct {
		ID       int64         `json:"id"`
		Code     string        `json:"code"`
		Name     string        `json:"name"`
		ClientID int64         `json:"clientId"`
		Status   ProjectStatus `json:"status"`
		Progress int           `json:"progress"`
		Budget   *float64      `json:"budget,omitempty"`
		Location string        `json:"location,omitempty"`
	}

	Supplier struct {
		ID            int64   `json:"id"`
		CompanyName   string  `json:"companyName"`
		ContactPerson string  `json:"contactPerson,omitempty"`
		Phone         string  `json:"phone,omitempty"`
		Email         string  `json:"email,omitempty"`
		Materials     string  `json:"materials,omitempty"`
		PaymentTerms  string  `json:"paymentTerms,omitempty"`
		Balance       float64 `json:"balance"`
	}

	// Employee.ProjectName is a display label only and never resolved
	// against the project collection.
	Employee struct {
		ID             int64          `json:"id"`
		Name           string         `json:"name"`
		JobTitle       string         `json:"jobTitle"`
		Specialization string         `json:"specialization"`
		DailyWage      float64        `json:"dailyWage"`
		Phone          string         `json:"phone,omitempty"`
		ProjectName    string         `json:"projectName,omitempty"`
		Status         EmployeeStatus `json:"status"`
	}

	Equipment struct {
		ID              int64           `json:"id"`
		Name            string          `json:"name"`
		Type            string          `json:"type"`
		DailyCost       float64         `json:"dailyCost"`
		MaintenanceDate string          `json:"maintenanceDate,omitempty"`
		ProjectName     string          `json:"projectName,omitempty"`
		Status          EquipmentStatus `json:"status"`
	}

	Statement struct {
		ID          int64           `json:"id"`
		ProjectID   int64           `json:"projectId"`
		Number      string          `json:"number"`
		Amount      float64         `json:"amount"`
		Date        string          `json:"date"`
		Description string          `json:"description,omitempty"`
		Status      StatementStatus `json:"status"`
	}

	Payment struct {
		ID            int64         `json:"id"`
		Type          PaymentType   `json:"type"`
		Amount        float64       `json:"amount"`
		Date          string        `json:"date"`
		DueDate       string        `json:"dueDate,omitempty"`
		Description   string        `json:"description,omitempty"`
		PaymentMethod PaymentMethod `json:"paymentMethod"`
		Status        PaymentStatus `json:"status"`
		RelatedParty  string        `json:"relatedParty,omitempty"`
	}
)

// ProjectView is a project joined with its client at read time.
// Client is nil when the reference no longer resolves.
type ProjectView struct {
	Project
	Client *Client `json:"client"`
}

// StatementView is a statement joined with its project at read time.
type StatementView struct {
	Statement
	Project *Project `json:"project"`
}

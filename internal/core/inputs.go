package core

// Request bodies for create and partial update. The same shape serves both:
// create requires certain fields to be set, update applies whatever is present.
type (
	ClientInput struct {
		Name          Optional[string] `json:"name"`
		ContactPerson Optional[string] `json:"contactPerson"`
		Phone         Optional[string] `json:"phone"`
		Email         Optional[string] `json:"email"`
		Address       Optional[string] `json:"address"`
	}

	ProjectInput struct {
		Code     Optional[string]        `json:"code"`
		Name     Optional[string]        `json:"name"`
		ClientID Optional[int64]         `json:"clientId"`
		Status   Optional[ProjectStatus] `json:"status"`
		Progress Optional[float64]       `json:"progress"`
		Budget   Optional[float64]       `json:"budget"`
		Location Optional[string]        `json:"location"`
	}

	SupplierInput struct {
		CompanyName   Optional[string]  `json:"companyName"`
		ContactPerson Optional[string]  `json:"contactPerson"`
		Phone         Optional[string]  `json:"phone"`
		Email         Optional[string]  `json:"email"`
		Materials     Optional[string]  `json:"materials"`
		PaymentTerms  Optional[string]  `json:"paymentTerms"`
		Balance       Optional[float64] `json:"balance"`
	}

	EmployeeInput struct {
		Name           Optional[string]         `json:"name"`
		JobTitle       Optional[string]         `json:"jobTitle"`
		Specialization Optional[string]         `json:"specialization"`
		DailyWage      Optional[float64]        `json:"dailyWage"`
		Phone          Optional[string]         `json:"phone"`
		ProjectName    Optional[string]         `json:"projectName"`
		Status         Optional[EmployeeStatus] `json:"status"`
	}

	EquipmentInput struct {
		Name            Optional[string]          `json:"name"`
		Type            Optional[string]          `json:"type"`
		DailyCost       Optional[float64]         `json:"dailyCost"`
		MaintenanceDate Optional[string]          `json:"maintenanceDate"`
		ProjectName     Optional[string]          `json:"projectName"`
		Status          Optional[EquipmentStatus] `json:"status"`
	}

	StatementInput struct {
		ProjectID   Optional[int64]           `json:"projectId"`
		Number      Optional[string]          `json:"number"`
		Amount      Optional[float64]         `json:"amount"`
		Date        Optional[string]          `json:"date"`
		Description Optional[string]          `json:"description"`
		Status      Optional[StatementStatus] `json:"status"`
	}

	PaymentInput struct {
		Type          Optional[PaymentType]   `json:"type"`
		Amount        Optional[float64]       `json:"amount"`
		Date          Optional[string]        `json:"date"`
		DueDate       Optional[string]        `json:"dueDate"`
		Description   Optional[string]        `json:"description"`
		PaymentMethod Optional[PaymentMethod] `json:"paymentMethod"`
		Status        Optional[PaymentStatus] `json:"status"`
		RelatedParty  Optional[string]        `json:"relatedParty"`
	}
)

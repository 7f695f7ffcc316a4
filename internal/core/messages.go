package core

// User-facing messages, in the dashboard's display language.
const (
	MsgClientRequired  = "الاسم مطلوب"
	MsgClientNotFound  = "عميل غير موجود"
	MsgProjectRequired = "الكود والاسم والعميل مطلوبة"
	MsgDuplicateCode   = "هذا الكود مستخدم بالفعل"
	MsgProjectMissing  = "المشروع غير موجود"

	MsgStatementRequired = "المشروع، رقم المستخلص، المبلغ، والتاريخ مطلوبة"
	MsgStatementProject  = "مشروع غير موجود"
	MsgStatementMissing  = "المستخلص غير موجود"

	MsgSupplierRequired = "اسم الشركة مطلوب"
	MsgSupplierMissing  = "المورد غير موجود"

	MsgEmployeeRequired = "الاسم والوظيفة والتخصص والأجر اليومي (رقم) مطلوبة"
	MsgEmployeeMissing  = "العامل غير موجود"

	MsgEquipmentRequired = "اسم المعدة، النوع، وتكلفة الإيجار اليومية مطلوبة"
	MsgEquipmentMissing  = "المعدة غير موجودة"

	MsgPaymentRequired = "النوع، المبلغ، التاريخ، طريقة الدفع، والحالة مطلوبة"
	MsgPaymentMissing  = "الدفعة غير موجودة"

	MsgInvalidStatus = "قيمة الحالة غير صالحة"
	MsgInvalidBody   = "صيغة الطلب غير صالحة"
	MsgInternal      = "حدث خطأ في الخادم"
	MsgRateLimited   = "عدد كبير من الطلبات، حاول لاحقاً"
	MsgRouteNotFound = "المسار غير موجود"

	// HealthMessage is returned by the root endpoint.
	HealthMessage = "Contracting Management API is running"
)

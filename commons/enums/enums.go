package enums

// Response statuses recorded on user_task_history rows.
const (
	STATUS_SUCCESS = "Success"
	STATUS_FAILED  = "Failed"
)

// AEPS transaction types.
const (
	TXN_ENQUIRY        = 1
	TXN_WITHDRAWAL     = 2
	TXN_MINI_STATEMENT = 3
)

// ServiceDefault is the placeholder sentinel a form sends when nothing was
// picked. It is never a valid service.
const ServiceDefault = "default"

// StatementServices are the services accepted by the single-file statement
// reconciliation form.
var StatementServices = []string{
	"ASTRO",
	"BBPS",
	"LIC",
	"MATM",
	"RECHARGE",
	"AEPS",
	"PANUTI",
	"PASSPORT",
	"UPIQR",
}

// VendorLedgerServices are the services accepted by the vendor
// statement/ledger comparison form.
var VendorLedgerServices = []string{
	"ASTRO",
	"ABHIBUS",
	"BBPS",
	"DMT",
	"INSURANCE_OFFLINE",
	"LIC",
	"MANUAL_TB",
	"MATM",
	"MOVETOBANK",
	"RECHARGE",
	"AEPS",
	"PANUTI",
	"PANNSDL",
	"PASSPORT",
	"UPIQR",
	"SULTANPURSCA",
	"SULTANPUR_IS",
	"CHITRAKOOT_SCA",
	"CHITRAKOOT_IS",
}

// RegionalServices use the regional scheme column layout instead of the
// transactional one.
var RegionalServices = []string{
	"SULTANPURSCA",
	"SULTANPUR_IS",
	"CHITRAKOOT_SCA",
	"CHITRAKOOT_IS",
}

func IsStatementService(name string) bool {
	return contains(StatementServices, name)
}

func IsVendorLedgerService(name string) bool {
	return contains(VendorLedgerServices, name)
}

func IsRegionalService(name string) bool {
	return contains(RegionalServices, name)
}

func IsTransactionType(t int) bool {
	return t == TXN_ENQUIRY || t == TXN_WITHDRAWAL || t == TXN_MINI_STATEMENT
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}

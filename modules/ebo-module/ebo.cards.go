package ebo_module

// TenantCard maps a dashboard slug to the tenant name the aggregate-data
// service expects.
type TenantCard struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

var TenantCards = []TenantCard{
	{Key: "I-NET TN Users", Value: "inet-users"},
	{Key: "I-NET UP Users", Value: "inet-up-users"},
	{Key: "UPe-District Sultanpur PS Users", Value: "upe-sultanpur-ps-users"},
	{Key: "ITI UP Users", Value: "iti-up-users"},
	{Key: "UPe-District Chitrakoot PS Users", Value: "upe-chitrakoot-ps-users"},
	{Key: "I-NET PACCS Users", Value: "inet-paccs-users"},
}

func TenantBySlug(slug string) (TenantCard, bool) {
	for _, card := range TenantCards {
		if card.Value == slug {
			return card, true
		}
	}
	return TenantCard{}, false
}

// ColumnOrder returns the export column layout for a tenant.
func ColumnOrder(tenantName string) []string {
	switch tenantName {
	case "ITI UP Users":
		return []string{
			"UserName", "Vle_Id", "Customer_Name", "Phone_Num", "Email",
			"total_due_dates", "payment_done", "payment_not_done", "Expiry_Date",
		}
	case "UPe-District Chitrakoot PS Users":
		return []string{"UserName", "Vle_Id", "Customer_Name", "Phone_Num", "Email", "Expiry_Date"}
	case "I-NET UP Users":
		return []string{"UserName", "Vle_Id", "Customer_Name", "Phone_Num", "Email", "Package_Name", "Expiry_Date"}
	default:
		return []string{"UserName", "Customer_Name", "Phone_Num", "Email", "Package_Name", "Expiry_Date"}
	}
}

// StatusOptions lists the user statuses a tenant's detail query accepts.
func StatusOptions(tenantName string) []string {
	if tenantName == "ITI UP Users" {
		return []string{"active", "inactive", "emi-not-paid"}
	}
	return []string{"active", "inactive"}
}

func validStatus(tenantName, status string) bool {
	for _, option := range StatusOptions(tenantName) {
		if option == status {
			return true
		}
	}
	return false
}

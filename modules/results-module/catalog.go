package results_module

import "github.com/inethub/rrtool/commons/enums"

// Section is one named bucket of result rows.
type Section struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Catalog is the closed enumeration of sections a viewer knows about plus
// the service-keyed column projections. Nothing here is derived from the
// payload; unknown keys in a result envelope are ignored.
type Catalog struct {
	Name     string
	Sections []Section
	PageSize int
	// CountKeys are the scalar summary fields surfaced from the envelope.
	CountKeys []string
}

// Portal is the catalog of the portal reconciliation viewer.
var Portal = Catalog{
	Name: "portal",
	Sections: []Section{
		{Key: "not_in_Portal", Label: "Not in Portal"},
		{Key: "NOT_IN_PORTAL_VENDOR_SUCC", Label: "Vend_suc - Not_In_IhubPortal"},
		{Key: "VEND_IHUB_SUC-NIL", Label: "Vend_IHub_Succ - NIL"},
		{Key: "VEND_FAIL_IHUB_SUC-NIL", Label: "Vend_IHub_Fail - NIL"},
		{Key: "VEND_SUC_IHUB_FAIL-NIL", Label: "Vend_Suc - IHub_Fail - NIL"},
		{Key: "IHUB_INT_VEND_SUC-NIL", Label: "Vend_Suc - Ihub_Ini - NIL"},
		{Key: "VEND_FAIL_IHUB_INT-NIL", Label: "Vend_Fail - Ihub_Ini - NIL"},
		{Key: "IHUB_VEND_FAIL", Label: "Vend_Fail - Ihub_Fail"},
		{Key: "VEND_IHUB_SUC", Label: "Vend_Suc - Ihub_Suc"},
		{Key: "VEND_FAIL_IHUB_SUC", Label: "Vend_Fail - Ihub_Suc"},
		{Key: "VEND_SUC_IHUB_FAIL", Label: "Vend_Suc - Ihub_Fail"},
		{Key: "IHUB_INT_VEND_SUC", Label: "Vend_Suc - Ihub_Ini"},
		{Key: "VEND_FAIL_IHUB_INT", Label: "Vend_Fail - Ihub_Ini"},
		{Key: "Tenant_db_ini_not_in_hubdb", Label: "Tenant_Ini_Not_In_Hub"},
		{Key: "matched", Label: "Matched_Values"},
		{Key: "not_in_vendor", Label: "Not_In_Vendor"},
	},
	PageSize: 10,
	CountKeys: []string{
		"Total_Success_count",
		"Total_Failed_count",
		"Excel_value_count",
		"HUB_Value_count",
	},
}

// VendorLedger is the catalog of the vendor statement/ledger viewer.
var VendorLedger = Catalog{
	Name: "vendor",
	Sections: []Section{
		{Key: "not_in_ledger", Label: "Not in Ledger"},
		{Key: "mismatch_statement_refunds", Label: "Mismatch Statement Refunds"},
		{Key: "mismatch_ledger_refunds", Label: "Mismatch Ledger Refunds"},
		{Key: "not_in_statement", Label: "Not in Statement"},
		{Key: "amount_mismatch", Label: "Ledger & Statement Amount Mismatch"},
		{Key: "credit_transactions_ledger", Label: "Credit Transactions in Ledger"},
	},
	PageSize: 20,
	CountKeys: []string{
		"statement_count",
		"ledger_count",
		"matched_trans_count",
		"failed_trans_count",
		"ledger_credit_count",
	},
}

// MatchedSections is the service-dependent subset of vendor-ledger sections
// considered successful matches. AEPS has no refund flow.
func MatchedSections(serviceName string) []Section {
	if serviceName == "AEPS" {
		return []Section{
			{Key: "matching_trans", Label: "Matched Transactions"},
		}
	}
	return []Section{
		{Key: "matching_trans", Label: "Matched Transactions"},
		{Key: "matching_refunds", Label: "Matching Refunds"},
	}
}

// OrderedColumns resolves the fixed column projection for a viewer/service
// pair. Purely a lookup; never computed from data shape.
func (c Catalog) OrderedColumns(serviceName string) []string {
	if c.Name == "vendor" {
		return vendorColumns(serviceName)
	}
	return portalColumns(serviceName)
}

func portalColumns(serviceName string) []string {
	if serviceName == "UPIQR" {
		return []string{
			"CATEGORY",
			"TENANT_ID",
			"VENDOR_REFERENCE",
			"REFID",
			"IHUB_USERNAME",
			"AMOUNT",
			"SERVICE_DATE",
			"VENDOR_DATE",
			"VENDOR_STATUS",
			"IHUB_MASTER_STATUS",
			serviceName + "_STATUS",
			"TenantDB_wallettopup_status",
			"Hub_Tntwallettopup_status",
		}
	}
	return []string{
		"CATEGORY",
		"TENANT_ID",
		"IHUB_REFERENCE",
		"REFID",
		"IHUB_USERNAME",
		"AMOUNT",
		"SERVICE_DATE",
		"VENDOR_DATE",
		"VENDOR_STATUS",
		"IHUB_MASTER_STATUS",
		serviceName + "_STATUS",
		"IHUB_LEDGER_STATUS",
		"BILL_FETCH_STATUS",
		"TENANT_LEDGER_STATUS",
		"TRANSACTION_DEBIT",
		"TRANSACTION_CREDIT",
		"COMMISSION_CREDIT",
		"COMMISSION_REVERSAL",
	}
}

func vendorColumns(serviceName string) []string {
	switch {
	case serviceName == "AEPS":
		return []string{
			"SETTLED_ID",
			"COMMISSION_SNO",
			"SERIALNUMBER",
			"ACKNO",
			"AMOUNT_STATEMENT",
			"COMMISSION_STATEMENT",
			"AMOUNT_LEDGER",
			"UTR",
			"TYPE",
			"STATUS",
			"DATE",
			"SUM_AMOUNT",
		}
	case serviceName == "MATM":
		return []string{"BCID", "AMOUNT_STATEMENT", "AMOUNT_LEDGER", "RRN", "DATE"}
	case serviceName == "BBPS":
		return []string{"TRANS_REF_ID", "AMOUNT_LEDGER", "AMOUNT_STATEMENT", "DATE"}
	case enums.IsRegionalService(serviceName):
		return []string{
			"SCHEME_ID",
			"DISTRICT",
			"QUOTA_TYPE",
			"AMOUNT_STATEMENT",
			"AMOUNT_LEDGER",
			"RECEIPT_NO",
			"DATE",
		}
	default:
		return []string{"TXNID", "REFUND_TXNID", "REFID", "TYPE", "AMOUNT", "COMM", "TDS", "DATE"}
	}
}

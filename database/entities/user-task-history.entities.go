package entities

import "time"

// UserTaskHistory is the audit row written once per reconciliation
// submission, whatever the outcome. FromDate/ToDate are nullable because
// the vendor-ledger comparison flow carries no date range.
type UserTaskHistory struct {
	ID               uint       `gorm:"column:id;type:bigSerial;primary_key;not null" json:"id"`
	UID              uint       `gorm:"column:uid;type:bigInt;index;not null" json:"uid"`
	UserName         string     `gorm:"column:user_name;type:varchar(255);index;not null" json:"userName"`
	ServiceName      string     `gorm:"column:service_name;type:varchar(50);index;not null" json:"serviceName"`
	FromDate         *time.Time `gorm:"column:from_date;type:timestamp" json:"fromDate"`
	ToDate           *time.Time `gorm:"column:to_date;type:timestamp" json:"toDate"`
	UploadedFileName string     `gorm:"column:uploaded_file_name;type:varchar(512)" json:"uploadedFileName"`
	ResponseMessage  string     `gorm:"column:response_message;type:text" json:"responseMessage"`
	TransactionType  *int       `gorm:"column:transaction_type;type:int" json:"transactionType"`
	ResponseStatus   string     `gorm:"column:response_status;type:varchar(50);index;not null" json:"responseStatus"`
	CreatedAt        time.Time  `gorm:"column:created_at;type:timestamp;default:current_timestamp;index;not null" json:"createdAt"`
}

func (UserTaskHistory) TableName() string {
	return "user_task_history"
}

package models

// ViolationCode maps a health-code violation code to its free-text
// description. The table grows monotonically as new codes are observed.
type ViolationCode struct {
	Code        string  `gorm:"primaryKey" json:"code"`
	Description *string `json:"description"`
}

package models

// Violation is one inspection violation row. The source assigns no stable
// identity, so rows get a surrogate key on insert and are never updated or
// deleted in place.
type Violation struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	BusinessName  *string `json:"business_name"`
	Address       *string `json:"address"`
	ViolationCode *string `gorm:"index:idx_code" json:"violation_code"`
	ViolationDesc *string `json:"violation_desc"`
	Neighborhood  *string `gorm:"index:idx_neighborhood" json:"neighborhood"`
	Date          *string `gorm:"index:idx_date" json:"date"` // 'YYYY-MM-DD'
	Status        *string `json:"status"`
}

package model

// swagger:model User
type User struct {
	BaseModel
	Email    string `gorm:"size:100;unique;not null" json:"email"`
	Password string `gorm:"size:100;not null" json:"-"`
	FullName string `gorm:"size:100" json:"fullName"`
}

func (User) TableName() string {
	return "users"
}

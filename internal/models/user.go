package models

type User struct {
	BaseModel
	Email     string   `gorm:"uniqueIndex;size:255;not null"`
	UserType  UserType `gorm:"type:varchar(20);not null;index"`
	FirstName string   `gorm:"size:100"`
	LastName  string   `gorm:"size:100"`
	IsActive  bool     `gorm:"not null;default:true;index"`
}

func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

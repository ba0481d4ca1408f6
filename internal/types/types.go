// Package types holds the data structures shared by the storage layer,
// the HTTP handlers and the templates. Keeping them in one place avoids
// import cycles between those packages.
package types

import "strings"

// Student is one row of the students table.
//
// The db tags drive sqlx column mapping; the gorm tags describe the same
// table to the ORM backend. Both must name identical columns.
type Student struct {
	ID        int64  `json:"id"         db:"id"         gorm:"column:id;primaryKey;autoIncrement"`
	FirstName string `json:"first_name" db:"first_name" gorm:"column:first_name;size:100;not null"`
	LastName  string `json:"last_name"  db:"last_name"  gorm:"column:last_name;size:100;not null"`
	Email     string `json:"email"      db:"email"      gorm:"column:email;size:100;not null"`
	Phone     string `json:"phone"      db:"phone"      gorm:"column:phone;size:20;not null"`
}

// TableName pins the ORM table name so every backend shares one schema.
func (Student) TableName() string { return "students" }

// StudentForm is what the create and update pages submit.
//
// form:"..." names the HTML input; validate:"..." holds the rules checked
// by go-playground/validator before anything touches the database.
// Email format and uniqueness are intentionally not checked.
type StudentForm struct {
	FirstName string `form:"firstname" validate:"required,max=100"`
	LastName  string `form:"lastname"  validate:"required,max=100"`
	Email     string `form:"email"     validate:"required,max=100"`
	Phone     string `form:"phone"     validate:"required,max=20"`
}

// Normalize trims surrounding whitespace so "   " counts as empty.
func (f *StudentForm) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
}

// Student converts the form into a record carrying the given id.
func (f StudentForm) Student(id int64) Student {
	return Student{
		ID:        id,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
		Phone:     f.Phone,
	}
}

// FormFromStudent prefills the update page from a stored record.
func FormFromStudent(s Student) StudentForm {
	return StudentForm{
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
		Phone:     s.Phone,
	}
}

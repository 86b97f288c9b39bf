package models

import "fmt"

type Guest struct {
	ID         int64  `json:"guest_id"`
	LastName   string `json:"last_name"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Passport   string `json:"passport"`
}

// Option возвращает строку для выпадающего списка гостей: "id - Фамилия Имя".
func (g Guest) Option() string {
	return fmt.Sprintf("%d - %s %s", g.ID, g.LastName, g.FirstName)
}

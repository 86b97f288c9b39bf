package models

import "fmt"

type Room struct {
	Number    int64   `json:"room_number"`
	Type      string  `json:"room_type"`
	Price     float64 `json:"price"`
	Available bool    `json:"availability"`
}

// Option возвращает строку для выпадающего списка номеров: "номер - тип".
func (r Room) Option() string {
	return fmt.Sprintf("%d - %s", r.Number, r.Type)
}

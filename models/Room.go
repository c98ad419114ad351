package models

import "gorm.io/gorm"

type RoomType struct {
	gorm.Model
	Name string `json:"name"`
}

type Room struct {
	gorm.Model
	ApartmentID uint      `json:"apartment_id"`
	RoomTypeID  *uint     `json:"room_type_id"`
	Name        string    `json:"name"`
	RoomType    *RoomType `json:"room_type,omitempty"`
	Beds        []Bed     `json:"beds,omitempty"`
}

type BedType struct {
	gorm.Model
	Name string `json:"name"`
}

type Bed struct {
	gorm.Model
	RoomID    uint     `json:"room_id"`
	BedTypeID uint     `json:"bed_type_id"`
	Name      string   `json:"name"`
	BedType   *BedType `json:"bed_type,omitempty"`
}

package models

import "gorm.io/gorm"

type Country struct {
	gorm.Model
	Name   string `json:"name"`
	Cities []City `json:"cities,omitempty"`
}

type City struct {
	gorm.Model
	CountryID uint     `json:"country_id"`
	Name      string   `json:"name"`
	Country   *Country `json:"country,omitempty"`
}

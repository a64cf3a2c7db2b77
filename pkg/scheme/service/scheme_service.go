package service

import "kisan/entities"

type Filter struct {
	Query    string
	Category string
	State    string
}

type Options struct {
	Categories []string `json:"categories"`
	States     []string `json:"states"`
}

type SchemeService interface {
	Filter(f Filter) []entities.Scheme
	Options() Options
}

package models

type Folder struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

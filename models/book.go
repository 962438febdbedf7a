package models

type Id string

// Book is a single catalog entry. Id is assigned at creation and never changes.
type Book struct {
	Id     Id     `json:"id"`
	Name   string `json:"name"`
	Author string `json:"author"`
	Topic  string `json:"topic"`
}

// BookInput holds the add form fields. The binding tag is shared by gin and
// the controller's validator.
type BookInput struct {
	Name   string `json:"name" form:"name" binding:"required"`
	Author string `json:"author" form:"author" binding:"required"`
	Topic  string `json:"topic" form:"topic" binding:"required"`
}

func (input BookInput) IsEmpty() bool {
	return input.Name == "" && input.Author == "" && input.Topic == ""
}

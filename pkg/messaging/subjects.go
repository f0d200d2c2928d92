package messaging

const (
	ProductCreatedSubject = "product.created"
	ProductUpdatedSubject = "product.updated"
	ProductDeletedSubject = "product.deleted"

	// ProductSubjects matches every product change subject.
	ProductSubjects = "product.>"
)

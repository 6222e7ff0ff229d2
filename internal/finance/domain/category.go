package domain

// Category labels an expense. The catalogue is fixed at start-up; records may
// still carry labels outside it.
type Category struct {
	Name string `json:"name"`
	Type Kind   `json:"type"`
}

type CategoryRepository interface {
	FindExpenseCategories() ([]Category, error)
}

package infrastructure

import (
	"strings"

	"github.com/sebuszqo/FinanceTracker/internal/finance/domain"
)

// StaticCategoryRepository serves the expense categories configured at start-up.
type StaticCategoryRepository struct {
	categories []domain.Category
}

func NewStaticCategoryRepository(names []string) *StaticCategoryRepository {
	seen := make(map[string]bool, len(names))
	categories := make([]domain.Category, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		categories = append(categories, domain.Category{Name: name, Type: domain.KindExpense})
	}
	return &StaticCategoryRepository{categories: categories}
}

func (r *StaticCategoryRepository) FindExpenseCategories() ([]domain.Category, error) {
	categories := make([]domain.Category, len(r.categories))
	copy(categories, r.categories)
	return categories, nil
}

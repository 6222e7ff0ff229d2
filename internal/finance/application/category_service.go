package application

import "github.com/sebuszqo/FinanceTracker/internal/finance/domain"

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) GetExpenseCategories() ([]domain.Category, error) {
	return s.repo.FindExpenseCategories()
}

func (s *CategoryService) GetExpenseCategoryNames() ([]string, error) {
	categories, err := s.repo.FindExpenseCategories()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(categories))
	for i, category := range categories {
		names[i] = category.Name
	}
	return names, nil
}

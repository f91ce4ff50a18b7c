package service

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

func TestCreateCategory_RejectsBlankName(t *testing.T) {
	service := NewCategoryService(newMockCategoryRepository())
	ctx := context.Background()

	for _, name := range []string{"", "   ", "\t\n"} {
		category := &domain.Category{Name: name}
		if err := service.Create(ctx, category); !errors.Is(err, ErrValidation) {
			t.Errorf("name %q: err = %v, want ErrValidation", name, err)
		}
	}
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	service := NewCategoryService(newMockCategoryRepository())
	ctx := context.Background()

	if err := service.Create(ctx, &domain.Category{Name: "Books"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := service.Create(ctx, &domain.Category{Name: "Books"})
	if !errors.Is(err, repository.ErrCategoryAlreadyExists) {
		t.Fatalf("err = %v, want ErrCategoryAlreadyExists", err)
	}
}

func TestUpdateCategory_UnknownCategory(t *testing.T) {
	service := NewCategoryService(newMockCategoryRepository())

	err := service.Update(context.Background(), &domain.Category{ID: 99, Name: "Ghost"})
	if !errors.Is(err, repository.ErrCategoryNotFound) {
		t.Fatalf("err = %v, want ErrCategoryNotFound", err)
	}
}

func TestDeleteCategory_UnknownCategory(t *testing.T) {
	service := NewCategoryService(newMockCategoryRepository())

	if err := service.Delete(context.Background(), 99); !errors.Is(err, repository.ErrCategoryNotFound) {
		t.Fatalf("err = %v, want ErrCategoryNotFound", err)
	}
}

package catalog_test

import "github.com/jhoicas/tienda-backoffice/internal/domain/repository"

func repositoryAll() repository.ProductFilter {
	return repository.ProductFilter{Limit: 1000}
}

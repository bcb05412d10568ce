package service

import (
	"errors"

	"expert-test/internal/domain"
)

// asDomainError unwraps err to a *domain.DomainError so that classified
// repository errors (reference in use, duplicate user) keep their code.
func asDomainError(err error) (*domain.DomainError, bool) {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

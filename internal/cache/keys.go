package cache

import "strings"

const (
	GlobalKeyPrefix = "expertest"

	// QuestionService namespaces keys owned by the question catalog.
	QuestionService = "question"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuestionCatalogKey is the key of the cached list of all questions with answers.
func QuestionCatalogKey() string {
	return GenerateCacheKey(QuestionService, "catalog", "all")
}

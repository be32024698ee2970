package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogEntry_IsComplete(t *testing.T) {
	entry := &CatalogEntry{Name: "Stanford University"}
	assert.False(t, entry.IsComplete(), "entry without essays is a partial research result")

	entry.Essays = []CatalogEssay{{Title: "Why Stanford", WordLimit: 250}}
	assert.True(t, entry.IsComplete())
}

func TestIsValidApplicationPlatform(t *testing.T) {
	assert.True(t, IsValidApplicationPlatform(PlatformCommonApp))
	assert.True(t, IsValidApplicationPlatform(PlatformUCApp))
	assert.False(t, IsValidApplicationPlatform(ApplicationPlatform("Carrier Pigeon")))
}

func TestIsValidCollegeType(t *testing.T) {
	assert.True(t, IsValidCollegeType(CollegeTypeReach))
	assert.False(t, IsValidCollegeType(CollegeType("Dream")))
}

func TestIsValidCollegeStatus(t *testing.T) {
	assert.True(t, IsValidCollegeStatus(CollegeStatusNotStarted))
	assert.False(t, IsValidCollegeStatus(CollegeStatus("Abandoned")))
}

package utils_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"smart-upi.backend/pkg/utils"
)

func TestGenerateTxnRef(t *testing.T) {
	ref := utils.GenerateTxnRef()

	assert.True(t, strings.HasPrefix(ref, "TXN"))
	assert.GreaterOrEqual(t, len(ref), len("TXN")+13)

	for _, r := range ref[3:] {
		assert.Contains(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789", string(r))
	}
}

func TestGenerateTxnRef_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := utils.GenerateTxnRef()
		assert.False(t, seen[ref], "duplicate ref %s", ref)
		seen[ref] = true
	}
}

func TestGenerateUUIDv7(t *testing.T) {
	id := utils.GenerateUUIDv7()
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestGenerateUUIDv7_Sortable(t *testing.T) {
	a := utils.GenerateUUIDv7()
	b := utils.GenerateUUIDv7()
	assert.LessOrEqual(t, strings.Compare(a.String(), b.String()), 0)
}
